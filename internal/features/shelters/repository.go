package shelters

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("shelters")

	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, shelter *Shelter) error {
	shelter.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, shelter)
	return err
}

func (r *Repository) List(ctx context.Context) ([]Shelter, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []Shelter
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if results == nil {
		results = []Shelter{}
	}
	return results, nil
}
