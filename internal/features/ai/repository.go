package ai

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("ai_updates")

	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "region", Value: 1}}},
		{Keys: bson.D{{Key: "lastRunAt", Value: -1}}},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, update *Update) error {
	_, err := r.collection.InsertOne(ctx, update)
	return err
}

// List returns recent updates, newest first, optionally filtered by region kind
func (r *Repository) List(ctx context.Context, region string, limit int) ([]Update, error) {
	filter := bson.M{}
	if region != "" {
		filter["region"] = region
	}

	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "lastRunAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []Update
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if results == nil {
		results = []Update{}
	}
	return results, nil
}
