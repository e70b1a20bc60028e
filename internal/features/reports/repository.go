package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/crisiswatch/api/pkg/errors"
)

// Repository is the MongoDB-backed report store. Every call runs under a
// bounded timeout so a wedged server surfaces as ErrStoreTimeout instead
// of hanging the request.
type Repository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("reports")

	// Create indexes
	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "submitterId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})

	return &Repository{collection: collection, timeout: 10 * time.Second}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Repository) Create(ctx context.Context, report *Report) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, report)
	return wrapStoreErr(err)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Report, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var report Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapStoreErr(err)
	}
	return &report, nil
}

// UpdateStatus applies a status change only if the report still carries
// the expected status. Mongo's single-document atomicity makes this the
// serialization point for concurrent transitions.
func (r *Repository) UpdateStatus(ctx context.Context, id string, expected, next Status) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": expected},
		bson.M{"$set": bson.M{
			"status":    next,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *Repository) UpdateAIFields(ctx context.Context, id string, score float64, severity Severity, autoFlag bool, analyzedAt time.Time) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"aiSeverityScore": score,
			"severity":        severity,
			"aiAutoFlag":      autoFlag,
			"analyzedAt":      analyzedAt,
			"updatedAt":       time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return result.MatchedCount == 1, nil
}

// List returns reports matching the optional city/status filters, newest
// first, with the total count for pagination.
func (r *Repository) List(ctx context.Context, city string, status Status, limit, offset int) ([]Report, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if city != "" {
		filter["city"] = city
	}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	defer cursor.Close(ctx)

	var results []Report
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	if results == nil {
		results = []Report{}
	}
	return results, total, nil
}

// ListActive returns every pending or validated report. The cursor read
// is a consistent snapshot of matching documents for this one call;
// separate polls may observe different sets, which is fine.
func (r *Repository) ListActive(ctx context.Context) ([]Report, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": []Status{StatusPending, StatusValidated}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer cursor.Close(ctx)

	var results []Report
	if err := cursor.All(ctx, &results); err != nil {
		return nil, wrapStoreErr(err)
	}

	if results == nil {
		results = []Report{}
	}
	return results, nil
}

// ListSince returns reports created at or after the cutoff, used by the
// AI batch analysis to pick up recent submissions.
func (r *Repository) ListSince(ctx context.Context, cutoff time.Time) ([]Report, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"createdAt": bson.M{"$gte": cutoff}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer cursor.Close(ctx)

	var results []Report
	if err := cursor.All(ctx, &results); err != nil {
		return nil, wrapStoreErr(err)
	}

	if results == nil {
		results = []Report{}
	}
	return results, nil
}

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", errs.ErrStoreTimeout, err)
	}
	return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
}
