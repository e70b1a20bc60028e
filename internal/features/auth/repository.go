package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for the auth feature
type Repository struct {
	users    *mongo.Collection
	sessions *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	users := db.Collection("users")
	sessions := db.Collection("sessions")

	_, _ = users.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	_, _ = sessions.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})

	return &Repository{users: users, sessions: sessions}
}

// UpsertByEmail finds the user for an email or provisions one. New
// accounts always start with the "user" role; roles are only changed
// administratively.
func (r *Repository) UpsertByEmail(ctx context.Context, identity *Identity) (*User, error) {
	now := time.Now().UTC()

	existing, err := r.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		update := bson.M{"$set": bson.M{
			"name":       identity.Name,
			"picture":    identity.Picture,
			"lastSeenAt": now,
		}}
		if _, err := r.users.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
			return nil, err
		}
		existing.Name = identity.Name
		existing.Picture = identity.Picture
		existing.LastSeenAt = &now
		return existing, nil
	}

	user := &User{
		ID:         uuid.NewString(),
		Email:      identity.Email,
		Name:       identity.Name,
		Picture:    identity.Picture,
		Role:       "user",
		CreatedAt:  now,
		LastSeenAt: &now,
	}
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		// Two concurrent first sign-ins can race on the email index;
		// the loser reads back the winner's record.
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByEmail(ctx, identity.Email)
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail finds a user by their email address
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User
	err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePreferredCity sets the city a user's dashboard defaults to
func (r *Repository) UpdatePreferredCity(ctx context.Context, userID, city string) error {
	result, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"preferredCity": city},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// CreateSession records an issued session for later revocation
func (r *Repository) CreateSession(ctx context.Context, session *Session) error {
	_, err := r.sessions.InsertOne(ctx, session)
	return err
}

// RevokeSessions marks all of a user's live sessions revoked and
// returns how many were affected.
func (r *Repository) RevokeSessions(ctx context.Context, userID string) (int64, error) {
	now := time.Now().UTC()
	result, err := r.sessions.UpdateMany(ctx,
		bson.M{"userId": userID, "revokedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revokedAt": now}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
