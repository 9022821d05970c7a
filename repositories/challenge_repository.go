package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aprovacriativos/aprova_backend/models"
)

// ChallengeRepository persists OTP challenges
type ChallengeRepository struct {
	collection *mongo.Collection
}

func NewChallengeRepository(db *mongo.Client, dbName string) *ChallengeRepository {
	return &ChallengeRepository{
		collection: db.Database(dbName).Collection("otp_challenges"),
	}
}

// Create inserts a fresh challenge. Prior unconsumed challenges for the
// same approver stay in place for auditing; only the newest one can
// verify.
func (r *ChallengeRepository) Create(ctx context.Context, challenge *models.OTPChallenge) error {
	if challenge.ID.IsZero() {
		challenge.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, challenge)
	return err
}

// LatestUnconsumed returns the most recently issued unconsumed challenge
// for the approver. Ordering is explicit (createdAt descending) rather
// than relying on scan order.
func (r *ChallengeRepository) LatestUnconsumed(ctx context.Context, approverID primitive.ObjectID) (*models.OTPChallenge, error) {
	findOpts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var challenge models.OTPChallenge
	err := r.collection.FindOne(ctx, bson.M{
		"approverId": approverID,
		"consumed":   false,
	}, findOpts).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// Consume marks a challenge consumed if and only if it still is not.
// The conditional filter makes double submits race safely: only the
// first caller sees true.
func (r *ChallengeRepository) Consume(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "consumed": false},
		bson.M{"$set": bson.M{"consumed": true}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// DeleteExpiredBefore removes challenges that expired before the cutoff
func (r *ChallengeRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"expiresAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
