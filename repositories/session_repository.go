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

// SessionRepository persists approval sessions. Sessions are never hard
// deleted; expiry and revocation are both just expiresAt comparisons.
type SessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *mongo.Client, dbName string) *SessionRepository {
	return &SessionRepository{
		collection: db.Database(dbName).Collection("approval_sessions"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.ApprovalSession) error {
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*models.ApprovalSession, error) {
	var session models.ApprovalSession
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// TouchActivity updates the last-activity timestamp
func (r *SessionRepository) TouchActivity(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastActivity": at}},
	)
	return err
}

// Revoke force-sets expiresAt to the given time. The filter keeps it
// idempotent and never resurrects an already-expired session.
func (r *SessionRepository) Revoke(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "expiresAt": bson.M{"$gt": at}},
		bson.M{"$set": bson.M{"expiresAt": at}},
	)
	return err
}

// ListByClient returns the client's sessions, newest first, for the
// admin dashboard.
func (r *SessionRepository) ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.ApprovalSession, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "issuedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.ApprovalSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
