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

// PostRepository persists social-media drafts
type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Client, dbName string) *PostRepository {
	return &PostRepository{
		collection: db.Database(dbName).Collection("posts"),
	}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// ListPendingByClient returns the drafts awaiting the client's review,
// oldest first so the queue reads top to bottom.
func (r *PostRepository) ListPendingByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Post, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{
		"clientId": clientID,
		"status":   models.PostStatusPending,
	}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Decide transitions a pending post to approved or rejected. The filter
// pins both the client (tenant isolation) and the pending status, so a
// post can only leave pending once; losing a race reads as ErrNotFound.
func (r *PostRepository) Decide(ctx context.Context, postID, clientID primitive.ObjectID, status string, decision models.PostDecision) (*models.Post, error) {
	returnOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "clientId": clientID, "status": models.PostStatusPending},
		bson.M{"$set": bson.M{
			"status":    status,
			"decision":  decision,
			"updatedAt": decision.DecidedAt,
		}},
		returnOpts,
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListDueForAutoApproval returns pending posts whose auto-approve
// deadline has passed.
func (r *PostRepository) ListDueForAutoApproval(ctx context.Context, now time.Time, limit int64) ([]models.Post, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "autoApproveAt", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{
		"status":        models.PostStatusPending,
		"autoApproveAt": bson.M{"$ne": nil, "$lte": now},
	}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AutoApprove promotes one due pending post. Conditional on the status
// so a concurrent client decision always wins.
func (r *PostRepository) AutoApprove(ctx context.Context, postID primitive.ObjectID, at time.Time) (*models.Post, error) {
	returnOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{
			"_id":           postID,
			"status":        models.PostStatusPending,
			"autoApproveAt": bson.M{"$lte": at},
		},
		bson.M{"$set": bson.M{
			"status":    models.PostStatusApproved,
			"decision":  models.PostDecision{DecidedAt: at, Auto: true},
			"updatedAt": at,
		}},
		returnOpts,
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}
