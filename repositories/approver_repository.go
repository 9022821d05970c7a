package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aprovacriativos/aprova_backend/models"
)

// ApproverRepository reads the approver directory. The directory is
// written by the agency dashboard; this service only reads it.
type ApproverRepository struct {
	collection *mongo.Collection
}

func NewApproverRepository(db *mongo.Client, dbName string) *ApproverRepository {
	return &ApproverRepository{
		collection: db.Database(dbName).Collection("approvers"),
	}
}

// FindActiveByEmail returns the single active approver registered with
// the normalized email. Zero matches yield ErrNotFound; two or more
// yield ErrAmbiguous — the lookup never silently picks one.
func (r *ApproverRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Approver, error) {
	return r.findOneActive(ctx, bson.M{"email": email, "isActive": true})
}

// FindActiveByPhone returns the single active approver registered with
// the normalized phone number.
func (r *ApproverRepository) FindActiveByPhone(ctx context.Context, phone string) (*models.Approver, error) {
	return r.findOneActive(ctx, bson.M{"phone": phone, "isActive": true})
}

// FindActiveByID looks an approver up by primary key
func (r *ApproverRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Approver, error) {
	var approver models.Approver
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&approver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &approver, nil
}

// findOneActive fetches up to two matches so ambiguity is detected
// instead of depending on incidental scan order.
func (r *ApproverRepository) findOneActive(ctx context.Context, filter bson.M) (*models.Approver, error) {
	findOpts := options.Find().SetLimit(2)
	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Approver
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrAmbiguous
	}
}
