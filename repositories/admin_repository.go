package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aprovacriativos/aprova_backend/models"
)

// AdminRepository reads agency staff accounts
type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Client, dbName string) *AdminRepository {
	return &AdminRepository{
		collection: db.Database(dbName).Collection("admins"),
	}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// RecordLogin updates the last-login timestamp, best effort
func (r *AdminRepository) RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLoginAt": at}},
	)
	return err
}
