package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aprovacriativos/aprova_backend/models"
)

// ClientRepository reads client accounts
type ClientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Client, dbName string) *ClientRepository {
	return &ClientRepository{
		collection: db.Database(dbName).Collection("clients"),
	}
}

func (r *ClientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) FindBySlug(ctx context.Context, slug string) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}
