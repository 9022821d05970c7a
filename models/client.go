package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is an agency customer whose social-media drafts go through the
// approval portal. Approvers, posts, challenges and sessions are all
// scoped to exactly one client.
type Client struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ClientRef is the denormalized client identity returned to the portal
// after a successful verification, used by the frontend redirect logic.
type ClientRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}
