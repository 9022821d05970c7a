package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is an agency staff member with access to the dashboard surface
// (draft creation, session listing/revocation).
type Admin struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	FullName     string             `json:"fullName" bson:"fullName"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	LastLoginAt  time.Time          `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
}

// AdminLoginRequest is the dashboard login payload
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
