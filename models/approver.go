package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Approver is a person authorized to approve or reject content for one
// client account. At least one of Email/Phone must be set; both are
// stored in normalized form so identifier lookups are exact matches.
type Approver struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID  primitive.ObjectID `json:"clientId" bson:"clientId"`
	FullName  string             `json:"fullName" bson:"fullName"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ApproverRef is the denormalized approver identity returned alongside a
// fresh session token.
type ApproverRef struct {
	Name string `json:"name"`
}
