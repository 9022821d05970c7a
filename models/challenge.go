package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPChallenge is one issued verification code. Challenges are never
// reused: a new send supersedes prior unconsumed challenges for the same
// approver, and only the newest one can verify. Old rows are kept for a
// short audit window instead of being deleted on issue.
type OTPChallenge struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ApproverID primitive.ObjectID `json:"approverId" bson:"approverId"`
	ClientID   primitive.ObjectID `json:"clientId" bson:"clientId"`
	Code       string             `json:"-" bson:"code"`
	Channel    string             `json:"channel" bson:"channel"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt" bson:"expiresAt"`
	Consumed   bool               `json:"consumed" bson:"consumed"`
}
