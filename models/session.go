package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalSession is an authenticated approval context identified by an
// opaque bearer token. A session is usable exactly while now < ExpiresAt;
// revocation force-sets ExpiresAt to now and is terminal.
type ApprovalSession struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ApproverID   primitive.ObjectID `json:"approverId" bson:"approverId"`
	ClientID     primitive.ObjectID `json:"clientId" bson:"clientId"`
	Token        string             `json:"-" bson:"token"`
	IssuedAt     time.Time          `json:"issuedAt" bson:"issuedAt"`
	ExpiresAt    time.Time          `json:"expiresAt" bson:"expiresAt"`
	LastActivity time.Time          `json:"lastActivity,omitempty" bson:"lastActivity,omitempty"`
	IPAddress    string             `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent    string             `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
}

// Valid reports whether the session is still usable at the given time.
func (s *ApprovalSession) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
