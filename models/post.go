package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post status values. A post leaves "pending" exactly once.
const (
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"
)

// Post is a social-media draft awaiting client review.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID      primitive.ObjectID `json:"clientId" bson:"clientId"`
	Caption       string             `json:"caption" bson:"caption"`
	MediaPath     string             `json:"mediaPath,omitempty" bson:"mediaPath,omitempty"`
	ThumbnailPath string             `json:"thumbnailPath,omitempty" bson:"thumbnailPath,omitempty"`
	Status        string             `json:"status" bson:"status"`
	ScheduledFor  *time.Time         `json:"scheduledFor,omitempty" bson:"scheduledFor,omitempty"`
	// AutoApproveAt, when set, lets the auto-approve worker promote the
	// post if no approver has decided by then.
	AutoApproveAt *time.Time    `json:"autoApproveAt,omitempty" bson:"autoApproveAt,omitempty"`
	Decision      *PostDecision `json:"decision,omitempty" bson:"decision,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PostDecision records who decided a post and when. DecidedBy is empty
// for auto-approvals.
type PostDecision struct {
	DecidedBy primitive.ObjectID `json:"decidedBy,omitempty" bson:"decidedBy,omitempty"`
	DecidedAt time.Time          `json:"decidedAt" bson:"decidedAt"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Auto      bool               `json:"auto,omitempty" bson:"auto,omitempty"`
}

// CreatePostRequest is the dashboard payload for a new draft
type CreatePostRequest struct {
	ClientID      string     `json:"clientId" validate:"required"`
	Caption       string     `json:"caption" validate:"required"`
	MediaBase64   string     `json:"mediaBase64,omitempty"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
	AutoApproveAt *time.Time `json:"autoApproveAt,omitempty"`
}

// RejectPostRequest carries the client's rejection comment
type RejectPostRequest struct {
	Comment string `json:"comment"`
}
