package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Portal event names. The set is closed: every event pushed to agency
// dashboards is one of these, each with its own payload type.
const (
	EventPostApproved   = "post.approved"
	EventPostRejected   = "post.rejected"
	EventSessionCreated = "session.created"
)

// PortalEvent is the envelope broadcast over the websocket hub to the
// dashboards of one client.
type PortalEvent struct {
	Event      string      `json:"event"`
	ClientID   string      `json:"clientId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// PostDecidedPayload accompanies post.approved and post.rejected
type PostDecidedPayload struct {
	PostID       string `json:"postId"`
	Caption      string `json:"caption"`
	ApproverName string `json:"approverName,omitempty"`
	Comment      string `json:"comment,omitempty"`
	Auto         bool   `json:"auto,omitempty"`
}

// SessionCreatedPayload accompanies session.created
type SessionCreatedPayload struct {
	ApproverName string    `json:"approverName"`
	Channel      string    `json:"channel"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// NewPostDecidedEvent builds the event for a client decision on a post.
func NewPostDecidedEvent(post Post, approverName string, approved bool) PortalEvent {
	name := EventPostRejected
	if approved {
		name = EventPostApproved
	}
	payload := PostDecidedPayload{
		PostID:       post.ID.Hex(),
		Caption:      post.Caption,
		ApproverName: approverName,
		Auto:         post.Decision != nil && post.Decision.Auto,
	}
	if post.Decision != nil {
		payload.Comment = post.Decision.Comment
	}
	return PortalEvent{
		Event:      name,
		ClientID:   post.ClientID.Hex(),
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}

// NewSessionCreatedEvent builds the event for a fresh approval session.
func NewSessionCreatedEvent(clientID primitive.ObjectID, approverName, channel string, expiresAt time.Time) PortalEvent {
	return PortalEvent{
		Event:      EventSessionCreated,
		ClientID:   clientID.Hex(),
		OccurredAt: time.Now(),
		Payload: SessionCreatedPayload{
			ApproverName: approverName,
			Channel:      channel,
			ExpiresAt:    expiresAt,
		},
	}
}
