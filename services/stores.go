// services/stores.go
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/models"
)

// Store interfaces consumed by the portal services. The mongo-backed
// implementations live in the repositories package; tests substitute
// in-memory fakes.

// ApproverStore resolves normalized identifiers to approver records
type ApproverStore interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.Approver, error)
	FindActiveByPhone(ctx context.Context, phone string) (*models.Approver, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Approver, error)
}

// ClientStore reads client accounts
type ClientStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	FindBySlug(ctx context.Context, slug string) (*models.Client, error)
}

// ChallengeStore persists OTP challenges
type ChallengeStore interface {
	Create(ctx context.Context, challenge *models.OTPChallenge) error
	// LatestUnconsumed returns the most recently issued unconsumed
	// challenge for the approver, or repositories.ErrNotFound.
	LatestUnconsumed(ctx context.Context, approverID primitive.ObjectID) (*models.OTPChallenge, error)
	// Consume flips consumed to true if and only if it is still false.
	// Returns false when another request got there first.
	Consume(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionStore persists approval sessions
type SessionStore interface {
	Create(ctx context.Context, session *models.ApprovalSession) error
	FindByToken(ctx context.Context, token string) (*models.ApprovalSession, error)
	TouchActivity(ctx context.Context, id primitive.ObjectID, at time.Time) error
	// Revoke force-sets expiresAt to the given time when the session is
	// still live. Idempotent: revoking a dead session is a no-op.
	Revoke(ctx context.Context, id primitive.ObjectID, at time.Time) error
	ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.ApprovalSession, error)
}

// CodeSender dispatches a verification code through the channel implied
// by the identifier kind.
type CodeSender interface {
	Send(ctx context.Context, channel string, approver *models.Approver, code string, ttl time.Duration) error
}

// EventBroadcaster pushes portal events to agency dashboards
type EventBroadcaster interface {
	Broadcast(event models.PortalEvent)
}
