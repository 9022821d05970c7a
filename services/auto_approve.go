// services/auto_approve.go
package services

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/models"
)

// AutoApprovePostStore is the slice of the post repository the worker
// needs: find due drafts and promote them one at a time.
type AutoApprovePostStore interface {
	ListDueForAutoApproval(ctx context.Context, now time.Time, limit int64) ([]models.Post, error)
	// AutoApprove promotes a pending post whose auto-approve deadline
	// has passed. Returns repositories.ErrNotFound when the post was
	// already decided.
	AutoApprove(ctx context.Context, postID primitive.ObjectID, at time.Time) (*models.Post, error)
}

// AutoApprover promotes pending drafts whose auto-approve deadline has
// passed. Agencies use this so a silent client does not block the
// publishing calendar.
type AutoApprover struct {
	posts     AutoApprovePostStore
	broadcast EventBroadcaster
	interval  time.Duration
	batchSize int64
	logger    *log.Logger
	now       func() time.Time
}

// NewAutoApprover creates the worker; Start must be called to run it.
func NewAutoApprover(posts AutoApprovePostStore, broadcast EventBroadcaster, interval time.Duration) *AutoApprover {
	return &AutoApprover{
		posts:     posts,
		broadcast: broadcast,
		interval:  interval,
		batchSize: 100,
		logger:    log.New(os.Stdout, "[AUTO-APPROVE] ", log.LstdFlags),
		now:       time.Now,
	}
}

// Start runs the worker until the process exits
func (a *AutoApprover) Start() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	if err := a.RunOnce(context.Background()); err != nil {
		a.logger.Printf("Initial auto-approve pass failed: %v", err)
	}

	for range ticker.C {
		if err := a.RunOnce(context.Background()); err != nil {
			a.logger.Printf("Auto-approve pass failed: %v", err)
		}
	}
}

// RunOnce performs a single linear batch pass over due posts. Each post
// is promoted with a conditional update, so a client decision racing the
// worker always wins.
func (a *AutoApprover) RunOnce(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	now := a.now()
	due, err := a.posts.ListDueForAutoApproval(runCtx, now, a.batchSize)
	if err != nil {
		return err
	}

	approved := 0
	for _, post := range due {
		updated, err := a.posts.AutoApprove(runCtx, post.ID, now)
		if err != nil {
			// Lost the race to a real decision, or a transient store
			// error; either way move on to the next post.
			continue
		}
		approved++
		if a.broadcast != nil {
			a.broadcast.Broadcast(models.NewPostDecidedEvent(*updated, "", true))
		}
	}

	if approved > 0 {
		a.logger.Printf("Auto-approved %d posts", approved)
	}
	return nil
}
