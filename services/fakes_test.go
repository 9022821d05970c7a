package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
)

// In-memory store fakes. Behavior mirrors the mongo repositories:
// sentinel errors, conditional consume/revoke, explicit ordering.

type fakeApproverStore struct {
	mu        sync.Mutex
	approvers []*models.Approver
	ambiguous map[string]bool // identifiers that match more than one row
}

func newFakeApproverStore(approvers ...*models.Approver) *fakeApproverStore {
	return &fakeApproverStore{approvers: approvers, ambiguous: make(map[string]bool)}
}

func (f *fakeApproverStore) FindActiveByEmail(ctx context.Context, email string) (*models.Approver, error) {
	return f.find(email, func(a *models.Approver) bool { return a.Email == email })
}

func (f *fakeApproverStore) FindActiveByPhone(ctx context.Context, phone string) (*models.Approver, error) {
	return f.find(phone, func(a *models.Approver) bool { return a.Phone == phone })
}

func (f *fakeApproverStore) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Approver, error) {
	return f.find(id.Hex(), func(a *models.Approver) bool { return a.ID == id })
}

func (f *fakeApproverStore) find(key string, match func(*models.Approver) bool) (*models.Approver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ambiguous[key] {
		return nil, repositories.ErrAmbiguous
	}
	for _, a := range f.approvers {
		if a.IsActive && match(a) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeClientStore struct {
	clients []*models.Client
}

func (f *fakeClientStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientStore) FindBySlug(ctx context.Context, slug string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeChallengeStore struct {
	mu         sync.Mutex
	challenges []*models.OTPChallenge
}

func (f *fakeChallengeStore) Create(ctx context.Context, challenge *models.OTPChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if challenge.ID.IsZero() {
		challenge.ID = primitive.NewObjectID()
	}
	copied := *challenge
	f.challenges = append(f.challenges, &copied)
	return nil
}

func (f *fakeChallengeStore) LatestUnconsumed(ctx context.Context, approverID primitive.ObjectID) (*models.OTPChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []*models.OTPChallenge
	for _, ch := range f.challenges {
		if ch.ApproverID == approverID && !ch.Consumed {
			matches = append(matches, ch)
		}
	}
	if len(matches) == 0 {
		return nil, repositories.ErrNotFound
	}
	// Newest challenge wins; on equal timestamps the later insertion
	// wins, matching "most recently issued" in the mongo repository.
	latest := matches[0]
	for _, ch := range matches[1:] {
		if !ch.CreatedAt.Before(latest.CreatedAt) {
			latest = ch
		}
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeChallengeStore) Consume(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.challenges {
		if ch.ID == id && !ch.Consumed {
			ch.Consumed = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChallengeStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kept []*models.OTPChallenge
	var deleted int64
	for _, ch := range f.challenges {
		if ch.ExpiresAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, ch)
	}
	f.challenges = kept
	return deleted, nil
}

func (f *fakeChallengeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.challenges)
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions []*models.ApprovalSession
}

func (f *fakeSessionStore) Create(ctx context.Context, session *models.ApprovalSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	copied := *session
	f.sessions = append(f.sessions, &copied)
	return nil
}

func (f *fakeSessionStore) FindByToken(ctx context.Context, token string) (*models.ApprovalSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.Token == token {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSessionStore) TouchActivity(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.ID == id {
			s.LastActivity = at
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeSessionStore) Revoke(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.ID == id && s.ExpiresAt.After(at) {
			s.ExpiresAt = at
		}
	}
	return nil
}

func (f *fakeSessionStore) ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.ApprovalSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.ApprovalSession
	for _, s := range f.sessions {
		if s.ClientID == clientID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

func (f *fakeSessionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// fakeSender records dispatched codes and can be told to fail
type fakeSender struct {
	mu   sync.Mutex
	sent []sentCode
	fail bool
}

type sentCode struct {
	channel string
	code    string
}

func (f *fakeSender) Send(ctx context.Context, channel string, approver *models.Approver, code string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("gateway unreachable")
	}
	f.sent = append(f.sent, sentCode{channel: channel, code: code})
	return nil
}

func (f *fakeSender) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].code
}

func (f *fakeSender) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []models.PortalEvent
}

func (f *fakeBroadcaster) Broadcast(event models.PortalEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeBroadcaster) eventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var names []string
	for _, e := range f.events {
		names = append(names, e.Event)
	}
	return names
}
