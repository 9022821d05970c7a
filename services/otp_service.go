// services/otp_service.go
package services

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/config"
	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
	"github.com/aprovacriativos/aprova_backend/utils"
)

// Hourly OTP budgets per identifier
const (
	sendAttemptLimit   = 5
	verifyAttemptLimit = 10
)

// Expired challenges stay around this long for auditing before the
// janitor removes them.
const challengeAuditWindow = 24 * time.Hour

// SessionMetadata is the request context recorded on a fresh session
type SessionMetadata struct {
	IPAddress string
	UserAgent string
}

// SessionContext is the scoping context handed to gated endpoints after
// a successful token validation. Every content query must be keyed by
// Client.ID, never by anything client-supplied.
type SessionContext struct {
	Session  *models.ApprovalSession
	Approver *models.Approver
	Client   *models.Client
}

// OTPService owns the challenge and session lifecycle: code issue,
// verification, session minting, validation and revocation.
type OTPService struct {
	cfg        *config.Config
	resolver   *Resolver
	clients    ClientStore
	challenges ChallengeStore
	sessions   SessionStore
	sender     CodeSender
	broadcast  EventBroadcaster
	redis      *redis.Client
	logger     *log.Logger
	now        func() time.Time
}

// NewOTPService creates the OTP session manager. The broadcaster may be
// nil; session events are then skipped.
func NewOTPService(cfg *config.Config, approvers ApproverStore, clients ClientStore, challenges ChallengeStore, sessions SessionStore, sender CodeSender, broadcast EventBroadcaster, redisClient *redis.Client) *OTPService {
	return &OTPService{
		cfg:        cfg,
		resolver:   NewResolver(approvers),
		clients:    clients,
		challenges: challenges,
		sessions:   sessions,
		sender:     sender,
		broadcast:  broadcast,
		redis:      redisClient,
		logger:     log.New(os.Stdout, "[OTP] ", log.LstdFlags),
		now:        time.Now,
	}
}

// SendCode resolves the identifier, issues a fresh challenge and hands
// the code to the dispatch channel. The challenge is persisted before
// dispatch: a delivery failure leaves it valid for a resend, but the
// caller never sees a success message for a code that was not sent.
func (s *OTPService) SendCode(ctx context.Context, identifier string) (*models.SendCodeResponse, error) {
	approver, kind, normalized, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, ErrValidation
		}
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Printf("send-code: no approver for %s identifier %q", kind, normalized)
			return nil, ErrInvalidIdentifierOrCode
		}
		return nil, err
	}

	if err := utils.CheckOTPAttempts(ctx, s.redis, "send", normalized, sendAttemptLimit); err != nil {
		return nil, err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	now := s.now()
	challenge := &models.OTPChallenge{
		ApproverID: approver.ID,
		ClientID:   approver.ClientID,
		Code:       code,
		Channel:    kind,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.ChallengeTTL),
		Consumed:   false,
	}

	// Persist first, then dispatch. Older unconsumed challenges are
	// superseded by this one, not deleted.
	if err := s.challenges.Create(ctx, challenge); err != nil {
		return nil, err
	}

	if err := s.sender.Send(ctx, kind, approver, code, s.cfg.ChallengeTTL); err != nil {
		s.logger.Printf("send-code: dispatch over %s failed for approver %s: %v", kind, approver.ID.Hex(), err)
		return nil, ErrDispatchFailed
	}

	masked := utils.MaskPhone(approver.Phone)
	if kind == utils.IdentifierEmail {
		masked = utils.MaskEmail(approver.Email)
	}

	return &models.SendCodeResponse{
		Message:           "Verification code sent",
		IdentifierType:    kind,
		MaskedDestination: masked,
		ExpiresAt:         challenge.ExpiresAt,
	}, nil
}

// VerifyCode checks the submitted code against the newest unconsumed
// challenge and, on a match, consumes it and mints a session. The
// consume step is a single conditional update, so two racing submissions
// of the same code produce exactly one session.
func (s *OTPService) VerifyCode(ctx context.Context, identifier, code string, meta SessionMetadata) (*models.VerifyCodeResponse, error) {
	approver, kind, normalized, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, ErrValidation
		}
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Printf("verify-code: no approver for %s identifier", kind)
			return nil, ErrInvalidIdentifierOrCode
		}
		return nil, err
	}

	if err := utils.CheckOTPAttempts(ctx, s.redis, "verify", normalized, verifyAttemptLimit); err != nil {
		return nil, err
	}

	challenge, err := s.challenges.LatestUnconsumed(ctx, approver.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Printf("verify-code: no pending challenge for approver %s", approver.ID.Hex())
			return nil, ErrInvalidIdentifierOrCode
		}
		return nil, err
	}

	now := s.now()
	if !now.Before(challenge.ExpiresAt) {
		s.logger.Printf("verify-code: challenge %s expired for approver %s", challenge.ID.Hex(), approver.ID.Hex())
		return nil, ErrInvalidIdentifierOrCode
	}

	// Exact string match on the 6 digits, nothing partial
	if challenge.Code != code {
		s.logger.Printf("verify-code: code mismatch for approver %s", approver.ID.Hex())
		return nil, ErrInvalidIdentifierOrCode
	}

	consumed, err := s.challenges.Consume(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// A concurrent submission won the race; this one fails like any
		// other invalid code.
		s.logger.Printf("verify-code: challenge %s already consumed", challenge.ID.Hex())
		return nil, ErrInvalidIdentifierOrCode
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.ApprovalSession{
		ApproverID:   approver.ID,
		ClientID:     approver.ClientID,
		Token:        token,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.cfg.SessionTTL),
		LastActivity: now,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, approver.ClientID)
	if err != nil {
		return nil, err
	}

	if s.broadcast != nil {
		s.broadcast.Broadcast(models.NewSessionCreatedEvent(client.ID, approver.FullName, kind, session.ExpiresAt))
	}

	s.logger.Printf("verify-code: session issued for approver %s (client %s)", approver.ID.Hex(), client.Slug)

	return &models.VerifyCodeResponse{
		Success:      true,
		SessionToken: token,
		ExpiresAt:    session.ExpiresAt,
		Approver:     models.ApproverRef{Name: approver.FullName},
		Client:       models.ClientRef{ID: client.ID.Hex(), Slug: client.Slug},
	}, nil
}

// ValidateSession resolves a bearer token to its scoping context. The
// last-activity update is best-effort and does not block the request.
func (s *OTPService) ValidateSession(ctx context.Context, token string) (*SessionContext, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	now := s.now()
	if !session.Valid(now) {
		return nil, ErrSessionExpired
	}

	go func(id primitive.ObjectID) {
		touchCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sessions.TouchActivity(touchCtx, id, now); err != nil {
			s.logger.Printf("validate-session: activity update failed for %s: %v", id.Hex(), err)
		}
	}(session.ID)

	approver, err := s.approverByID(ctx, session)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, session.ClientID)
	if err != nil {
		return nil, err
	}

	return &SessionContext{Session: session, Approver: approver, Client: client}, nil
}

// RevokeSession force-expires a session. Idempotent: revoking an
// already-dead session succeeds without effect.
func (s *OTPService) RevokeSession(ctx context.Context, sessionID primitive.ObjectID) error {
	return s.sessions.Revoke(ctx, sessionID, s.now())
}

// approverByID loads the session's approver. The approver must still
// exist and be active for the session to count.
func (s *OTPService) approverByID(ctx context.Context, session *models.ApprovalSession) (*models.Approver, error) {
	approver, err := s.resolver.approvers.FindActiveByID(ctx, session.ApproverID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	return approver, nil
}

// StartChallengeJanitor periodically removes challenges whose audit
// window has passed. Runs until the process exits.
func (s *OTPService) StartChallengeJanitor() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	if err := s.cleanupChallenges(); err != nil {
		s.logger.Printf("Initial challenge cleanup failed: %v", err)
	}

	for range ticker.C {
		if err := s.cleanupChallenges(); err != nil {
			s.logger.Printf("Challenge cleanup failed: %v", err)
		}
	}
}

func (s *OTPService) cleanupChallenges() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := s.now().Add(-challengeAuditWindow)
	deleted, err := s.challenges.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Printf("Cleaned up %d expired challenges", deleted)
	}
	return nil
}
