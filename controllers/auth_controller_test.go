package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/config"
	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
	"github.com/aprovacriativos/aprova_backend/services"
)

// Minimal in-memory stores backing the HTTP flow tests

type memApproverStore struct {
	approver *models.Approver
}

func (m *memApproverStore) FindActiveByEmail(ctx context.Context, email string) (*models.Approver, error) {
	if m.approver.Email == email && m.approver.IsActive {
		return m.approver, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memApproverStore) FindActiveByPhone(ctx context.Context, phone string) (*models.Approver, error) {
	if m.approver.Phone == phone && m.approver.IsActive {
		return m.approver, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memApproverStore) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Approver, error) {
	if m.approver.ID == id && m.approver.IsActive {
		return m.approver, nil
	}
	return nil, repositories.ErrNotFound
}

type memClientStore struct {
	client *models.Client
}

func (m *memClientStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	if m.client.ID == id {
		return m.client, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memClientStore) FindBySlug(ctx context.Context, slug string) (*models.Client, error) {
	if m.client.Slug == slug {
		return m.client, nil
	}
	return nil, repositories.ErrNotFound
}

type memChallengeStore struct {
	mu         sync.Mutex
	challenges []*models.OTPChallenge
}

func (m *memChallengeStore) Create(ctx context.Context, challenge *models.OTPChallenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if challenge.ID.IsZero() {
		challenge.ID = primitive.NewObjectID()
	}
	copied := *challenge
	m.challenges = append(m.challenges, &copied)
	return nil
}

func (m *memChallengeStore) LatestUnconsumed(ctx context.Context, approverID primitive.ObjectID) (*models.OTPChallenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.OTPChallenge
	for _, ch := range m.challenges {
		if ch.ApproverID != approverID || ch.Consumed {
			continue
		}
		if latest == nil || ch.CreatedAt.After(latest.CreatedAt) {
			latest = ch
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *memChallengeStore) Consume(ctx context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.challenges {
		if ch.ID == id && !ch.Consumed {
			ch.Consumed = true
			return true, nil
		}
	}
	return false, nil
}

func (m *memChallengeStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions []*models.ApprovalSession
}

func (m *memSessionStore) Create(ctx context.Context, session *models.ApprovalSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	copied := *session
	m.sessions = append(m.sessions, &copied)
	return nil
}

func (m *memSessionStore) FindByToken(ctx context.Context, token string) (*models.ApprovalSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memSessionStore) TouchActivity(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return nil
}

func (m *memSessionStore) Revoke(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id && s.ExpiresAt.After(at) {
			s.ExpiresAt = at
		}
	}
	return nil
}

func (m *memSessionStore) ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.ApprovalSession, error) {
	return nil, nil
}

type memSender struct {
	mu       sync.Mutex
	lastCode string
}

func (m *memSender) Send(ctx context.Context, channel string, approver *models.Approver, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCode = code
	return nil
}

func (m *memSender) code() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCode
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newPortalTestServer(t *testing.T) (*echo.Echo, *memSender) {
	t.Helper()

	client := &models.Client{ID: primitive.NewObjectID(), Name: "Estudio Foto", Slug: "estudio-foto", IsActive: true}
	approver := &models.Approver{
		ID:       primitive.NewObjectID(),
		ClientID: client.ID,
		FullName: "Renata Alves",
		Email:    "renata@estudiofoto.com",
		IsActive: true,
	}

	cfg := &config.Config{ChallengeTTL: 10 * time.Minute, SessionTTL: 7 * 24 * time.Hour}
	sender := &memSender{}
	otp := services.NewOTPService(cfg, &memApproverStore{approver: approver}, &memClientStore{client: client}, &memChallengeStore{}, &memSessionStore{}, sender, nil, nil)

	authController := NewPortalAuthController(otp)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	e.POST("/api/portal/send-code", authController.SendCode)
	e.POST("/api/portal/verify-code", authController.VerifyCode)

	gated := e.Group("/api/portal")
	gated.Use(middleware.ApproverSession(otp))
	gated.GET("/session", authController.Session)
	gated.POST("/logout", authController.Logout)

	return e, sender
}

func postJSON(e *echo.Echo, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPortalLoginFlow(t *testing.T) {
	e, sender := newPortalTestServer(t)

	rec := postJSON(e, "/api/portal/send-code", `{"identifier":"Renata@EstudioFoto.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sendResp models.SendCodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sendResp))
	assert.Equal(t, "email", sendResp.IdentifierType)
	assert.Equal(t, "re****@estudiofoto.com", sendResp.MaskedDestination)

	rec = postJSON(e, "/api/portal/verify-code", `{"identifier":"renata@estudiofoto.com","code":"`+sender.code()+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var verifyResp models.VerifyCodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verifyResp))
	assert.True(t, verifyResp.Success)
	require.NotEmpty(t, verifyResp.SessionToken)
	assert.Equal(t, "estudio-foto", verifyResp.Client.Slug)

	// The minted token opens the gated surface
	req := httptest.NewRequest(http.MethodGet, "/api/portal/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+verifyResp.SessionToken)
	sessionRec := httptest.NewRecorder()
	e.ServeHTTP(sessionRec, req)
	assert.Equal(t, http.StatusOK, sessionRec.Code)

	// Logout revokes it
	rec = postJSON(e, "/api/portal/logout", "", verifyResp.SessionToken)
	require.Equal(t, http.StatusOK, rec.Code)

	sessionRec = httptest.NewRecorder()
	e.ServeHTTP(sessionRec, req)
	assert.Equal(t, http.StatusUnauthorized, sessionRec.Code)
	assert.Contains(t, sessionRec.Body.String(), "Session expired, please log in again")
}

func TestSendCodeUnknownIdentifierResponse(t *testing.T) {
	e, _ := newPortalTestServer(t)

	rec := postJSON(e, "/api/portal/send-code", `{"identifier":"stranger@nowhere.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid code or identifier, try again")
}

func TestVerifyCodeWrongCodeResponse(t *testing.T) {
	e, sender := newPortalTestServer(t)

	rec := postJSON(e, "/api/portal/send-code", `{"identifier":"renata@estudiofoto.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	wrong := "000000"
	if sender.code() == wrong {
		wrong = "000001"
	}

	rec = postJSON(e, "/api/portal/verify-code", `{"identifier":"renata@estudiofoto.com","code":"`+wrong+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid code or identifier, try again")
}

func TestVerifyCodeMalformedCodeResponse(t *testing.T) {
	e, _ := newPortalTestServer(t)

	rec := postJSON(e, "/api/portal/verify-code", `{"identifier":"renata@estudiofoto.com","code":"12ab"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGatedRouteWithoutToken(t *testing.T) {
	e, _ := newPortalTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/portal/session", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid session")
}
