// controllers/auth_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/services"
	"github.com/aprovacriativos/aprova_backend/utils"
)

// User-facing messages. Identifier misses and bad codes share one
// message so the endpoint cannot be used to enumerate approvers.
const (
	msgInvalidIdentifierOrCode = "Invalid code or identifier, try again"
	msgDispatchFailed          = "Could not send code, try again"
	msgTooManyAttempts         = "Too many attempts, try again later"
)

// PortalAuthController handles the client portal login flow
type PortalAuthController struct {
	otp    *services.OTPService
	logger *log.Logger
}

// NewPortalAuthController creates a new portal auth controller
func NewPortalAuthController(otp *services.OTPService) *PortalAuthController {
	return &PortalAuthController{
		otp:    otp,
		logger: log.New(os.Stdout, "[PORTAL-AUTH] ", log.LstdFlags),
	}
}

// SendCode starts the login flow: resolve the identifier, issue a
// challenge and dispatch the code.
func (pc *PortalAuthController) SendCode(c echo.Context) error {
	var req models.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgInvalidIdentifierOrCode})
	}

	resp, err := pc.otp.SendCode(c.Request().Context(), req.Identifier)
	if err != nil {
		return pc.sendCodeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// VerifyCode checks the submitted code and, on success, returns a fresh
// session token plus the approver/client identity for the redirect.
func (pc *PortalAuthController) VerifyCode(c echo.Context) error {
	var req models.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgInvalidIdentifierOrCode})
	}

	meta := services.SessionMetadata{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	resp, err := pc.otp.VerifyCode(c.Request().Context(), req.Identifier, req.Code, meta)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidIdentifierOrCode):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidIdentifierOrCode})
		case errors.Is(err, utils.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": msgTooManyAttempts})
		default:
			pc.logger.Printf("verify-code failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Session reports the validity of the caller's session. The middleware
// already validated the token; reaching the handler means it is good.
func (pc *PortalAuthController) Session(c echo.Context) error {
	sc := middleware.GetSessionContext(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":      true,
		"expires_at": sc.Session.ExpiresAt,
		"approver":   models.ApproverRef{Name: sc.Approver.FullName},
		"client":     models.ClientRef{ID: sc.Client.ID.Hex(), Slug: sc.Client.Slug},
	})
}

// Logout revokes the caller's own session
func (pc *PortalAuthController) Logout(c echo.Context) error {
	sc := middleware.GetSessionContext(c)

	if err := pc.otp.RevokeSession(c.Request().Context(), sc.Session.ID); err != nil {
		pc.logger.Printf("logout: revoke failed for session %s: %v", sc.Session.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to log out"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (pc *PortalAuthController) sendCodeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidIdentifierOrCode):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgInvalidIdentifierOrCode})
	case errors.Is(err, utils.ErrTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": msgTooManyAttempts})
	case errors.Is(err, services.ErrDispatchFailed):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": msgDispatchFailed})
	default:
		pc.logger.Printf("send-code failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
	}
}
