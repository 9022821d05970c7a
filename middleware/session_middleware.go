// middleware/session_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/services"
)

// Context key for the validated approval session
const sessionContextKey = "sessionContext"

// ApproverSession gates portal endpoints on a valid approval session.
// The bearer token comes from the Authorization header or, for browser
// convenience, the session_token query parameter. On success the
// session's scoping context is stored on the request; every downstream
// query must use it instead of anything client-supplied.
func ApproverSession(otp *services.OTPService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)

			sc, err := otp.ValidateSession(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrSessionExpired) {
					return c.JSON(http.StatusUnauthorized, models.Response{
						Status:  http.StatusUnauthorized,
						Message: "Session expired, please log in again",
					})
				}
				if errors.Is(err, services.ErrSessionInvalid) {
					return c.JSON(http.StatusUnauthorized, models.Response{
						Status:  http.StatusUnauthorized,
						Message: "Invalid session",
					})
				}
				return c.JSON(http.StatusInternalServerError, models.Response{
					Status:  http.StatusInternalServerError,
					Message: "Failed to validate session",
				})
			}

			c.Set(sessionContextKey, sc)
			return next(c)
		}
	}
}

// GetSessionContext returns the validated session context set by
// ApproverSession, or nil outside a gated route.
func GetSessionContext(c echo.Context) *services.SessionContext {
	sc, _ := c.Get(sessionContextKey).(*services.SessionContext)
	return sc
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.QueryParam("session_token")
}
