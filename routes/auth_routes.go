// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/aprovacriativos/aprova_backend/controllers"
)

// SetupAuthRoutes registers the public portal login endpoints
func SetupAuthRoutes(e *echo.Echo, authController *controllers.PortalAuthController) {
	auth := e.Group("/api/portal")

	auth.POST("/send-code", authController.SendCode)
	auth.POST("/verify-code", authController.VerifyCode)
}
