// routes/portal_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/aprovacriativos/aprova_backend/controllers"
	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/services"
)

// SetupPortalRoutes registers the session-gated portal endpoints
func SetupPortalRoutes(e *echo.Echo, otp *services.OTPService, authController *controllers.PortalAuthController, approvalController *controllers.ApprovalController) {
	portal := e.Group("/api/portal")
	portal.Use(middleware.ApproverSession(otp))

	portal.GET("/session", authController.Session)
	portal.POST("/logout", authController.Logout)

	portal.GET("/posts", approvalController.ListPosts)
	portal.POST("/posts/:id/approve", approvalController.ApprovePost)
	portal.POST("/posts/:id/reject", approvalController.RejectPost)
}
