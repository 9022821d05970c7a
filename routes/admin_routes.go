// routes/admin_routes.go
package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/controllers"
	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/websocket"
)

// SetupAdminRoutes registers the agency dashboard endpoints
func SetupAdminRoutes(e *echo.Echo, jwtSecret string, adminController *controllers.AdminController, hub *websocket.Hub) {
	e.POST("/api/admin/login", adminController.Login)

	admin := e.Group("/api/admin")
	admin.Use(middleware.AdminJWT(jwtSecret))

	admin.POST("/posts", adminController.CreatePost)
	admin.GET("/sessions", adminController.ListSessions)
	admin.POST("/sessions/:id/revoke", adminController.RevokeSession)
	admin.GET("/clients/:slug/portal-qrcode", adminController.GetPortalQRCode)

	admin.GET("/clients/:id/events", func(c echo.Context) error {
		clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid client id"})
		}
		return websocket.HandleDashboardSocket(c, hub, clientID.Hex())
	})
}
