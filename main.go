package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/aprovacriativos/aprova_backend/config"
	"github.com/aprovacriativos/aprova_backend/controllers"
	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/repositories"
	"github.com/aprovacriativos/aprova_backend/routes"
	"github.com/aprovacriativos/aprova_backend/services"
	"github.com/aprovacriativos/aprova_backend/websocket"
)

// CustomValidator wires go-playground/validator into Echo
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Connect to MongoDB
	db := config.ConnectDB(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Redis backs the OTP attempt limiter; the service degrades open
	// without it.
	config.ConnectRedis()
	defer config.CloseRedis()

	// Repositories
	approverRepo := repositories.NewApproverRepository(db, cfg.DBName)
	clientRepo := repositories.NewClientRepository(db, cfg.DBName)
	challengeRepo := repositories.NewChallengeRepository(db, cfg.DBName)
	sessionRepo := repositories.NewSessionRepository(db, cfg.DBName)
	postRepo := repositories.NewPostRepository(db, cfg.DBName)
	adminRepo := repositories.NewAdminRepository(db, cfg.DBName)

	// Event hub for the agency dashboards
	hub := websocket.NewHub()
	go hub.Run()

	// Services
	dispatcher := services.NewChannelDispatcher(cfg)
	otpService := services.NewOTPService(cfg, approverRepo, clientRepo, challengeRepo, sessionRepo, dispatcher, hub, config.GetRedisClient())
	autoApprover := services.NewAutoApprover(postRepo, hub, 1*time.Minute)

	// Controllers
	authController := controllers.NewPortalAuthController(otpService)
	approvalController := controllers.NewApprovalController(postRepo, hub)
	adminController := controllers.NewAdminController(cfg, adminRepo, clientRepo, postRepo, sessionRepo, otpService)

	// Background workers
	go otpService.StartChallengeJanitor()
	go autoApprover.Start()

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	rateLimiter := middleware.NewRateLimiter()
	e.Use(rateLimiter.RateLimit())

	// Health checks
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Aprova Criativos API is running")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded creatives and thumbnails
	e.Static("/uploads", "uploads")

	routes.SetupAuthRoutes(e, authController)
	routes.SetupPortalRoutes(e, otpService, authController, approvalController)
	routes.SetupAdminRoutes(e, cfg.JWTSecret, adminController, hub)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
