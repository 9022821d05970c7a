// controllers/admin_controller.go
package controllers

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/aprovacriativos/aprova_backend/config"
	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
	"github.com/aprovacriativos/aprova_backend/services"
	"github.com/aprovacriativos/aprova_backend/utils"
)

// AdminController serves the agency dashboard: login, draft creation,
// session oversight and the portal QR code.
type AdminController struct {
	cfg      *config.Config
	admins   *repositories.AdminRepository
	clients  *repositories.ClientRepository
	posts    *repositories.PostRepository
	sessions *repositories.SessionRepository
	otp      *services.OTPService
	logger   *log.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(cfg *config.Config, admins *repositories.AdminRepository, clients *repositories.ClientRepository, posts *repositories.PostRepository, sessions *repositories.SessionRepository, otp *services.OTPService) *AdminController {
	return &AdminController{
		cfg:      cfg,
		admins:   admins,
		clients:  clients,
		posts:    posts,
		sessions: sessions,
		otp:      otp,
		logger:   log.New(os.Stdout, "[ADMIN] ", log.LstdFlags),
	}
}

// Login authenticates an agency staff member and issues a dashboard JWT
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	admin, err := ac.admins.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid email or password",
			})
		}
		ac.logger.Printf("login lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	token, err := middleware.GenerateAdminJWT(ac.cfg.JWTSecret, admin.ID.Hex(), admin.Email)
	if err != nil {
		ac.logger.Printf("token generation failed for admin %s: %v", admin.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong",
		})
	}

	go func(id primitive.ObjectID) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.admins.RecordLogin(ctx, id, time.Now()); err != nil {
			ac.logger.Printf("last-login update failed for admin %s: %v", id.Hex(), err)
		}
	}(admin.ID)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": map[string]string{
				"id":       admin.ID.Hex(),
				"email":    admin.Email,
				"fullName": admin.FullName,
			},
		},
	})
}

// CreatePost registers a new draft for a client's review queue
func (ac *AdminController) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Client id and caption are required",
		})
	}

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client id",
		})
	}

	if _, err := ac.clients.FindByID(c.Request().Context(), clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Client not found",
			})
		}
		ac.logger.Printf("client lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong",
		})
	}

	post := &models.Post{
		ClientID:      clientID,
		Caption:       req.Caption,
		Status:        models.PostStatusPending,
		ScheduledFor:  req.ScheduledFor,
		AutoApproveAt: req.AutoApproveAt,
		CreatedAt:     time.Now(),
	}

	if req.MediaBase64 != "" {
		mediaPath, thumbPath, err := utils.SavePostMedia(req.MediaBase64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid media attachment",
			})
		}
		post.MediaPath = mediaPath
		post.ThumbnailPath = thumbPath
	}

	if err := ac.posts.Create(c.Request().Context(), post); err != nil {
		ac.logger.Printf("create post failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create post",
		})
	}

	ac.logger.Printf("post %s created for client %s", post.ID.Hex(), clientID.Hex())

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Post created",
		Data:    post,
	})
}

// ListSessions returns a client's approval sessions, newest first
func (ac *AdminController) ListSessions(c echo.Context) error {
	clientID, err := primitive.ObjectIDFromHex(c.QueryParam("clientId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid or missing clientId",
		})
	}

	sessions, err := ac.sessions.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		ac.logger.Printf("list sessions failed for client %s: %v", clientID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load sessions",
		})
	}
	if sessions == nil {
		sessions = []models.ApprovalSession{}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sessions retrieved",
		Data:    sessions,
	})
}

// RevokeSession force-expires one approval session. Safe to repeat.
func (ac *AdminController) RevokeSession(c echo.Context) error {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid session id",
		})
	}

	if err := ac.otp.RevokeSession(c.Request().Context(), sessionID); err != nil {
		ac.logger.Printf("revoke session %s failed: %v", sessionID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to revoke session",
		})
	}

	adminID, _ := middleware.ExtractAdminID(c)
	ac.logger.Printf("session %s revoked by admin %s", sessionID.Hex(), adminID)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Session revoked",
	})
}

// GetPortalQRCode renders the client's portal link as a QR code PNG,
// for print material and onboarding decks.
func (ac *AdminController) GetPortalQRCode(c echo.Context) error {
	slug := c.Param("slug")

	client, err := ac.clients.FindBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Client not found",
			})
		}
		ac.logger.Printf("client lookup by slug failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong",
		})
	}

	portalURL := ac.cfg.PortalBaseURL + "/" + client.Slug

	qrCode, err := qr.Encode(portalURL, qr.M, qr.Auto)
	if err != nil {
		ac.logger.Printf("QR encode failed for %s: %v", portalURL, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	qrCode, err = barcode.Scale(qrCode, 200, 200)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
