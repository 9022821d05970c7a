// controllers/approval_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/middleware"
	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
	"github.com/aprovacriativos/aprova_backend/services"
)

// ApprovalController serves the gated portal endpoints. Every query is
// scoped by the client id carried on the caller's session, never by a
// client-supplied value.
type ApprovalController struct {
	posts     *repositories.PostRepository
	broadcast services.EventBroadcaster
	logger    *log.Logger
}

// NewApprovalController creates a new approval controller
func NewApprovalController(posts *repositories.PostRepository, broadcast services.EventBroadcaster) *ApprovalController {
	return &ApprovalController{
		posts:     posts,
		broadcast: broadcast,
		logger:    log.New(os.Stdout, "[APPROVAL] ", log.LstdFlags),
	}
}

// ListPosts returns the caller's pending review queue, oldest first
func (ac *ApprovalController) ListPosts(c echo.Context) error {
	sc := middleware.GetSessionContext(c)

	posts, err := ac.posts.ListPendingByClient(c.Request().Context(), sc.Client.ID)
	if err != nil {
		ac.logger.Printf("list posts failed for client %s: %v", sc.Client.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load posts"})
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

// ApprovePost marks a pending post approved on behalf of the caller
func (ac *ApprovalController) ApprovePost(c echo.Context) error {
	return ac.decide(c, models.PostStatusApproved, "")
}

// RejectPost marks a pending post rejected, with an optional comment
func (ac *ApprovalController) RejectPost(c echo.Context) error {
	var req models.RejectPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	return ac.decide(c, models.PostStatusRejected, req.Comment)
}

func (ac *ApprovalController) decide(c echo.Context, status, comment string) error {
	sc := middleware.GetSessionContext(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid post id"})
	}

	decision := models.PostDecision{
		DecidedBy: sc.Approver.ID,
		DecidedAt: time.Now(),
		Comment:   comment,
	}

	post, err := ac.posts.Decide(c.Request().Context(), postID, sc.Client.ID, status, decision)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found or already decided"})
		}
		ac.logger.Printf("decide %s failed for post %s: %v", status, postID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update post"})
	}

	if ac.broadcast != nil {
		ac.broadcast.Broadcast(models.NewPostDecidedEvent(*post, sc.Approver.FullName, status == models.PostStatusApproved))
	}

	ac.logger.Printf("post %s %s by approver %s (client %s)", post.ID.Hex(), status, sc.Approver.ID.Hex(), sc.Client.Slug)

	return c.JSON(http.StatusOK, map[string]interface{}{"post": post})
}
