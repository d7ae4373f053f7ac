package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/services"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.AddComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.GET("/comments/:id", h.GetComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// AddComment creates a comment on a post, optionally as a thread reply
func (h *CommentHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	comment, err := h.content.AddComment(getUserIDFromContext(c), c.Param("post_id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}

// GetComments lists the live comments of a post
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.content.GetComments(c.Param("post_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": comments}})
}

// GetComment returns a single comment with availability markers
func (h *CommentHandler) GetComment(c echo.Context) error {
	comment, err := h.content.GetComment(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": comment})
}

// DeleteComment soft-deletes a comment owned by the authenticated user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.content.DeleteComment(getUserIDFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
