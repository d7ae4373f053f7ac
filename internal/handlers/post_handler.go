package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/services"
)

// PostHandler handles post and like HTTP requests
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.GET("/posts/:id/likes", h.GetLikes)
	g.GET("/posts/:id/likes/count", h.GetLikesCount)
	g.GET("/feed", h.GetFeed)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	post, err := h.content.CreatePost(getUserIDFromContext(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// GetPost returns a live post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.content.GetPost(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// UpdatePost replaces the content of a post owned by the authenticated user
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	post, err := h.content.UpdatePost(getUserIDFromContext(c), c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// DeletePost soft-deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.content.DeletePost(getUserIDFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike likes or unlikes the post for the authenticated user
func (h *PostHandler) ToggleLike(c echo.Context) error {
	liked, err := h.content.ToggleLike(getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": liked}})
}

// GetLikes lists the likes on a post
func (h *PostHandler) GetLikes(c echo.Context) error {
	likes, err := h.content.Likes(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"likes": likes}})
}

// GetLikesCount returns the number of likes on a post
func (h *PostHandler) GetLikesCount(c echo.Context) error {
	count, err := h.content.LikeCount(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"likes_count": count}})
}

// GetFeed returns the posts visible to the authenticated user, newest first
func (h *PostHandler) GetFeed(c echo.Context) error {
	page, limit := parsePagination(c)
	posts, total, err := h.content.GetFeed(getUserIDFromContext(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    paginationMeta(total, page, limit),
	})
}

// GetUserPosts returns a user's live posts, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	page, limit := parsePagination(c)
	posts, total, err := h.content.ListUserPosts(c.Param("id"), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    paginationMeta(total, page, limit),
	})
}
