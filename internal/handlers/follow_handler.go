package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	socialGraph *services.SocialGraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(socialGraph *services.SocialGraphService) *FollowHandler {
	return &FollowHandler{socialGraph: socialGraph}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	if err := h.socialGraph.Follow(getUserIDFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user. Unfollowing someone not followed succeeds.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	if err := h.socialGraph.Unfollow(getUserIDFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// GetFollowers lists the users following the target user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	users, err := h.socialGraph.Followers(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// GetFollowing lists the users the target user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	users, err := h.socialGraph.Following(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}
