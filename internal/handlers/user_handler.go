package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
	"github.com/campusnet/backend/internal/services"
)

// UserHandler handles profile and account HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	orgRepository  repositories.OrgRepository
	socialGraph    *services.SocialGraphService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, orgRepo repositories.OrgRepository, socialGraph *services.SocialGraphService) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		orgRepository:  orgRepo,
		socialGraph:    socialGraph,
	}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PATCH("/users/me", h.UpdateProfile)
	g.PUT("/users/me/program", h.SetProgram)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:username", h.GetByUsername)
}

// GetMe returns the authenticated user's profile
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// UpdateProfile updates the authenticated user's soft profile fields. The
// target identity always comes from the session, never from the payload.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return fail(c, err)
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Link != nil {
		user.Link = *req.Link
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// SetProgram sets the account type and program affiliation together. The
// program is resolved first so a bogus ID never reaches the user row.
func (h *UserHandler) SetProgram(c echo.Context) error {
	var req models.SetProgramRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	if _, err := h.orgRepository.GetProgramByID(req.ProgramID); err != nil {
		return fail(c, err)
	}

	if err := h.userRepository.SetTypeAndProgram(getUserIDFromContext(c), req.Type, req.ProgramID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SearchUsers searches users by name or username
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return fail(c, apperrors.New(apperrors.Validation, "query parameter q is required"))
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return fail(c, err)
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": compact})
}

// GetByUsername returns a public profile with follow counts and whether the
// viewer follows the user.
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return fail(c, err)
	}

	followers, following, err := h.socialGraph.Counts(user.ID)
	if err != nil {
		return fail(c, err)
	}
	isFollowing, err := h.socialGraph.IsFollowing(getUserIDFromContext(c), user.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            user,
			"followers_count": followers,
			"following_count": following,
			"is_following":    isFollowing,
		},
	})
}
