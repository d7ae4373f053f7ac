package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
	"github.com/campusnet/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications  *services.NotificationService
	userRepository repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notifications:  notifications,
		userRepository: userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/trash", h.Trash)
}

// EnrichedNotification includes sender info
type EnrichedNotification struct {
	models.Notification
	From models.UserCompact `json:"from"`
}

func (h *NotificationHandler) enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[string]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if from, ok := userCache[n.FromID]; ok {
			enriched[i].From = from
		} else if user, err := h.userRepository.GetUserByID(n.FromID); err == nil {
			compact := user.ToCompact()
			userCache[n.FromID] = compact
			enriched[i].From = compact
		}
	}
	return enriched
}

// GetNotifications returns the authenticated user's non-trashed
// notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, limit := parsePagination(c)
	notifications, total, err := h.notifications.List(getUserIDFromContext(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"notifications": h.enrichNotifications(notifications)},
		"meta":    paginationMeta(total, page, limit),
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(getUserIDFromContext(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks one notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.notifications.MarkRead(getUserIDFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks all of the user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllRead(getUserIDFromContext(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Trash hides a notification from listings
func (h *NotificationHandler) Trash(c echo.Context) error {
	if err := h.notifications.Trash(getUserIDFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
