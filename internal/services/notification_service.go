package services

import (
	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
)

// ErrNotNotificationRecipient rejects read-state mutations by anyone but the
// addressee.
var ErrNotNotificationRecipient = apperrors.New(apperrors.Forbidden, "notification does not belong to this user")

// NotificationService tracks the append-only notification log and its
// read/trash state machine: Unread -> Read and Active -> Trashed, both
// one-way, neither removing a row.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Emit appends one unread notification. Self-notifications (from == to) are
// silently dropped.
func (s *NotificationService) Emit(fromID, toID, notificationType, contentID string) error {
	if fromID == toID {
		return nil
	}
	return s.notifications.CreateNotification(&models.Notification{
		FromID:    fromID,
		ToID:      toID,
		Type:      notificationType,
		ContentID: contentID,
	})
}

// MarkRead transitions the notification to read. Fails with Forbidden when
// the actor is not the recipient; marking an already-read notification is a
// no-op.
func (s *NotificationService) MarkRead(actorID, notificationID string) error {
	notification, err := s.notifications.GetByID(notificationID)
	if err != nil {
		return err
	}
	if notification.ToID != actorID {
		return ErrNotNotificationRecipient
	}
	if notification.Read {
		return nil
	}
	return s.notifications.MarkAsRead(notificationID)
}

// MarkAllRead transitions all of the actor's unread, non-trashed
// notifications to read in one atomic batch.
func (s *NotificationService) MarkAllRead(actorID string) error {
	return s.notifications.MarkAllAsRead(actorID)
}

// Trash hides the notification from listings while keeping the row as an
// audit trail. Recipient-only, terminal.
func (s *NotificationService) Trash(actorID, notificationID string) error {
	notification, err := s.notifications.GetByID(notificationID)
	if err != nil {
		return err
	}
	if notification.ToID != actorID {
		return ErrNotNotificationRecipient
	}
	if notification.Trash {
		return nil
	}
	return s.notifications.MarkAsTrashed(notificationID)
}

// List returns the actor's non-trashed notifications, newest first.
func (s *NotificationService) List(actorID string, page, limit int) ([]models.Notification, int64, error) {
	return s.notifications.GetByRecipientID(actorID, page, limit)
}

// UnreadCount returns how many unread, non-trashed notifications the actor has.
func (s *NotificationService) UnreadCount(actorID string) (int64, error) {
	return s.notifications.GetUnreadCount(actorID)
}
