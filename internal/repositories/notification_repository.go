package repositories

import (
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// NotificationRepository defines the interface for notification operations.
// There is no delete: notifications are an append-only event log whose only
// mutations are the read and trash flags.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByID(id string) (*models.Notification, error)
	GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID string) (int64, error)
	MarkAsRead(id string) error
	MarkAllAsRead(recipientID string) error
	MarkAsTrashed(id string) error
}

type mysqlNotificationRepository struct {
	db *gorm.DB
}

// NewMySQLNotificationRepository creates a new MySQL-backed NotificationRepository
func NewMySQLNotificationRepository(db *gorm.DB) NotificationRepository {
	return &mysqlNotificationRepository{db: db}
}

func (r *mysqlNotificationRepository) CreateNotification(notification *models.Notification) error {
	return translate(r.db.Create(notification).Error, "", "")
}

func (r *mysqlNotificationRepository) GetByID(id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, translate(err, "notification not found", "")
	}
	return &notification, nil
}

// GetByRecipientID returns the recipient's notifications newest first,
// excluding trashed ones.
func (r *mysqlNotificationRepository) GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).
		Where("to_id = ? AND trash = false", recipientID).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "", "")
	}

	err := r.db.Where("to_id = ? AND trash = false", recipientID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, translate(err, "", "")
	}
	return notifications, total, nil
}

func (r *mysqlNotificationRepository) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	// `read` is reserved in MySQL, so raw fragments quote it
	err := r.db.Model(&models.Notification{}).
		Where("to_id = ? AND `read` = false AND trash = false", recipientID).
		Count(&count).Error
	return count, translate(err, "", "")
}

// MarkAsRead transitions read=false -> true. Re-marking a read notification
// is a no-op; the flag never goes back.
func (r *mysqlNotificationRepository) MarkAsRead(id string) error {
	return translate(r.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error, "", "")
}

// MarkAllAsRead flips every unread, non-trashed notification of the recipient
// in one batch UPDATE, which the store applies atomically.
func (r *mysqlNotificationRepository) MarkAllAsRead(recipientID string) error {
	return translate(r.db.Model(&models.Notification{}).
		Where("to_id = ? AND `read` = false AND trash = false", recipientID).
		Update("read", true).Error, "", "")
}

// MarkAsTrashed hides the notification from listings. The row stays.
func (r *mysqlNotificationRepository) MarkAsTrashed(id string) error {
	return translate(r.db.Model(&models.Notification{}).Where("id = ?", id).Update("trash", true).Error, "", "")
}
