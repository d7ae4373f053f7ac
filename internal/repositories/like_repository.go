package repositories

import (
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLikeWithNotification(like *models.Like, notification *models.Notification) error
	DeleteLike(userID, postID string) (bool, error)
	HasUserLikedPost(userID, postID string) (bool, error)
	GetLikesCountByPostID(postID string) (int64, error)
	GetLikesByPostID(postID string) ([]models.Like, error)
}

// MySQLLikeRepository implements LikeRepository for MySQL
type MySQLLikeRepository struct {
	db *gorm.DB
}

// NewMySQLLikeRepository creates a new MySQLLikeRepository
func NewMySQLLikeRepository(db *gorm.DB) *MySQLLikeRepository {
	return &MySQLLikeRepository{db: db}
}

// CreateLikeWithNotification inserts the like and, when notification is
// non-nil, the like notification in one transaction. A concurrent duplicate
// insert trips the (user_id, post_id) unique index and surfaces as Conflict
// with neither row written.
func (r *MySQLLikeRepository) CreateLikeWithNotification(like *models.Like, notification *models.Notification) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		if notification != nil {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "", "post already liked")
}

// DeleteLike removes the like row if present. Returns whether a row was
// removed; a missing row is not an error so the toggle stays idempotent.
// The notification emitted on creation is deliberately left untouched.
func (r *MySQLLikeRepository) DeleteLike(userID, postID string) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return false, translate(res.Error, "", "")
	}
	return res.RowsAffected > 0, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *MySQLLikeRepository) HasUserLikedPost(userID, postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, translate(err, "", "")
	}
	return count > 0, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *MySQLLikeRepository) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, translate(err, "", "")
	}
	return count, nil
}

// GetLikesByPostID retrieves all likes for a specific post
func (r *MySQLLikeRepository) GetLikesByPostID(postID string) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Where("post_id = ?", postID).Find(&likes).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return likes, nil
}
