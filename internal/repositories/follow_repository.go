package repositories

import (
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollowWithNotification(follow *models.Follow, notification *models.Notification) error
	DeleteFollow(followerID, followeeID string) (bool, error)
	IsFollowing(followerID, followeeID string) (bool, error)
	GetFollowers(userID string) ([]models.User, error)
	GetFollowing(userID string) ([]models.User, error)
	GetFollowersCount(userID string) (int64, error)
	GetFollowingCount(userID string) (int64, error)
	GetFollowingIDs(userID string) ([]string, error)
}

// MySQLFollowRepository implements FollowRepository for MySQL
type MySQLFollowRepository struct {
	db *gorm.DB
}

// NewMySQLFollowRepository creates a new MySQLFollowRepository
func NewMySQLFollowRepository(db *gorm.DB) *MySQLFollowRepository {
	return &MySQLFollowRepository{db: db}
}

// CreateFollowWithNotification inserts the edge and the follow notification
// in one transaction: no reader ever observes the edge without its
// notification or the reverse. A duplicate edge trips the
// (follower_id, followee_id) unique index and surfaces as Conflict.
func (r *MySQLFollowRepository) CreateFollowWithNotification(follow *models.Follow, notification *models.Notification) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		if notification != nil {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "", "already following this user")
}

// DeleteFollow removes the edge if present and reports whether a row was
// removed. A missing edge is not an error: unfollow is idempotent.
func (r *MySQLFollowRepository) DeleteFollow(followerID, followeeID string) (bool, error) {
	res := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, translate(res.Error, "", "")
	}
	return res.RowsAffected > 0, nil
}

// IsFollowing reports whether the edge follower -> followee exists.
func (r *MySQLFollowRepository) IsFollowing(followerID, followeeID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Count(&count).Error; err != nil {
		return false, translate(err, "", "")
	}
	return count > 0, nil
}

// GetFollowers returns the users following userID, served by the followee index.
func (r *MySQLFollowRepository) GetFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("followee_id = ?", userID),
	).Find(&users).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return users, nil
}

// GetFollowing returns the users userID follows, served by the follower index.
func (r *MySQLFollowRepository) GetFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("followee_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return users, nil
}

// GetFollowersCount returns how many users follow userID.
func (r *MySQLFollowRepository) GetFollowersCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, translate(err, "", "")
}

// GetFollowingCount returns how many users userID follows.
func (r *MySQLFollowRepository) GetFollowingCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, translate(err, "", "")
}

// GetFollowingIDs returns the IDs userID follows, for feed audience resolution.
func (r *MySQLFollowRepository) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return ids, nil
}
