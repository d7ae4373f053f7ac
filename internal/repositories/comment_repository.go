package repositories

import (
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateCommentWithNotifications(comment *models.Comment, notifications []models.Notification) error
	GetCommentByID(id string) (*models.Comment, error)
	GetCommentByIDAny(id string) (*models.Comment, error)
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	SoftDeleteComment(id string) error
}

// MySQLCommentRepository implements CommentRepository for MySQL
type MySQLCommentRepository struct {
	db *gorm.DB
}

// NewMySQLCommentRepository creates a new MySQLCommentRepository
func NewMySQLCommentRepository(db *gorm.DB) *MySQLCommentRepository {
	return &MySQLCommentRepository{db: db}
}

// CreateCommentWithNotifications writes the comment and its derived
// notifications (comment, mentions) in one transaction, so a reader never
// sees a notification for a comment that failed to persist or vice versa.
func (r *MySQLCommentRepository) CreateCommentWithNotifications(comment *models.Comment, notifications []models.Notification) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		for i := range notifications {
			notifications[i].ContentID = comment.ID
			if err := tx.Create(&notifications[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "", "")
}

// GetCommentByID retrieves a live comment by ID
func (r *MySQLCommentRepository) GetCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err, "comment not found", "")
	}
	return &comment, nil
}

// GetCommentByIDAny retrieves a comment by ID including soft-deleted rows.
func (r *MySQLCommentRepository) GetCommentByIDAny(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Unscoped().First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err, "comment not found", "")
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves the live comments of a post, oldest first.
func (r *MySQLCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return comments, nil
}

// SoftDeleteComment marks the comment deleted. Thread replies keep pointing
// at it and render the parent as unavailable.
func (r *MySQLCommentRepository) SoftDeleteComment(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "comment not found", "")
	}
	return nil
}
