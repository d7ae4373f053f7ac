package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// FeedQuery carries the resolved audience context for a feed read. The
// service derives it from the actor's follow list and program affiliation
// before the query runs.
type FeedQuery struct {
	ActorID     string
	FolloweeIDs []string
	ProgramID   string // empty when the actor has no affiliation
	CollegeID   string
	Page        int
	Limit       int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePostWithNotifications(post *models.Post, notifications []models.Notification) error
	GetPostByID(id string) (*models.Post, error)
	GetPostByIDAny(id string) (*models.Post, error)
	UpdatePostFields(id string, updates map[string]interface{}) error
	SoftDeletePost(id string) error
	ListByUserID(userID string, page, limit int) ([]models.Post, int64, error)
	ListFeed(q FeedQuery) ([]models.Post, int64, error)
}

// MySQLPostRepository implements PostRepository for MySQL
type MySQLPostRepository struct {
	db *gorm.DB
}

// NewMySQLPostRepository creates a new MySQLPostRepository
func NewMySQLPostRepository(db *gorm.DB) *MySQLPostRepository {
	return &MySQLPostRepository{db: db}
}

// CreatePostWithNotifications writes the post and its mention notifications
// in one transaction.
func (r *MySQLPostRepository) CreatePostWithNotifications(post *models.Post, notifications []models.Notification) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for i := range notifications {
			notifications[i].ContentID = post.ID
			if err := tx.Create(&notifications[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "", "")
}

// GetPostByID retrieves a post by ID. Soft-deleted posts are filtered by the
// store layer itself, so every read path through here excludes them.
func (r *MySQLPostRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, "post not found", "")
	}
	return &post, nil
}

// GetPostByIDAny retrieves a post by ID including soft-deleted rows. Used
// when a referencing entity needs to render a deleted parent as unavailable
// rather than erroring.
func (r *MySQLPostRepository) GetPostByIDAny(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Unscoped().First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, "post not found", "")
	}
	return &post, nil
}

// UpdatePostFields updates the given columns of a live post and bumps
// updated_at.
func (r *MySQLPostRepository) UpdatePostFields(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "post not found", "")
	}
	return nil
}

// SoftDeletePost marks the post deleted. Comments, likes and notifications
// referencing it are left in place.
func (r *MySQLPostRepository) SoftDeletePost(id string) error {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "post not found", "")
	}
	return nil
}

// ListByUserID returns a user's live posts, newest first.
func (r *MySQLPostRepository) ListByUserID(userID string, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "", "")
	}
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, translate(err, "", "")
	}
	return posts, total, nil
}

// ListFeed returns the posts visible to the actor, newest first. A post is
// visible when its scope admits the actor: "all" and "campus" are open to
// every member, "following" requires the actor to follow the author (own
// posts included), "program" and "college" require a matching affiliation.
func (r *MySQLPostRepository) ListFeed(q FeedQuery) ([]models.Post, int64, error) {
	authors := append([]string{q.ActorID}, q.FolloweeIDs...)

	base := r.db.Model(&models.Post{}).
		Joins("JOIN users AS author ON author.id = posts.user_id").
		Joins("LEFT JOIN programs AS author_program ON author_program.id = author.program_id").
		Where(
			r.db.Where("posts.type IN ?", []string{models.PostScopeAll, models.PostScopeCampus}).
				Or("posts.type = ? AND posts.user_id IN ?", models.PostScopeFollowing, authors).
				Or("posts.type = ? AND author.program_id = ? AND author.program_id <> ''", models.PostScopeProgram, q.ProgramID).
				Or("posts.type = ? AND author_program.college_id = ? AND author_program.college_id <> ''", models.PostScopeCollege, q.CollegeID),
		).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "", "")
	}

	var posts []models.Post
	err := base.Order("posts.created_at DESC").
		Offset((q.Page - 1) * q.Limit).Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, translate(err, "", "")
	}
	return posts, total, nil
}
