package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsersByUsernames(usernames []string) ([]models.User, error)
	UpdateUser(user *models.User) error
	SetTypeAndProgram(userID, accountType, programID string) error
	SearchUsers(query string) ([]models.User, error)
}

// MySQLUserRepository implements UserRepository for MySQL
type MySQLUserRepository struct {
	db *gorm.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *gorm.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// CreateUser creates a new user row
func (r *MySQLUserRepository) CreateUser(user *models.User) error {
	return translate(r.db.Create(user).Error, "user not found", "user already exists")
}

// GetUserByID retrieves a user by ID
func (r *MySQLUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user not found", "")
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by the identity provider's UID
func (r *MySQLUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translate(err, "user not found", "")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MySQLUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "user not found", "")
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *MySQLUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "user not found", "")
	}
	return &user, nil
}

// GetUsersByUsernames retrieves the users whose usernames appear in the list.
// Unknown usernames are silently skipped.
func (r *MySQLUserRepository) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := r.db.Where("username IN ?", usernames).Find(&users).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return users, nil
}

// UpdateUser updates an existing user row
func (r *MySQLUserRepository) UpdateUser(user *models.User) error {
	return translate(r.db.Save(user).Error, "user not found", "username already taken")
}

// SetTypeAndProgram sets the account type and program affiliation together in
// a single transaction so a reader never observes one without the other.
func (r *MySQLUserRepository) SetTypeAndProgram(userID, accountType, programID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"type": accountType, "program_id": programID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "user not found", "")
}

// SearchUsers searches for users by name or username (case-insensitive)
func (r *MySQLUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern).
		Limit(20).Find(&users).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return users, nil
}
