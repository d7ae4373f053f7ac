package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Account types recognised by the campus network
const (
	AccountTypeStudent = "student"
	AccountTypeFaculty = "faculty"
	AccountTypeAlumni  = "alumni"
)

// User represents a member of the campus network. A row is created on first
// sign-in through the identity provider; profile fields are mutated by the
// user afterwards. Users are never hard-deleted.
type User struct {
	ID          string     `json:"id" gorm:"primaryKey;size:256"`
	Name        string     `json:"name" gorm:"size:255"`
	Email       string     `json:"email" gorm:"size:255;uniqueIndex"`
	Username    string     `json:"username" gorm:"size:256;uniqueIndex"`
	Image       string     `json:"image,omitempty" gorm:"size:255"`
	Bio         string     `json:"bio,omitempty" gorm:"type:text"`
	Link        string     `json:"link,omitempty" gorm:"type:text"`
	Type        string     `json:"type,omitempty" gorm:"size:20;index"` // student, faculty, alumni
	ProgramID   string     `json:"program_id,omitempty" gorm:"size:256;index"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	FirebaseUID string     `json:"-" gorm:"size:256;uniqueIndex"` // Link to the identity provider's UID
	Password    string     `json:"-"`                             // Hashed; only set for the local dev sign-in path
	CreatedAt   time.Time  `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		u.ID = id
	}
	return nil
}

// UserCompact is the trimmed projection embedded in enriched responses.
type UserCompact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ToCompact returns the compact projection of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
		Type:     u.Type,
	}
}

// UpdateProfileRequest defines the request body for profile updates.
// Identity is always taken from the session, never from the payload.
type UpdateProfileRequest struct {
	Bio  *string `json:"bio,omitempty" validate:"omitempty,max=256"`
	Link *string `json:"link,omitempty" validate:"omitempty,url"`
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
}

// SetProgramRequest sets the account type and program affiliation. The two
// fields mutate together in a single transaction.
type SetProgramRequest struct {
	ProgramID string `json:"program_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=student faculty alumni"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderLoginRequest carries the identity provider's ID token.
type ProviderLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
