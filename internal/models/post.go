package models

import (
	"time"

	"gorm.io/gorm"
)

// Post visibility scopes, ordered from narrowest to widest audience.
const (
	PostScopeFollowing = "following"
	PostScopeProgram   = "program"
	PostScopeCollege   = "college"
	PostScopeCampus    = "campus"
	PostScopeAll       = "all"
)

// PostContentMaxLen is the maximum post length in characters (not bytes)
// after trimming whitespace.
const PostContentMaxLen = 512

// Post represents a post on the campus feed. The owner is immutable; content
// and scope are mutable by the owner while the post is not soft-deleted.
type Post struct {
	ID        string         `json:"id" gorm:"primaryKey;size:256"`
	UserID    string         `json:"user_id" gorm:"size:256;index"`
	Content   string         `json:"content" gorm:"type:text"`
	Type      string         `json:"type" gorm:"size:20;default:'following';index"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required"`
	Type    string `json:"type,omitempty" validate:"omitempty,oneof=following program college campus all"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Scope changes ride along with content edits when provided.
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required"`
	Type    string `json:"type,omitempty" validate:"omitempty,oneof=following program college campus all"`
}
