package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. ThreadID is set when the comment is
// a reply to another comment.
type Comment struct {
	ID        string         `json:"id" gorm:"primaryKey;size:256"`
	UserID    string         `json:"user_id" gorm:"size:256;index"`
	PostID    string         `json:"post_id" gorm:"size:256;index"`
	Content   string         `json:"content" gorm:"type:text"`
	ThreadID  string         `json:"thread_id,omitempty" gorm:"size:256;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		c.ID = id
	}
	return nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=512"`
	ThreadID string `json:"thread_id,omitempty"`
}
