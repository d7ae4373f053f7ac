package models

import (
	"time"

	"gorm.io/gorm"
)

// Like represents a like on a post. The unique index on (user_id, post_id)
// is what makes the toggle race-safe: a second concurrent insert fails at the
// store instead of creating a duplicate row.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:256"`
	UserID    string    `json:"user_id" gorm:"size:256;index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"size:256;index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		l.ID = id
	}
	return nil
}
