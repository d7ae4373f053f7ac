package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeLike           = "like"
	NotificationTypeComment        = "comment"
	NotificationTypeFollow         = "follow"
	NotificationTypeMentionPost    = "mention_post"
	NotificationTypeMentionComment = "mention_comment"
)

// Notification is an append-only event record addressed to a user. Rows are
// never removed: Read flips unread to read (never back) and Trash hides the
// row from listings while preserving it as an audit trail.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;size:256"`
	FromID    string    `json:"from_id" gorm:"size:256;index"`
	ToID      string    `json:"to_id" gorm:"size:256;index"`
	Type      string    `json:"type" gorm:"size:30;index"`
	ContentID string    `json:"content_id,omitempty" gorm:"size:256"` // post, comment or user ID depending on Type
	Read      bool      `json:"read" gorm:"default:false;index"`
	Trash     bool      `json:"trash" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		n.ID = id
	}
	return nil
}
