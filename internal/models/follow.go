package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow represents a directed follow relationship. A single edge row serves
// both query directions through the composite unique index (follower side)
// and the secondary index on followee_id, so there is no mirrored table to
// keep in sync.
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;size:256"`
	FollowerID string    `json:"follower_id" gorm:"size:256;index;uniqueIndex:idx_follower_followee"`
	FolloweeID string    `json:"followee_id" gorm:"size:256;index;uniqueIndex:idx_follower_followee"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		f.ID = id
	}
	return nil
}
