package models

import (
	"time"

	"gorm.io/gorm"
)

// Campus is the root of the organizational hierarchy: campus -> college -> program.
type Campus struct {
	ID        string         `json:"id" gorm:"primaryKey;size:256"`
	Name      string         `json:"name" gorm:"type:text"`
	Slug      string         `json:"slug" gorm:"size:256;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (c *Campus) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		c.ID = id
	}
	return nil
}

// College belongs to a campus.
type College struct {
	ID        string         `json:"id" gorm:"primaryKey;size:256"`
	Name      string         `json:"name" gorm:"type:text"`
	Slug      string         `json:"slug" gorm:"size:256;index"`
	CampusID  string         `json:"campus_id" gorm:"size:256;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (c *College) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		c.ID = id
	}
	return nil
}

// Program belongs to a college. Users affiliate with a program.
type Program struct {
	ID        string         `json:"id" gorm:"primaryKey;size:256"`
	Name      string         `json:"name" gorm:"type:text"`
	Slug      string         `json:"slug" gorm:"size:256;index"`
	CollegeID string         `json:"college_id" gorm:"size:256;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}
