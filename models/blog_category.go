package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// BlogCategory groups posts under a named, slugified heading.
type BlogCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:100" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeSave derives the slug from the name when none was provided.
func (c *BlogCategory) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}
