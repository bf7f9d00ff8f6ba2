package models

import (
	"time"

	gsslug "github.com/gosimple/slug"
	"gorm.io/gorm"

	"clinic-backend/utils"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// metaDescriptionLimit caps the SEO description, matching what search
// engines display.
const metaDescriptionLimit = 160

// BlogPost is one article. Content is raw HTML from the editor and is
// sanitized at render time, not at rest.
type BlogPost struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:200" json:"title"`
	Slug  string `gorm:"uniqueIndex;size:200" json:"slug"`

	MetaDescription string `gorm:"size:160" json:"meta_description,omitempty"`
	MetaKeywords    string `gorm:"size:255" json:"meta_keywords,omitempty"`

	Excerpt       string  `gorm:"size:300" json:"excerpt"`
	Content       string  `gorm:"type:text" json:"content"`
	FeaturedImage *string `gorm:"size:500" json:"featured_image,omitempty"`

	CategoryID *uint         `gorm:"index" json:"category_id,omitempty"`
	Category   *BlogCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	Status      string     `gorm:"size:10;default:draft;index" json:"status"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	ReadTime   uint `gorm:"default:5" json:"read_time"`
	ViewsCount uint `gorm:"default:0" json:"views_count"`
}

// BeforeSave keeps the derived fields consistent on every write path:
// the slug comes from the title when absent, the publish timestamp is set
// the first time the post becomes published and never touched again, and
// the meta description falls back to the excerpt's first 160 characters.
func (p *BlogPost) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = gsslug.Make(p.Title)
	}
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Status == PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	if p.MetaDescription == "" && p.Excerpt != "" {
		p.MetaDescription = utils.TruncateRunes(p.Excerpt, metaDescriptionLimit)
	}
	return nil
}
