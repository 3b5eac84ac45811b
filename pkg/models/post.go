package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	AuthorID    int64      `gorm:"not null;index" json:"author_id"`
	CategoryID  *int64     `gorm:"index" json:"category_id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Body        string     `gorm:"type:text" json:"body"`
	CoverURL    string     `json:"cover_url"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	Views       int        `gorm:"default:0" json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return nil
}

// IsPublished reports whether the post is live at the given instant.
// A future published_at means scheduled, not published.
func (p *Post) IsPublished(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now)
}
