package model

import (
	"time"

	"pressroom/pkg/models"

	"gorm.io/gorm"
)

type PostModel struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	AuthorID    int64      `gorm:"not null;index" json:"author_id"`
	CategoryID  *int64     `gorm:"index" json:"category_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Body        string     `gorm:"type:text" json:"body"`
	CoverURL    string     `gorm:"type:varchar(500)" json:"cover_url"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	Views       int        `gorm:"default:0" json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = models.Slugify(p.Title)
	}
	return nil
}
