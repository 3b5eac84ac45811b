package models

import (
	"time"

	"gorm.io/gorm"
)

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

// ValidCommentStatus reports whether s is one of the three known states.
func ValidCommentStatus(s CommentStatus) bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

type Comment struct {
	ID          int64         `gorm:"primaryKey" json:"id"`
	PostID      int64         `gorm:"not null;index" json:"post_id"`
	AuthorName  string        `gorm:"not null" json:"author_name"`
	AuthorEmail string        `json:"author_email"`
	Body        string        `gorm:"type:text;not null" json:"body"`
	Status      CommentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
