package entity

import "time"

// PostState is derived from published_at, never persisted.
type PostState string

const (
	PostDraft     PostState = "draft"
	PostScheduled PostState = "scheduled"
	PostPublished PostState = "published"
)

type Post struct {
	ID          int64      `json:"id"`
	AuthorID    int64      `json:"author_id"`
	CategoryID  *int64     `json:"category_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	CoverURL    string     `json:"cover_url"`
	PublishedAt *time.Time `json:"published_at"`
	Views       int        `json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Post) State(now time.Time) PostState {
	switch {
	case p.PublishedAt == nil:
		return PostDraft
	case p.PublishedAt.After(now):
		return PostScheduled
	default:
		return PostPublished
	}
}

func (p *Post) IsPublished(now time.Time) bool {
	return p.State(now) == PostPublished
}
