// Package visibility decides which posts a given viewer may see in default
// listings. The same rule is available as a pure predicate for single records
// and as a gorm scope so listing queries filter in SQL.
package visibility

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleGuest      Role = "guest"
	RoleSubscriber Role = "subscriber"
	RoleAuthor     Role = "author"
	RoleAdmin      Role = "admin"
)

// Viewer is the identity a read is evaluated under. UserID is zero for guests.
type Viewer struct {
	Role   Role
	UserID int64
}

func Guest() Viewer {
	return Viewer{Role: RoleGuest}
}

// Visible reports whether a post with the given author and published_at is
// included in the viewer's default listing.
//
// Admins see everything. Published posts (published_at set and not in the
// future) are visible to everyone. Drafts and scheduled posts are visible
// only to their own author.
func Visible(v Viewer, authorID int64, publishedAt *time.Time, now time.Time) bool {
	if v.Role == RoleAdmin {
		return true
	}
	if publishedAt != nil && !publishedAt.After(now) {
		return true
	}
	return v.Role == RoleAuthor && v.UserID == authorID
}

// Scope returns the same rule as a composable query filter over the posts
// table. Chain it like any other gorm scope.
func Scope(v Viewer) func(*gorm.DB) *gorm.DB {
	return ScopeAt(v, time.Now)
}

// ScopeAt is Scope with an injectable clock.
func ScopeAt(v Viewer, now func() time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v.Role == RoleAdmin {
			return db
		}
		if v.Role == RoleAuthor {
			return db.Where("(published_at IS NOT NULL AND published_at <= ?) OR author_id = ?", now(), v.UserID)
		}
		return db.Where("published_at IS NOT NULL AND published_at <= ?", now())
	}
}
