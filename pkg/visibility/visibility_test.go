package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestVisible_PublishedVisibleToEveryone(t *testing.T) {
	publishedAt := ptr(testNow.Add(-24 * time.Hour))

	viewers := []Viewer{
		Guest(),
		{Role: RoleSubscriber, UserID: 5},
		{Role: RoleAuthor, UserID: 1},
		{Role: RoleAuthor, UserID: 2},
		{Role: RoleAdmin, UserID: 9},
	}

	for _, v := range viewers {
		assert.True(t, Visible(v, 1, publishedAt, testNow), "viewer %v", v)
	}
}

func TestVisible_DraftOnlyOwnAuthor(t *testing.T) {
	owner := Viewer{Role: RoleAuthor, UserID: 1}
	otherAuthor := Viewer{Role: RoleAuthor, UserID: 2}
	subscriber := Viewer{Role: RoleSubscriber, UserID: 3}

	assert.True(t, Visible(owner, 1, nil, testNow))
	assert.False(t, Visible(otherAuthor, 1, nil, testNow))
	assert.False(t, Visible(subscriber, 1, nil, testNow))
	assert.False(t, Visible(Guest(), 1, nil, testNow))
}

func TestVisible_ScheduledBehavesLikeDraft(t *testing.T) {
	scheduled := ptr(testNow.Add(time.Hour))

	assert.True(t, Visible(Viewer{Role: RoleAuthor, UserID: 1}, 1, scheduled, testNow))
	assert.False(t, Visible(Viewer{Role: RoleAuthor, UserID: 2}, 1, scheduled, testNow))
	assert.False(t, Visible(Guest(), 1, scheduled, testNow))
	assert.True(t, Visible(Viewer{Role: RoleAdmin}, 1, scheduled, testNow))
}

func TestVisible_AdminSeesSuperset(t *testing.T) {
	admin := Viewer{Role: RoleAdmin, UserID: 99}
	others := []Viewer{
		Guest(),
		{Role: RoleSubscriber, UserID: 3},
		{Role: RoleAuthor, UserID: 1},
	}

	cases := []struct {
		authorID    int64
		publishedAt *time.Time
	}{
		{1, nil},
		{2, nil},
		{1, ptr(testNow.Add(-time.Minute))},
		{2, ptr(testNow.Add(time.Minute))},
	}

	for _, tc := range cases {
		for _, v := range others {
			if Visible(v, tc.authorID, tc.publishedAt, testNow) {
				assert.True(t, Visible(admin, tc.authorID, tc.publishedAt, testNow))
			}
		}
		// And the admin sees every case regardless
		assert.True(t, Visible(admin, tc.authorID, tc.publishedAt, testNow))
	}
}

func TestVisible_PublishingFlipsGuestVisibility(t *testing.T) {
	// Draft by author 1: hidden from guest and author 2, visible to owner and admin.
	assert.False(t, Visible(Guest(), 1, nil, testNow))
	assert.True(t, Visible(Viewer{Role: RoleAuthor, UserID: 1}, 1, nil, testNow))
	assert.False(t, Visible(Viewer{Role: RoleAuthor, UserID: 2}, 1, nil, testNow))
	assert.True(t, Visible(Viewer{Role: RoleAdmin}, 1, nil, testNow))

	// Backdate published_at one day: now everyone sees it.
	publishedAt := ptr(testNow.Add(-24 * time.Hour))
	assert.True(t, Visible(Guest(), 1, publishedAt, testNow))
	assert.True(t, Visible(Viewer{Role: RoleAuthor, UserID: 2}, 1, publishedAt, testNow))
}

func TestVisible_PublishedExactlyNow(t *testing.T) {
	assert.True(t, Visible(Guest(), 1, ptr(testNow), testNow))
}

func TestGuest(t *testing.T) {
	v := Guest()
	assert.Equal(t, RoleGuest, v.Role)
	assert.Zero(t, v.UserID)
}
