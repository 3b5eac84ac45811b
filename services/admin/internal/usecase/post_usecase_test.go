package usecase

import (
	"testing"
	"time"

	"pressroom/pkg/logger"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/entity"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newPostUseCase(repo *MockPostRepository, store *fakeViewStore) PostUseCase {
	uc := NewPostUseCase(repo, store, nil, nil, logger.New())
	uc.(*postUseCase).now = func() time.Time { return fixedNow }
	return uc
}

func seedSelection(store *fakeViewStore, viewID, list string, ids []int64) {
	state := selection.NewState()
	for _, id := range ids {
		state.Toggle(id)
	}
	store.selections[viewID+"/"+list] = state.Snapshot()
}

func draftPost(id, authorID int64) *entity.Post {
	return &entity.Post{ID: id, AuthorID: authorID, Title: "Draft"}
}

func TestBulkPublish_FullSuccessClearsSelection(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	seedSelection(store, "v1", "posts", []int64{1, 2})
	repo.On("GetByID", int64(1)).Return(draftPost(1, 5), nil)
	repo.On("GetByID", int64(2)).Return(draftPost(2, 5), nil)
	repo.On("SetPublishedAt", int64(1), mock.Anything).Return(nil)
	repo.On("SetPublishedAt", int64(2), mock.Anything).Return(nil)

	outcome, err := uc.BulkAction(admin, "v1", "publish")

	assert.NoError(t, err)
	assert.Equal(t, 2, outcome.Attempted)
	assert.Equal(t, 2, outcome.Updated)
	assert.Empty(t, outcome.Failures)

	remaining, _ := store.Selection("v1", "posts")
	assert.Equal(t, 0, remaining.Count())
	repo.AssertExpectations(t)
}

func TestBulkPublish_PartialFailureReseedsFailedIDs(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	seedSelection(store, "v1", "posts", []int64{1, 2, 3, 4, 5})
	for _, id := range []int64{1, 2, 4, 5} {
		repo.On("GetByID", id).Return(draftPost(id, 5), nil)
		repo.On("SetPublishedAt", id, mock.Anything).Return(nil)
	}
	repo.On("GetByID", int64(3)).Return(nil, gorm.ErrRecordNotFound)

	outcome, err := uc.BulkAction(admin, "v1", "publish")

	assert.NoError(t, err)
	assert.Equal(t, 5, outcome.Attempted)
	assert.Equal(t, 4, outcome.Updated)
	assert.Equal(t, []bulk.Failure{{ID: 3, Reason: "not found"}}, outcome.Failures)

	remaining, _ := store.Selection("v1", "posts")
	assert.Equal(t, []int64{3}, remaining.SelectedIDs())
}

func TestBulkPublish_AlreadyPublishedIsSuccess(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	published := fixedNow.Add(-time.Hour)
	seedSelection(store, "v1", "posts", []int64{1})
	repo.On("GetByID", int64(1)).Return(&entity.Post{ID: 1, AuthorID: 5, PublishedAt: &published}, nil)

	outcome, err := uc.BulkAction(admin, "v1", "publish")

	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)
	assert.Empty(t, outcome.Failures)
	// No write happened: already in the target state.
	repo.AssertNotCalled(t, "SetPublishedAt", mock.Anything, mock.Anything)
}

func TestBulkDelete_OtherAuthorsPostNotAuthorized(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)
	author := visibility.Viewer{Role: visibility.RoleAuthor, UserID: 7}

	seedSelection(store, "v1", "posts", []int64{1, 2})
	repo.On("GetByID", int64(1)).Return(draftPost(1, 7), nil)
	repo.On("GetByID", int64(2)).Return(draftPost(2, 99), nil)
	repo.On("Delete", int64(1)).Return(nil)

	outcome, err := uc.BulkAction(author, "v1", "delete")

	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)
	assert.Equal(t, []bulk.Failure{{ID: 2, Reason: "not authorized"}}, outcome.Failures)

	remaining, _ := store.Selection("v1", "posts")
	assert.Equal(t, []int64{2}, remaining.SelectedIDs())
}

func TestBulkAction_UnknownAction(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)

	_, err := uc.BulkAction(visibility.Viewer{Role: visibility.RoleAdmin}, "v1", "explode")

	assert.Error(t, err)
}

func TestListPosts_RecordsPageIDs(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	posts := []*entity.Post{draftPost(11, 1), draftPost(12, 1)}
	params := persistent.PostListParams{Page: 1, PerPage: 20}
	repo.On("List", admin, params).Return(posts, int64(2), nil)

	got, total, err := uc.ListPosts(admin, "v1", params)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), total)

	state, _ := store.Selection("v1", "posts")
	assert.Equal(t, []int64{11, 12}, state.CurrentPageIDs())
}

func TestGetPost_DraftHiddenFromOtherAuthor(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)

	repo.On("GetByID", int64(1)).Return(draftPost(1, 5), nil)

	_, err := uc.GetPost(visibility.Viewer{Role: visibility.RoleAuthor, UserID: 6}, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	post, err := uc.GetPost(visibility.Viewer{Role: visibility.RoleAuthor, UserID: 5}, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
}

func TestSetPublished_TogglesAndIsIdempotent(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)
	owner := visibility.Viewer{Role: visibility.RoleAuthor, UserID: 5}

	repo.On("GetByID", int64(1)).Return(draftPost(1, 5), nil).Once()
	repo.On("SetPublishedAt", int64(1), mock.Anything).Return(nil).Once()

	post, err := uc.SetPublished(owner, 1, true, nil)
	assert.NoError(t, err)
	assert.NotNil(t, post.PublishedAt)
	assert.Equal(t, fixedNow, *post.PublishedAt)

	// Unpublishing a draft is a no-op success.
	repo.On("GetByID", int64(2)).Return(draftPost(2, 5), nil).Once()
	post, err = uc.SetPublished(owner, 2, false, nil)
	assert.NoError(t, err)
	assert.Nil(t, post.PublishedAt)
	repo.AssertExpectations(t)
}

func TestUpdatePost_OwnershipEnforced(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)

	repo.On("GetByID", int64(1)).Return(draftPost(1, 5), nil)

	_, err := uc.UpdatePost(visibility.Viewer{Role: visibility.RoleAuthor, UserID: 6}, 1, PostInput{Title: "New"})
	assert.ErrorIs(t, err, bulk.ErrNotAuthorized)

	repo.On("Update", mock.Anything).Return(nil)
	post, err := uc.UpdatePost(visibility.Viewer{Role: visibility.RoleAdmin, UserID: 9}, 1, PostInput{Title: "New"})
	assert.NoError(t, err)
	assert.Equal(t, "New", post.Title)
}

func TestCreatePost_RequiresTitle(t *testing.T) {
	repo := new(MockPostRepository)
	store := newFakeViewStore()
	uc := newPostUseCase(repo, store)

	_, err := uc.CreatePost(5, PostInput{}, nil)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}
