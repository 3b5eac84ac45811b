package usecase

import (
	"testing"

	"pressroom/pkg/logger"
	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func pendingComment(id int64) *models.Comment {
	return &models.Comment{ID: id, PostID: 1, AuthorName: "reader", Body: "nice", Status: models.CommentPending}
}

func TestBulkApprove_NotFoundReported(t *testing.T) {
	repo := new(MockCommentRepository)
	store := newFakeViewStore()
	uc := NewCommentUseCase(repo, store, logger.New())
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	seedSelection(store, "v1", "comments", []int64{1, 2, 3, 4, 5})
	for _, id := range []int64{1, 2, 4, 5} {
		repo.On("GetByID", id).Return(pendingComment(id), nil)
		repo.On("UpdateStatus", id, models.CommentApproved).Return(nil)
	}
	// Comment 3 was deleted by another session in the meantime.
	repo.On("GetByID", int64(3)).Return(nil, gorm.ErrRecordNotFound)

	outcome, err := uc.BulkAction(admin, "v1", "approve")

	assert.NoError(t, err)
	assert.Equal(t, 5, outcome.Attempted)
	assert.Equal(t, 4, outcome.Updated)
	assert.Equal(t, []bulk.Failure{{ID: 3, Reason: "not found"}}, outcome.Failures)

	remaining, _ := store.Selection("v1", "comments")
	assert.Equal(t, []int64{3}, remaining.SelectedIDs())
	repo.AssertExpectations(t)
}

func TestBulkApprove_AlreadyApprovedIsSuccess(t *testing.T) {
	repo := new(MockCommentRepository)
	store := newFakeViewStore()
	uc := NewCommentUseCase(repo, store, logger.New())
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	seedSelection(store, "v1", "comments", []int64{1})
	approved := pendingComment(1)
	approved.Status = models.CommentApproved
	repo.On("GetByID", int64(1)).Return(approved, nil)

	outcome, err := uc.BulkAction(admin, "v1", "approve")

	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)
	assert.Empty(t, outcome.Failures)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestBulkModeration_RequiresAdmin(t *testing.T) {
	repo := new(MockCommentRepository)
	store := newFakeViewStore()
	uc := NewCommentUseCase(repo, store, logger.New())
	author := visibility.Viewer{Role: visibility.RoleAuthor, UserID: 7}

	seedSelection(store, "v1", "comments", []int64{1, 2})

	outcome, err := uc.BulkAction(author, "v1", "reject")

	assert.NoError(t, err)
	assert.Equal(t, 2, outcome.Attempted)
	assert.Equal(t, 0, outcome.Updated)
	for _, f := range outcome.Failures {
		assert.Equal(t, "not authorized", f.Reason)
	}
}

func TestSetStatus_Idempotent(t *testing.T) {
	repo := new(MockCommentRepository)
	store := newFakeViewStore()
	uc := NewCommentUseCase(repo, store, logger.New())
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	approved := pendingComment(1)
	approved.Status = models.CommentApproved
	repo.On("GetByID", int64(1)).Return(approved, nil)

	comment, err := uc.SetStatus(admin, 1, models.CommentApproved)

	assert.NoError(t, err)
	assert.Equal(t, models.CommentApproved, comment.Status)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestSetStatus_UnknownStatusRejected(t *testing.T) {
	repo := new(MockCommentRepository)
	store := newFakeViewStore()
	uc := NewCommentUseCase(repo, store, logger.New())
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	_, err := uc.SetStatus(admin, 1, "vaporized")

	assert.ErrorIs(t, err, bulk.ErrInvalidState)
}

func TestListComments_RecordsPageIDs(t *testing.T) {
	repo := new(MockCommentRepository)
	store := newFakeViewStore()
	uc := NewCommentUseCase(repo, store, logger.New())

	comments := []*models.Comment{pendingComment(21), pendingComment(22)}
	params := persistent.CommentListParams{Status: models.CommentPending, Page: 1, PerPage: 20}
	repo.On("List", params).Return(comments, int64(2), nil)

	got, total, err := uc.ListComments("v1", params)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), total)

	state, _ := store.Selection("v1", "comments")
	assert.Equal(t, []int64{21, 22}, state.CurrentPageIDs())
}
