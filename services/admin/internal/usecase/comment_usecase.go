package usecase

import (
	"errors"
	"fmt"

	"pressroom/pkg/logger"
	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/viewstate"

	"gorm.io/gorm"
)

const commentList = "comments"

type CommentUseCase interface {
	ListComments(viewID string, params persistent.CommentListParams) ([]*models.Comment, int64, error)
	SetStatus(viewer visibility.Viewer, id int64, status models.CommentStatus) (*models.Comment, error)
	DeleteComment(viewer visibility.Viewer, id int64) error
	BulkAction(viewer visibility.Viewer, viewID, action string) (bulk.Outcome, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	views       viewstate.Store
	logger      *logger.Logger
}

func NewCommentUseCase(commentRepo persistent.CommentRepository, views viewstate.Store, logger *logger.Logger) CommentUseCase {
	return &commentUseCase{commentRepo: commentRepo, views: views, logger: logger}
}

func (uc *commentUseCase) ListComments(viewID string, params persistent.CommentListParams) ([]*models.Comment, int64, error) {
	comments, total, err := uc.commentRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	if viewID != "" {
		pageIDs := make([]int64, len(comments))
		for i, c := range comments {
			pageIDs[i] = c.ID
		}
		state, err := uc.views.Selection(viewID, commentList)
		if err == nil {
			state.SetCurrentPageIDs(pageIDs)
			if err := uc.views.SaveSelection(viewID, commentList, state); err != nil {
				uc.logger.Warn("failed to save page ids for view %s: %v", viewID, err)
			}
		}
	}

	return comments, total, nil
}

// SetStatus moderates a single comment. Setting a comment to the status it
// already holds succeeds without a write: moderation is idempotent.
func (uc *commentUseCase) SetStatus(viewer visibility.Viewer, id int64, status models.CommentStatus) (*models.Comment, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, bulk.ErrNotAuthorized
	}
	if !models.ValidCommentStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", bulk.ErrInvalidState, status)
	}

	comment, err := uc.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.Status == status {
		return comment, nil
	}

	if err := uc.commentRepo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update comment status: %w", err)
	}
	comment.Status = status
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(viewer visibility.Viewer, id int64) error {
	if viewer.Role != visibility.RoleAdmin {
		return bulk.ErrNotAuthorized
	}
	if _, err := uc.commentRepo.GetByID(id); err != nil {
		return err
	}
	return uc.commentRepo.Delete(id)
}

// BulkAction moderates every selected comment strictly in order, then clears
// the selection or reseeds it with the failed ids.
func (uc *commentUseCase) BulkAction(viewer visibility.Viewer, viewID, action string) (bulk.Outcome, error) {
	state, err := uc.views.Selection(viewID, commentList)
	if err != nil {
		return bulk.Outcome{}, fmt.Errorf("failed to load selection: %w", err)
	}
	ids := state.SelectedIDs()

	var apply func(id int64) error
	switch action {
	case "approve":
		apply = func(id int64) error { return uc.moderateOne(viewer, id, models.CommentApproved) }
	case "reject":
		apply = func(id int64) error { return uc.moderateOne(viewer, id, models.CommentRejected) }
	case "delete":
		apply = func(id int64) error { return uc.deleteOne(viewer, id) }
	default:
		return bulk.Outcome{}, fmt.Errorf("unknown bulk action %q", action)
	}

	outcome := bulk.Run(ids, apply)

	if outcome.FullSuccess() {
		state.Clear()
	} else {
		state.Replace(outcome.FailedIDs())
	}
	if err := uc.views.SaveSelection(viewID, commentList, state); err != nil {
		uc.logger.Error("failed to save selection after bulk %s: %v", action, err)
	}

	return outcome, nil
}

func (uc *commentUseCase) moderateOne(viewer visibility.Viewer, id int64, status models.CommentStatus) error {
	if viewer.Role != visibility.RoleAdmin {
		return bulk.ErrNotAuthorized
	}
	comment, err := uc.commentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bulk.ErrNotFound
		}
		return err
	}
	if comment.Status == status {
		return nil // already in target state
	}
	return uc.commentRepo.UpdateStatus(id, status)
}

func (uc *commentUseCase) deleteOne(viewer visibility.Viewer, id int64) error {
	if viewer.Role != visibility.RoleAdmin {
		return bulk.ErrNotAuthorized
	}
	if _, err := uc.commentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bulk.ErrNotFound
		}
		return err
	}
	return uc.commentRepo.Delete(id)
}
