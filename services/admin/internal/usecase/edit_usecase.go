package usecase

import (
	"errors"
	"fmt"

	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/editsession"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/viewstate"
)

var ErrEditNotFound = errors.New("no matching edit session")

// FieldError is a validation failure on a single edited field. A failed save
// leaves the edit session active so the client can show the attempted value
// next to the message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EditUseCase drives inline edits: one field of one record at a time per
// view. Starting a new edit overwrites the previous session without
// persisting it.
type EditUseCase interface {
	StartEdit(viewer visibility.Viewer, viewID, entityName string, recordID int64, field string) (*editsession.Session, error)
	SaveEdit(viewer visibility.Viewer, viewID, token, value string) (*editsession.Session, error)
	CancelEdit(viewID, token string) (*editsession.Session, error)
	CurrentEdit(viewID string) (*editsession.Session, error)
}

type editUseCase struct {
	postRepo     persistent.PostRepository
	categoryRepo persistent.CategoryRepository
	views        viewstate.Store
}

func NewEditUseCase(postRepo persistent.PostRepository, categoryRepo persistent.CategoryRepository, views viewstate.Store) EditUseCase {
	return &editUseCase{postRepo: postRepo, categoryRepo: categoryRepo, views: views}
}

func (uc *editUseCase) StartEdit(viewer visibility.Viewer, viewID, entityName string, recordID int64, field string) (*editsession.Session, error) {
	current, err := uc.currentValue(viewer, entityName, recordID, field)
	if err != nil {
		return nil, err
	}

	session := editsession.Start(entityName, recordID, field, current)
	if err := uc.views.SaveEditSession(viewID, session); err != nil {
		return nil, fmt.Errorf("failed to save edit session: %w", err)
	}
	return session, nil
}

func (uc *editUseCase) SaveEdit(viewer visibility.Viewer, viewID, token, value string) (*editsession.Session, error) {
	session, err := uc.views.EditSession(viewID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Active || session.Token != token {
		return nil, ErrEditNotFound
	}

	// The proposed value is recorded before validation so the view keeps
	// showing the user's input alongside any error.
	session.Propose(value)
	if err := uc.views.SaveEditSession(viewID, session); err != nil {
		return nil, fmt.Errorf("failed to save edit session: %w", err)
	}

	if ferr := uc.validate(session.Entity, session.RecordID, session.Field, value); ferr != nil {
		return session, ferr
	}

	if err := uc.persist(viewer, session, value); err != nil {
		return session, err
	}

	session.Complete(value)
	if err := uc.views.SaveEditSession(viewID, session); err != nil {
		return nil, fmt.Errorf("failed to save edit session: %w", err)
	}
	return session, nil
}

func (uc *editUseCase) CancelEdit(viewID, token string) (*editsession.Session, error) {
	session, err := uc.views.EditSession(viewID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token != token {
		return nil, ErrEditNotFound
	}

	session.Cancel()
	if err := uc.views.ClearEditSession(viewID); err != nil {
		return nil, fmt.Errorf("failed to clear edit session: %w", err)
	}
	return session, nil
}

func (uc *editUseCase) CurrentEdit(viewID string) (*editsession.Session, error) {
	return uc.views.EditSession(viewID)
}

func (uc *editUseCase) currentValue(viewer visibility.Viewer, entityName string, recordID int64, field string) (string, error) {
	switch entityName {
	case "post":
		post, err := uc.postRepo.GetByID(recordID)
		if err != nil {
			return "", err
		}
		if err := canMutatePost(viewer, post); err != nil {
			return "", err
		}
		switch field {
		case "title":
			return post.Title, nil
		case "body":
			return post.Body, nil
		}
		return "", fmt.Errorf("field %q of post is not editable inline", field)
	case "category":
		if viewer.Role != visibility.RoleAdmin {
			return "", bulk.ErrNotAuthorized
		}
		category, err := uc.categoryRepo.GetByID(recordID)
		if err != nil {
			return "", err
		}
		if field != "name" {
			return "", fmt.Errorf("field %q of category is not editable inline", field)
		}
		return category.Name, nil
	}
	return "", fmt.Errorf("unknown entity %q", entityName)
}

func (uc *editUseCase) validate(entityName string, recordID int64, field, value string) *FieldError {
	switch entityName + "." + field {
	case "post.title":
		if value == "" {
			return &FieldError{Field: "title", Message: "title is required"}
		}
		if len(value) > 255 {
			return &FieldError{Field: "title", Message: "title must be at most 255 characters"}
		}
	case "post.body":
		if value == "" {
			return &FieldError{Field: "body", Message: "body is required"}
		}
	case "category.name":
		if value == "" {
			return &FieldError{Field: "name", Message: "name is required"}
		}
		if len(value) > 100 {
			return &FieldError{Field: "name", Message: "name must be at most 100 characters"}
		}
		if existing, err := uc.categoryRepo.GetBySlug(models.Slugify(value)); err == nil && existing.ID != recordID {
			return &FieldError{Field: "name", Message: "a category with this name already exists"}
		}
	}
	return nil
}

func (uc *editUseCase) persist(viewer visibility.Viewer, session *editsession.Session, value string) error {
	switch session.Entity {
	case "post":
		post, err := uc.postRepo.GetByID(session.RecordID)
		if err != nil {
			return err
		}
		if err := canMutatePost(viewer, post); err != nil {
			return err
		}
		return uc.postRepo.UpdateField(session.RecordID, session.Field, value)
	case "category":
		if viewer.Role != visibility.RoleAdmin {
			return bulk.ErrNotAuthorized
		}
		category, err := uc.categoryRepo.GetByID(session.RecordID)
		if err != nil {
			return err
		}
		category.Name = value
		category.Slug = models.Slugify(value)
		return uc.categoryRepo.Update(category)
	}
	return fmt.Errorf("unknown entity %q", session.Entity)
}
