package usecase

import (
	"errors"
	"fmt"

	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/repo/persistent"

	"gorm.io/gorm"
)

type CategoryUseCase interface {
	ListCategories() ([]*models.Category, error)
	CreateCategory(viewer visibility.Viewer, name string) (*models.Category, error)
	RenameCategory(viewer visibility.Viewer, id int64, name string) (*models.Category, error)
	DeleteCategory(viewer visibility.Viewer, id int64) error
}

type categoryUseCase struct {
	categoryRepo persistent.CategoryRepository
}

func NewCategoryUseCase(categoryRepo persistent.CategoryRepository) CategoryUseCase {
	return &categoryUseCase{categoryRepo: categoryRepo}
}

func (uc *categoryUseCase) ListCategories() ([]*models.Category, error) {
	return uc.categoryRepo.List()
}

func (uc *categoryUseCase) CreateCategory(viewer visibility.Viewer, name string) (*models.Category, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, bulk.ErrNotAuthorized
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", bulk.ErrValidation)
	}

	slug := models.Slugify(name)
	if err := uc.ensureSlugFree(slug, 0); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (uc *categoryUseCase) RenameCategory(viewer visibility.Viewer, id int64, name string) (*models.Category, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, bulk.ErrNotAuthorized
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", bulk.ErrValidation)
	}

	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	slug := models.Slugify(name)
	if err := uc.ensureSlugFree(slug, id); err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (uc *categoryUseCase) DeleteCategory(viewer visibility.Viewer, id int64) error {
	if viewer.Role != visibility.RoleAdmin {
		return bulk.ErrNotAuthorized
	}
	if _, err := uc.categoryRepo.GetByID(id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(id)
}

func (uc *categoryUseCase) ensureSlugFree(slug string, selfID int64) error {
	existing, err := uc.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: a category named %q already exists", bulk.ErrValidation, existing.Name)
	}
	return nil
}
