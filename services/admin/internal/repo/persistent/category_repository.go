package persistent

import (
	"pressroom/pkg/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetByID(id int64) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id int64) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id int64) error {
	return r.db.Delete(&models.Category{}, "id = ?", id).Error
}
