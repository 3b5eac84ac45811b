package persistent

import (
	"pressroom/pkg/models"

	"gorm.io/gorm"
)

type CommentListParams struct {
	Status  models.CommentStatus // empty means all
	PostID  int64                // zero means all posts
	Page    int
	PerPage int
}

type CommentRepository interface {
	GetByID(id int64) (*models.Comment, error)
	List(params CommentListParams) ([]*models.Comment, int64, error)
	Create(comment *models.Comment) error
	UpdateStatus(id int64, status models.CommentStatus) error
	Delete(id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) GetByID(id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) List(params CommentListParams) ([]*models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PostID != 0 {
		query = query.Where("post_id = ?", params.PostID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if params.PerPage > 0 {
		offset := 0
		if params.Page > 1 {
			offset = (params.Page - 1) * params.PerPage
		}
		query = query.Limit(params.PerPage).Offset(offset)
	}

	var comments []*models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) UpdateStatus(id int64, status models.CommentStatus) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *commentRepository) Delete(id int64) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
