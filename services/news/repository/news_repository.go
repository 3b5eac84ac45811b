package repository

import (
	"pressroom/pkg/models"
	"pressroom/pkg/visibility"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListParams struct {
	CategoryID int64  // zero means all
	Sort       string // "newest", "oldest", "title"
	Page       int
	PerPage    int
}

type NewsRepository interface {
	ListPublished(params ListParams) ([]*models.Post, int64, error)
	GetPublished(id int64) (*models.Post, error)
	GetPublishedBySlug(slug string) (*models.Post, error)
	IncrementViews(id int64) error
	ApprovedComments(postID int64) ([]*models.Comment, error)
	SubmitComment(comment *models.Comment) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// The public site always queries as a guest, so only published posts are
// ever returned regardless of who is asking.
func (r *newsRepository) published() *gorm.DB {
	return r.db.Model(&models.Post{}).Scopes(visibility.Scope(visibility.Guest()))
}

func (r *newsRepository) ListPublished(params ListParams) ([]*models.Post, int64, error) {
	query := r.published()

	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	switch params.Sort {
	case "oldest":
		query = query.Order("published_at ASC")
	case "title":
		query = query.Order("title ASC")
	default:
		query = query.Order("published_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.PerPage <= 0 {
		params.PerPage = 20
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	var posts []*models.Post
	err := query.
		Offset((params.Page - 1) * params.PerPage).
		Limit(params.PerPage).
		Find(&posts).Error
	return posts, total, err
}

func (r *newsRepository) GetPublished(id int64) (*models.Post, error) {
	var post models.Post
	if err := r.published().Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *newsRepository) GetPublishedBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := r.published().Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *newsRepository) IncrementViews(id int64) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

func (r *newsRepository) ApprovedComments(postID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Where("post_id = ? AND status = ?", postID, models.CommentApproved).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// SubmitComment stores a reader comment. It always lands in pending until a
// moderator approves it.
func (r *newsRepository) SubmitComment(comment *models.Comment) error {
	comment.Status = models.CommentPending
	return r.db.Create(comment).Error
}
