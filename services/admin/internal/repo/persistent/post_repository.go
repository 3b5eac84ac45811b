package persistent

import (
	"time"

	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/entity"
	"pressroom/services/admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostListParams carries the admin listing controls: search, status and
// category filters, sort, pagination.
type PostListParams struct {
	Query      string
	Status     string // "", "published", "draft", "scheduled"
	CategoryID *int64
	Sort       string // "title", "created_at", "published_at"
	Dir        string // "asc", "desc"
	Page       int
	PerPage    int
}

type PostRepository interface {
	GetByID(id int64) (*entity.Post, error)
	List(viewer visibility.Viewer, params PostListParams) ([]*entity.Post, int64, error)
	Create(post *entity.Post) error
	Update(post *entity.Post) error
	UpdateField(id int64, column string, value interface{}) error
	SetPublishedAt(id int64, at *time.Time) error
	Delete(id int64) error
	IncrementViews(id int64) error
}

type postRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, now: time.Now}
}

func (r *postRepository) GetByID(id int64) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(viewer visibility.Viewer, params PostListParams) ([]*entity.Post, int64, error) {
	query := r.db.Model(&model.PostModel{}).Scopes(visibility.ScopeAt(viewer, r.now))

	if params.Query != "" {
		query = query.Where("title ILIKE ?", "%"+params.Query+"%")
	}
	switch params.Status {
	case "published":
		query = query.Where("published_at IS NOT NULL AND published_at <= ?", r.now())
	case "scheduled":
		query = query.Where("published_at > ?", r.now())
	case "draft":
		query = query.Where("published_at IS NULL")
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := params.Sort
	switch sort {
	case "title", "published_at":
	default:
		sort = "created_at"
	}
	dir := "DESC"
	if params.Dir == "asc" {
		dir = "ASC"
	}
	query = query.Order(sort + " " + dir)

	if params.PerPage > 0 {
		offset := 0
		if params.Page > 1 {
			offset = (params.Page - 1) * params.PerPage
		}
		query = query.Limit(params.PerPage).Offset(offset)
	}

	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Save(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) UpdateField(id int64, column string, value interface{}) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).Update(column, value).Error
}

func (r *postRepository) SetPublishedAt(id int64, at *time.Time) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).Update("published_at", at).Error
}

func (r *postRepository) Delete(id int64) error {
	return r.db.Delete(&model.PostModel{}, "id = ?", id).Error
}

func (r *postRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}
