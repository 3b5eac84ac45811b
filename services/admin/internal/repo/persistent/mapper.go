package persistent

import (
	"pressroom/services/admin/internal/entity"
	"pressroom/services/admin/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:          m.ID,
		AuthorID:    m.AuthorID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Slug:        m.Slug,
		Body:        m.Body,
		CoverURL:    m.CoverURL,
		PublishedAt: m.PublishedAt,
		Views:       m.Views,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		AuthorID:    e.AuthorID,
		CategoryID:  e.CategoryID,
		Title:       e.Title,
		Slug:        e.Slug,
		Body:        e.Body,
		CoverURL:    e.CoverURL,
		PublishedAt: e.PublishedAt,
		Views:       e.Views,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
