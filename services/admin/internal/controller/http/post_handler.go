package http

import (
	"net/http"
	"strconv"
	"time"

	"pressroom/pkg/logger"
	"pressroom/services/admin/internal/entity"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{postUseCase: postUseCase, logger: logger}
}

func (h *PostHandler) formatPost(post *entity.Post) map[string]interface{} {
	return map[string]interface{}{
		"id":           post.ID,
		"author_id":    post.AuthorID,
		"category_id":  post.CategoryID,
		"title":        post.Title,
		"slug":         post.Slug,
		"body":         post.Body,
		"cover_url":    post.CoverURL,
		"published_at": post.PublishedAt,
		"state":        post.State(time.Now()),
		"views":        post.Views,
		"created_at":   post.CreatedAt,
		"updated_at":   post.UpdatedAt,
	}
}

// ListPosts godoc
// @Summary      List posts
// @Description  One page of posts visible to the caller, with search, status and category filters. The page's ids seed the view's select-all scope.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string false "View id for selection state"
// @Param        q query string false "Search in title and body"
// @Param        status query string false "Filter by state" Enums(draft, scheduled, published)
// @Param        category_id query int false "Filter by category"
// @Param        sort query string false "Sort column" Enums(title, created_at, published_at)
// @Param        dir query string false "Sort direction" Enums(asc, desc)
// @Param        page query int false "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	params := persistent.PostListParams{
		Query:   c.Query("q"),
		Status:  c.Query("status"),
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 0),
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.CategoryID = &id
		}
	}

	posts, total, err := h.postUseCase.ListPosts(viewerFrom(c), viewIDFrom(c), params)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	items := make([]map[string]interface{}, len(posts))
	for i, post := range posts {
		items[i] = h.formatPost(post)
	}
	c.JSON(http.StatusOK, gin.H{"posts": items, "total": total, "page": params.Page})
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(viewerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.formatPost(post))
}

type CreatePostRequest struct {
	Title      string `form:"title" binding:"required"`
	Body       string `form:"body" binding:"required"`
	Slug       string `form:"slug"`
	CategoryID *int64 `form:"category_id"`
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a draft post, optionally with a cover image.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Post title"
// @Param        body formData string true "Post body"
// @Param        slug formData string false "Slug, generated from the title when empty"
// @Param        category_id formData int false "Category"
// @Param        cover formData file false "Cover image (jpg/jpeg/png)"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cover, err := c.FormFile("cover")
	if err != nil {
		cover = nil
	}

	post, err := h.postUseCase.CreatePost(viewerFrom(c).UserID, usecase.PostInput{
		Title:      req.Title,
		Body:       req.Body,
		Slug:       req.Slug,
		CategoryID: req.CategoryID,
	}, cover)
	if err != nil {
		h.logger.Error("Failed to create post: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.formatPost(post))
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Update a post's fields. Authors can update only their own posts.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        request body object true "Update data" SchemaExample({"title":"Updated title","body":"Updated body","category_id":2})
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Title      string `json:"title"`
		Body       string `json:"body"`
		Slug       string `json:"slug"`
		CategoryID *int64 `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(viewerFrom(c), id, usecase.PostInput{
		Title:      req.Title,
		Body:       req.Body,
		Slug:       req.Slug,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.formatPost(post))
}

// DeletePost godoc
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(viewerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

type PublishRequest struct {
	Publish bool       `json:"publish"`
	At      *time.Time `json:"at"`
}

// SetPublished godoc
// @Summary      Publish or unpublish a post
// @Description  Publishing stamps published_at (now, or a future time to schedule). Unpublishing clears it, returning the post to draft.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        request body PublishRequest true "Publish toggle"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/publish [patch]
func (h *PostHandler) SetPublished(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.SetPublished(viewerFrom(c), id, req.Publish, req.At)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.formatPost(post))
}

type BulkActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// BulkAction godoc
// @Summary      Run a bulk action on the selected posts
// @Description  Applies the action to every selected id in turn. On full success the selection clears; on partial failure only the failed ids stay selected.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id holding the selection"
// @Param        request body BulkActionRequest true "Action (publish, unpublish, delete)"
// @Success      200  {object}  bulk.Outcome
// @Failure      400  {object}  map[string]string
// @Router       /posts/bulk [post]
func (h *PostHandler) BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.postUseCase.BulkAction(viewerFrom(c), viewIDFrom(c), req.Action)
	if err != nil {
		h.logger.Error("Bulk %s on posts failed: %v", req.Action, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
