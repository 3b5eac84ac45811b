package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pressroom/pkg/logger"
	"pressroom/pkg/models"
	"pressroom/services/news/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const listingCacheTTL = 60 * time.Second

type NewsHandler struct {
	newsRepo    repository.NewsRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNewsHandler(newsRepo repository.NewsRepository, redisClient *redis.Client, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{
		newsRepo:    newsRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ListNews godoc
// @Summary      Published posts
// @Description  The public listing. Only published posts appear; drafts and scheduled posts never do.
// @Tags         news
// @Produce      json
// @Param        category_id query int false "Filter by category"
// @Param        sort query string false "Sort order" Enums(newest, oldest, title)
// @Param        page query int false "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /news [get]
func (h *NewsHandler) ListNews(c *gin.Context) {
	params := repository.ListParams{
		Sort: c.DefaultQuery("sort", "newest"),
		Page: 1,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.CategoryID = id
		}
	}
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			params.Page = n
		}
	}

	// The first page of each (category, sort) pair is the hot path; serve
	// it from Redis when fresh.
	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("news:listing:%d:%s", params.CategoryID, params.Sort)
	if params.Page == 1 {
		if cached, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	posts, total, err := h.newsRepo.ListPublished(params)
	if err != nil {
		h.logger.Error("Failed to list news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}

	response := gin.H{"posts": posts, "total": total, "page": params.Page}
	if params.Page == 1 {
		if payload, err := json.Marshal(response); err == nil {
			h.redisClient.Set(ctx, cacheKey, payload, listingCacheTTL)
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetNews godoc
// @Summary      One published post
// @Description  Fetching a post counts a view. Unpublished posts 404.
// @Tags         news
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	post, err := h.newsRepo.GetPublished(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := h.newsRepo.IncrementViews(post.ID); err != nil {
		h.logger.Warn("Failed to count view for post %d: %v", post.ID, err)
	}

	c.JSON(http.StatusOK, post)
}

// GetNewsBySlug godoc
// @Summary      One published post by slug
// @Tags         news
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  map[string]string
// @Router       /news/slug/{slug} [get]
func (h *NewsHandler) GetNewsBySlug(c *gin.Context) {
	post, err := h.newsRepo.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := h.newsRepo.IncrementViews(post.ID); err != nil {
		h.logger.Warn("Failed to count view for post %d: %v", post.ID, err)
	}

	c.JSON(http.StatusOK, post)
}

// ListComments godoc
// @Summary      Approved comments on a post
// @Tags         news
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /news/{id}/comments [get]
func (h *NewsHandler) ListComments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := h.newsRepo.GetPublished(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments, err := h.newsRepo.ApprovedComments(id)
	if err != nil {
		h.logger.Error("Failed to list comments for post %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

type SubmitCommentRequest struct {
	AuthorName  string `json:"author_name" binding:"required"`
	AuthorEmail string `json:"author_email" binding:"omitempty,email"`
	Body        string `json:"body" binding:"required"`
}

// SubmitComment godoc
// @Summary      Submit a comment
// @Description  Comments are held for moderation and only appear once approved.
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body SubmitCommentRequest true "Comment"
// @Success      202  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /news/{id}/comments [post]
func (h *NewsHandler) SubmitComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.newsRepo.GetPublished(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := &models.Comment{
		PostID:      id,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Body:        req.Body,
	}
	if err := h.newsRepo.SubmitComment(comment); err != nil {
		h.logger.Error("Failed to store comment on post %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit comment"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Comment submitted for moderation"})
}
