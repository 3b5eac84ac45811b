package http

import (
	"net/http"
	"strconv"

	"pressroom/pkg/logger"
	"pressroom/pkg/models"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase, logger: logger}
}

// ListComments godoc
// @Summary      List comments for moderation
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string false "View id for selection state"
// @Param        status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param        post_id query int false "Filter by post"
// @Param        page query int false "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	params := persistent.CommentListParams{
		Status:  models.CommentStatus(c.Query("status")),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 0),
	}
	if raw := c.Query("post_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.PostID = id
		}
	}

	comments, total, err := h.commentUseCase.ListComments(viewIDFrom(c), params)
	if err != nil {
		h.logger.Error("Failed to list comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total, "page": params.Page})
}

type CommentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus godoc
// @Summary      Moderate a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Param        request body CommentStatusRequest true "New status (pending, approved, rejected)"
// @Success      200  {object}  models.Comment
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /comments/{id}/status [patch]
func (h *CommentHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CommentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.SetStatus(viewerFrom(c), id, models.CommentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commentUseCase.DeleteComment(viewerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// BulkAction godoc
// @Summary      Run a bulk action on the selected comments
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id holding the selection"
// @Param        request body BulkActionRequest true "Action (approve, reject, delete)"
// @Success      200  {object}  bulk.Outcome
// @Failure      400  {object}  map[string]string
// @Router       /comments/bulk [post]
func (h *CommentHandler) BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.commentUseCase.BulkAction(viewerFrom(c), viewIDFrom(c), req.Action)
	if err != nil {
		h.logger.Error("Bulk %s on comments failed: %v", req.Action, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
