package http

import (
	"errors"
	"net/http"

	"pressroom/pkg/logger"
	"pressroom/services/admin/internal/editsession"
	"pressroom/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EditHandler struct {
	editUseCase usecase.EditUseCase
	logger      *logger.Logger
}

func NewEditHandler(editUseCase usecase.EditUseCase, logger *logger.Logger) *EditHandler {
	return &EditHandler{editUseCase: editUseCase, logger: logger}
}

func formatSession(s *editsession.Session) gin.H {
	return gin.H{
		"token":     s.Token,
		"entity":    s.Entity,
		"record_id": s.RecordID,
		"field":     s.Field,
		"value":     s.DisplayValue(),
		"active":    s.Active,
	}
}

type StartEditRequest struct {
	Entity   string `json:"entity" binding:"required,oneof=post category"`
	RecordID int64  `json:"record_id" binding:"required"`
	Field    string `json:"field" binding:"required"`
}

// Start godoc
// @Summary      Start an inline edit
// @Description  Opens an edit on one field of one record, capturing the persisted value. A view holds at most one edit; starting another abandons the first unpersisted.
// @Tags         edit
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        request body StartEditRequest true "What to edit"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /edit [post]
func (h *EditHandler) Start(c *gin.Context) {
	var req StartEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.editUseCase.StartEdit(viewerFrom(c), viewIDFrom(c), req.Entity, req.RecordID, req.Field)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formatSession(session))
}

type SaveEditRequest struct {
	Token string `json:"token" binding:"required"`
	Value string `json:"value"`
}

// Save godoc
// @Summary      Save an inline edit
// @Description  Persists the proposed value. On validation failure the session stays open and the response carries the attempted value next to the error.
// @Tags         edit
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        request body SaveEditRequest true "Edit token and new value"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}
// @Router       /edit/save [post]
func (h *EditHandler) Save(c *gin.Context) {
	var req SaveEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.editUseCase.SaveEdit(viewerFrom(c), viewIDFrom(c), req.Token, req.Value)
	if err != nil {
		var ferr *usecase.FieldError
		if errors.As(err, &ferr) && session != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   ferr.Message,
				"field":   ferr.Field,
				"session": formatSession(session),
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formatSession(session))
}

type CancelEditRequest struct {
	Token string `json:"token" binding:"required"`
}

// Cancel godoc
// @Summary      Cancel an inline edit
// @Description  Discards the proposed value. Nothing is written; the response carries the original value the view shows again.
// @Tags         edit
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        request body CancelEditRequest true "Edit token"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /edit/cancel [post]
func (h *EditHandler) Cancel(c *gin.Context) {
	var req CancelEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.editUseCase.CancelEdit(viewIDFrom(c), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formatSession(session))
}

// Current godoc
// @Summary      Current edit session for the view
// @Tags         edit
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Success      200  {object}  map[string]interface{}
// @Success      204  "No active edit"
// @Router       /edit [get]
func (h *EditHandler) Current(c *gin.Context) {
	session, err := h.editUseCase.CurrentEdit(viewIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, formatSession(session))
}
