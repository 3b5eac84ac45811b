package http

import (
	"net/http"

	"pressroom/pkg/logger"
	"pressroom/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SelectionHandler exposes the per-view selection state for a list. The list
// name is part of the path so posts and comments keep separate selections
// inside one view.
type SelectionHandler struct {
	selectionUseCase usecase.SelectionUseCase
	logger           *logger.Logger
}

func NewSelectionHandler(selectionUseCase usecase.SelectionUseCase, logger *logger.Logger) *SelectionHandler {
	return &SelectionHandler{selectionUseCase: selectionUseCase, logger: logger}
}

// Get godoc
// @Summary      Current selection for a list
// @Tags         selection
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        list path string true "List name" Enums(posts, comments)
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/{list} [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	snap, err := h.selectionUseCase.Get(viewIDFrom(c), c.Param("list"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type ToggleRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// Toggle godoc
// @Summary      Toggle one row's checkbox
// @Tags         selection
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        list path string true "List name" Enums(posts, comments)
// @Param        request body ToggleRequest true "Row id"
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/{list}/toggle [post]
func (h *SelectionHandler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.selectionUseCase.Toggle(viewIDFrom(c), c.Param("list"), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type SelectAllRequest struct {
	On *bool `json:"on" binding:"required"`
}

// SetSelectAll godoc
// @Summary      Check or uncheck the header box
// @Description  Checking adds every id on the current page to the selection; unchecking removes the current page's ids only. Rows carried over from other pages are untouched.
// @Tags         selection
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        list path string true "List name" Enums(posts, comments)
// @Param        request body SelectAllRequest true "Header box state"
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/{list}/all [post]
func (h *SelectionHandler) SetSelectAll(c *gin.Context) {
	var req SelectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.selectionUseCase.SetSelectAll(viewIDFrom(c), c.Param("list"), *req.On)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type ReplaceRequest struct {
	IDs []string `json:"ids"`
}

// Replace godoc
// @Summary      Replace the selection with a set of checkbox values
// @Description  Values arrive as strings the way a form posts them; anything that is not an integer id is dropped silently.
// @Tags         selection
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        list path string true "List name" Enums(posts, comments)
// @Param        request body ReplaceRequest true "Raw checkbox values"
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/{list}/replace [post]
func (h *SelectionHandler) Replace(c *gin.Context) {
	var req ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.selectionUseCase.Replace(viewIDFrom(c), c.Param("list"), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Clear godoc
// @Summary      Clear the selection
// @Tags         selection
// @Produce      json
// @Security     BearerAuth
// @Param        X-View-ID header string true "View id"
// @Param        list path string true "List name" Enums(posts, comments)
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/{list} [delete]
func (h *SelectionHandler) Clear(c *gin.Context) {
	snap, err := h.selectionUseCase.Clear(viewIDFrom(c), c.Param("list"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
