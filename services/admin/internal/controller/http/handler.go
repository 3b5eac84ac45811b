package http

import (
	"errors"
	"net/http"
	"strconv"

	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewIDHeader carries the client's view id. Selection and inline-edit state
// is keyed by it, so two browser tabs never share checkboxes.
const ViewIDHeader = "X-View-ID"

func viewerFrom(c *gin.Context) visibility.Viewer {
	viewer := visibility.Guest()
	if id, ok := c.Get("user_id"); ok {
		viewer.UserID = id.(int64)
		viewer.Role = visibility.Role(c.GetString("role"))
	}
	return viewer
}

func viewIDFrom(c *gin.Context) string {
	if id := c.GetHeader(ViewIDHeader); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Header(ViewIDHeader, id)
	return id
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// respondError maps domain errors onto HTTP statuses so every handler fails
// the same way.
func respondError(c *gin.Context, err error) {
	var fieldErr *usecase.FieldError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, bulk.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, bulk.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, bulk.ErrValidation), errors.Is(err, bulk.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
	case errors.Is(err, usecase.ErrEditNotFound):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
