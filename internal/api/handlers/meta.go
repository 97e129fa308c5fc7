package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
)

// MetaHandler serves the distinct picker values derived from the dataset.
type MetaHandler struct {
	*Base
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(datasets *service.DatasetService) *MetaHandler {
	return &MetaHandler{Base: NewBase(datasets)}
}

// Items handles GET /api/items.
func (h *MetaHandler) Items(c *gin.Context) {
	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}
	writeValues(c, snap.Items())
}

// Departments handles GET /api/departments.
func (h *MetaHandler) Departments(c *gin.Context) {
	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}
	writeValues(c, snap.Departments())
}

// Categories handles GET /api/categories.
func (h *MetaHandler) Categories(c *gin.Context) {
	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}
	writeValues(c, snap.Categories())
}

func writeValues(c *gin.Context, values []string) {
	c.JSON(http.StatusOK, dto.ValueListResponse{
		Values: values,
		Count:  len(values),
	})
}
