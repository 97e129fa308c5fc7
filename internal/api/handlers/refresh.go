package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
)

// RefreshHandler forces a dataset snapshot rebuild.
type RefreshHandler struct {
	datasets *service.DatasetService
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(datasets *service.DatasetService) *RefreshHandler {
	return &RefreshHandler{datasets: datasets}
}

// Refresh handles POST /api/dataset/refresh.
func (h *RefreshHandler) Refresh(c *gin.Context) {
	snap, err := h.datasets.Refresh()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.DatasetUnavailableError())
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		TransactionCount: snap.Len(),
		LoadedAt:         snap.LoadedAt.Format(time.RFC3339),
	})
}
