package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/usage"
)

// StatsHandler serves the dataset-wide quick stats.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(datasets *service.DatasetService) *StatsHandler {
	return &StatsHandler{Base: NewBase(datasets)}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}

	stats := usage.ComputeStats(snap)

	response := dto.StatsResponse{
		ItemCount:        stats.ItemCount,
		DepartmentCount:  stats.DepartmentCount,
		TransactionCount: stats.TransactionCount,
		TotalQuantity:    stats.TotalQuantity,
		LoadedAt:         stats.LoadedAt.Format(time.RFC3339),
	}
	if !stats.EarliestDate.IsZero() {
		response.EarliestDate = stats.EarliestDate.Format(dateLayout)
		response.LatestDate = stats.LatestDate.Format(dateLayout)
	}

	c.JSON(http.StatusOK, response)
}
