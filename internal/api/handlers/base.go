package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// Base provides shared functionality for all handlers.
type Base struct {
	datasets *service.DatasetService
}

// NewBase creates a new base handler over the dataset service.
func NewBase(datasets *service.DatasetService) *Base {
	return &Base{datasets: datasets}
}

// Snapshot fetches the current dataset snapshot, writing a 503 response
// and returning false when storage is unavailable.
func (b *Base) Snapshot(c *gin.Context) (*dataset.Snapshot, bool) {
	snap, err := b.datasets.Snapshot()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.DatasetUnavailableError())
		return nil, false
	}
	return snap, true
}

// ParseIntQuery parses an integer query parameter with a default value.
func ParseIntQuery(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseFloatQuery parses a float query parameter with a default value.
func ParseFloatQuery(c *gin.Context, name string, defaultVal float64) float64 {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseListQuery parses a comma-separated query parameter into a slice.
func ParseListQuery(c *gin.Context, name string) []string {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
