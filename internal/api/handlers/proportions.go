package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/allocator"
)

// ProportionsHandler handles proportion queries.
type ProportionsHandler struct {
	*Base
	defaultMinProportion float64
}

// NewProportionsHandler creates a new proportions handler.
// defaultMinProportion is the significance threshold applied when the
// query does not override it.
func NewProportionsHandler(datasets *service.DatasetService, defaultMinProportion float64) *ProportionsHandler {
	return &ProportionsHandler{
		Base:                 NewBase(datasets),
		defaultMinProportion: defaultMinProportion,
	}
}

// Get handles GET /api/proportions - returns each department's share of
// the identified item's historical usage.
func (h *ProportionsHandler) Get(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("query parameter 'identifier' is required"))
		return
	}
	department := c.Query("department")
	minProportion := ParseFloatQuery(c, "min_proportion", h.defaultMinProportion)

	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}

	entries, err := allocator.ComputeProportions(snap, identifier, department, minProportion)
	if err != nil {
		if errors.Is(err, allocator.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.ProportionListResponse{
		Identifier:  identifier,
		Department:  department,
		Proportions: make([]dto.ProportionResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Proportions = append(response.Proportions, dto.ProportionResponse{
			Department:  e.Department,
			QuantitySum: e.QuantitySum,
			Proportion:  e.Proportion,
		})
	}

	c.JSON(http.StatusOK, response)
}
