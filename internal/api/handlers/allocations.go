package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/allocator"
)

// AllocationsHandler handles allocation requests.
type AllocationsHandler struct {
	*Base
}

// NewAllocationsHandler creates a new allocations handler.
func NewAllocationsHandler(datasets *service.DatasetService) *AllocationsHandler {
	return &AllocationsHandler{Base: NewBase(datasets)}
}

// Create handles POST /api/allocations - distributes the requested
// quantities across departments by historical usage. Items that have no
// usable history are reported per-item rather than failing the batch.
func (h *AllocationsHandler) Create(c *gin.Context) {
	var req dto.AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, dto.ValidationError("at least one item is required"))
		return
	}
	for _, item := range req.Items {
		if item.Identifier == "" {
			c.JSON(http.StatusBadRequest, dto.ValidationError("item identifier is required"))
			return
		}
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, dto.ValidationError("quantity must be greater than zero"))
			return
		}
	}

	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}

	response := dto.AllocationBatchResponse{
		Department: req.Department,
		Results:    make([]dto.AllocationResultResponse, 0, len(req.Items)),
	}

	for _, item := range req.Items {
		result := dto.AllocationResultResponse{
			Identifier: item.Identifier,
			Quantity:   item.Quantity,
		}

		entries, err := allocator.Allocate(snap, item.Identifier, item.Quantity, req.Department)
		switch {
		case errors.Is(err, allocator.ErrNotFound):
			result.Error = err.Error()
		case err != nil:
			c.JSON(http.StatusInternalServerError, dto.InternalError())
			return
		default:
			result.Entries = make([]dto.AllocationEntryResponse, 0, len(entries))
			for _, e := range entries {
				result.Entries = append(result.Entries, dto.AllocationEntryResponse{
					Department: e.Department,
					Proportion: e.Proportion,
					Allocated:  e.Allocated,
				})
			}
		}

		response.Results = append(response.Results, result)
	}

	c.JSON(http.StatusOK, response)
}
