package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/usage"
)

const dateLayout = "2006-01-02"

// UsageHandler handles usage analytics requests.
type UsageHandler struct {
	*Base
}

// NewUsageHandler creates a new usage handler.
func NewUsageHandler(datasets *service.DatasetService) *UsageHandler {
	return &UsageHandler{Base: NewBase(datasets)}
}

// Overview handles GET /api/usage/overview - filtered usage statistics.
func (h *UsageHandler) Overview(c *gin.Context) {
	filters := usage.Filters{
		Items:       ParseListQuery(c, "items"),
		Categories:  ParseListQuery(c, "categories"),
		Departments: ParseListQuery(c, "departments"),
	}

	var ok bool
	if filters.From, ok = parseDateQuery(c, "from"); !ok {
		return
	}
	if filters.To, ok = parseDateQuery(c, "to"); !ok {
		return
	}
	if !filters.To.IsZero() {
		// Inclusive upper bound: extend to the end of the day.
		filters.To = filters.To.Add(24*time.Hour - time.Nanosecond)
	}

	snap, snapOK := h.Snapshot(c)
	if !snapOK {
		return
	}

	overview := usage.ComputeOverview(snap, filters)

	response := dto.UsageOverviewResponse{
		TotalQuantity:    overview.TotalQuantity,
		TransactionCount: overview.TransactionCount,
		UniqueItems:      overview.UniqueItems,
		ByDepartment:     make([]dto.DepartmentUsageResponse, 0, len(overview.ByDepartment)),
	}
	for _, d := range overview.ByDepartment {
		response.ByDepartment = append(response.ByDepartment, dto.DepartmentUsageResponse{
			Department: d.Department,
			Quantity:   d.Quantity,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Monthly handles GET /api/usage/monthly - month-bucketed usage per
// department.
func (h *UsageHandler) Monthly(c *gin.Context) {
	department := c.Query("department")

	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}

	series := usage.MonthlyByDepartment(snap, department)

	response := dto.MonthlyUsageListResponse{
		Department: department,
		Series:     make([]dto.MonthlyUsageResponse, 0, len(series)),
	}
	for _, m := range series {
		response.Series = append(response.Series, dto.MonthlyUsageResponse{
			Month:      m.Month.Format("2006-01"),
			Department: m.Department,
			Quantity:   m.Quantity,
		})
	}

	c.JSON(http.StatusOK, response)
}

// TopItems handles GET /api/usage/top-items - most used items by summed
// quantity.
func (h *UsageHandler) TopItems(c *gin.Context) {
	department := c.Query("department")
	limit := ParseIntQuery(c, "limit", 10)

	snap, ok := h.Snapshot(c)
	if !ok {
		return
	}

	items := usage.TopItems(snap, department, limit)

	response := dto.TopItemsResponse{
		Department: department,
		Items:      make([]dto.ItemUsageResponse, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, dto.ItemUsageResponse{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		})
	}

	c.JSON(http.StatusOK, response)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter, writing a
// 400 response on malformed input.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	val := c.Query(name)
	if val == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(dateLayout, val)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("query parameter '"+name+"' must be formatted YYYY-MM-DD"))
		return time.Time{}, false
	}
	return parsed.UTC(), true
}
