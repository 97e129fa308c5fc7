package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/dto"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
)

// TransactionsHandler handles ledger listing and issuance recording.
type TransactionsHandler struct {
	*Base
	repo storage.Repository
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(datasets *service.DatasetService, repo storage.Repository) *TransactionsHandler {
	return &TransactionsHandler{
		Base: NewBase(datasets),
		repo: repo,
	}
}

// List handles GET /api/transactions - returns ledger rows matching the
// query filters with pagination.
func (h *TransactionsHandler) List(c *gin.Context) {
	filters := storage.TransactionFilters{
		Item:       c.Query("item"),
		Department: c.Query("department"),
		Category:   c.Query("category"),
		Store:      c.Query("store"),
		Limit:      ParseIntQuery(c, "limit", 50),
		Offset:     ParseIntQuery(c, "offset", 0),
		OrderBy:    c.Query("order_by"),
		OrderDesc:  c.DefaultQuery("order", "desc") == "desc",
	}

	var ok bool
	if filters.From, ok = parseDateQuery(c, "from"); !ok {
		return
	}
	if filters.To, ok = parseDateQuery(c, "to"); !ok {
		return
	}
	if !filters.To.IsZero() {
		filters.To = filters.To.Add(24*time.Hour - time.Nanosecond)
	}

	result, err := h.repo.ListTransactions(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(result.Transactions)),
		TotalCount:   result.TotalCount,
		Limit:        result.Limit,
		Offset:       result.Offset,
	}
	for i := range result.Transactions {
		response.Transactions = append(response.Transactions, toTransactionResponse(&result.Transactions[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/transactions - records a new issuance.
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.IssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if req.ItemName == "" {
		c.JSON(http.StatusBadRequest, dto.ValidationError("item_name is required"))
		return
	}
	if req.Department == "" {
		c.JSON(http.StatusBadRequest, dto.ValidationError("department is required"))
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, dto.ValidationError("quantity must be greater than zero"))
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.BadRequestError("date must be formatted YYYY-MM-DD"))
			return
		}
		date = parsed.UTC()
	}

	tx := dataset.Transaction{
		Date:               date,
		ItemSerial:         req.ItemSerial,
		ItemName:           req.ItemName,
		Department:         req.Department,
		IssuedTo:           req.IssuedTo,
		Quantity:           req.Quantity,
		UnitOfMeasure:      req.UnitOfMeasure,
		ItemCategory:       req.ItemCategory,
		Week:               req.Week,
		Reference:          req.Reference,
		DepartmentCategory: req.DepartmentCategory,
		BatchNumber:        req.BatchNumber,
		Store:              req.Store,
		ReceivedBy:         req.ReceivedBy,
	}

	if err := h.datasets.RecordIssuance(&tx); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(&tx))
}

func toTransactionResponse(tx *dataset.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                 tx.ID,
		Date:               tx.Date.Format(dateLayout),
		ItemSerial:         tx.ItemSerial,
		ItemName:           tx.ItemName,
		Department:         tx.Department,
		IssuedTo:           tx.IssuedTo,
		Quantity:           tx.Quantity,
		UnitOfMeasure:      tx.UnitOfMeasure,
		ItemCategory:       tx.ItemCategory,
		Week:               tx.Week,
		Reference:          tx.Reference,
		DepartmentCategory: tx.DepartmentCategory,
		BatchNumber:        tx.BatchNumber,
		Store:              tx.Store,
		ReceivedBy:         tx.ReceivedBy,
	}
}
