package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ProportionResponse is one department's share of historical usage.
type ProportionResponse struct {
	Department  string  `json:"department"`
	QuantitySum float64 `json:"quantity_sum"`
	Proportion  float64 `json:"proportion"`
}

// ProportionListResponse is returned by the proportions endpoint.
type ProportionListResponse struct {
	Identifier  string               `json:"identifier"`
	Department  string               `json:"department,omitempty"`
	Proportions []ProportionResponse `json:"proportions"`
}

// AllocationEntryResponse is the integer quantity assigned to one
// department.
type AllocationEntryResponse struct {
	Department string  `json:"department"`
	Proportion float64 `json:"proportion"`
	Allocated  int     `json:"allocated_quantity"`
}

// AllocationResultResponse is the outcome for a single requested item.
// Exactly one of Entries or Error is populated.
type AllocationResultResponse struct {
	Identifier string                    `json:"identifier"`
	Quantity   float64                   `json:"quantity"`
	Entries    []AllocationEntryResponse `json:"entries,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// AllocationBatchResponse is returned by the allocations endpoint.
type AllocationBatchResponse struct {
	Department string                     `json:"department,omitempty"`
	Results    []AllocationResultResponse `json:"results"`
}

// TransactionResponse represents a ledger row in API responses.
type TransactionResponse struct {
	ID                 int64   `json:"id"`
	Date               string  `json:"date"`
	ItemSerial         string  `json:"item_serial,omitempty"`
	ItemName           string  `json:"item_name"`
	Department         string  `json:"department"`
	IssuedTo           string  `json:"issued_to,omitempty"`
	Quantity           float64 `json:"quantity"`
	UnitOfMeasure      string  `json:"unit_of_measure,omitempty"`
	ItemCategory       string  `json:"item_category,omitempty"`
	Week               string  `json:"week,omitempty"`
	Reference          string  `json:"reference,omitempty"`
	DepartmentCategory string  `json:"department_category,omitempty"`
	BatchNumber        string  `json:"batch_number,omitempty"`
	Store              string  `json:"store,omitempty"`
	ReceivedBy         string  `json:"received_by,omitempty"`
}

// TransactionListResponse is returned when listing ledger rows.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int                   `json:"total_count"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// DepartmentUsageResponse is one department's summed usage.
type DepartmentUsageResponse struct {
	Department string  `json:"department"`
	Quantity   float64 `json:"quantity"`
}

// UsageOverviewResponse is returned by the usage overview endpoint.
type UsageOverviewResponse struct {
	TotalQuantity    float64                   `json:"total_quantity"`
	TransactionCount int                       `json:"transaction_count"`
	UniqueItems      int                       `json:"unique_items"`
	ByDepartment     []DepartmentUsageResponse `json:"by_department"`
}

// MonthlyUsageResponse is one month/department usage bucket.
type MonthlyUsageResponse struct {
	Month      string  `json:"month"`
	Department string  `json:"department"`
	Quantity   float64 `json:"quantity"`
}

// MonthlyUsageListResponse is returned by the monthly usage endpoint.
type MonthlyUsageListResponse struct {
	Department string                 `json:"department,omitempty"`
	Series     []MonthlyUsageResponse `json:"series"`
}

// ItemUsageResponse is one item's summed usage.
type ItemUsageResponse struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
}

// TopItemsResponse is returned by the top items endpoint.
type TopItemsResponse struct {
	Department string              `json:"department,omitempty"`
	Items      []ItemUsageResponse `json:"items"`
}

// StatsResponse is the dataset-wide summary.
type StatsResponse struct {
	ItemCount        int     `json:"item_count"`
	DepartmentCount  int     `json:"department_count"`
	TransactionCount int     `json:"transaction_count"`
	TotalQuantity    float64 `json:"total_quantity"`
	EarliestDate     string  `json:"earliest_date,omitempty"`
	LatestDate       string  `json:"latest_date,omitempty"`
	LoadedAt         string  `json:"loaded_at"`
}

// ValueListResponse is returned by the picker-value endpoints.
type ValueListResponse struct {
	Values []string `json:"values"`
	Count  int      `json:"count"`
}

// RefreshResponse is returned after a forced snapshot refresh.
type RefreshResponse struct {
	TransactionCount int    `json:"transaction_count"`
	LoadedAt         string `json:"loaded_at"`
}
