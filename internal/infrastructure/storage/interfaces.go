package storage

import (
	"time"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	TransactionRepository
	Close() error
}

// TransactionRepository handles issuance ledger operations
type TransactionRepository interface {
	// SaveTransaction records a single issuance. A missing Reference is
	// filled with a generated one; the assigned row ID is written back.
	SaveTransaction(tx *dataset.Transaction) error

	// ImportTransactions bulk-inserts ledger rows in one database
	// transaction and returns the number of rows written.
	ImportTransactions(txs []dataset.Transaction) (int, error)

	// LoadTransactions returns all rows dated on or after since,
	// ordered by date ascending. This is the snapshot source.
	LoadTransactions(since time.Time) ([]dataset.Transaction, error)

	// ListTransactions returns rows matching the given filters with
	// pagination.
	ListTransactions(filters TransactionFilters) (*TransactionListResult, error)
}

// TransactionFilters defines filters for listing ledger rows
type TransactionFilters struct {
	Item       string    // Item name or serial (empty = all)
	Department string    // Filter by department (empty = all)
	Category   string    // Filter by item category (empty = all)
	Store      string    // Filter by store (empty = all)
	From       time.Time // Inclusive lower date bound (zero = open)
	To         time.Time // Inclusive upper date bound (zero = open)
	Limit      int       // Max results (0 = default 50)
	Offset     int       // Pagination offset
	OrderBy    string    // Sort field: "date", "quantity" (default: "date")
	OrderDesc  bool      // Sort descending
}

// TransactionListResult contains paginated ledger rows
type TransactionListResult struct {
	Transactions []dataset.Transaction `json:"transactions"`
	TotalCount   int                   `json:"total_count"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
