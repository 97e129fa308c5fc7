package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// MockRepository is an in-memory Repository implementation for tests.
type MockRepository struct {
	mu           sync.Mutex
	transactions []dataset.Transaction
	nextID       int64

	// SaveErr, when set, is returned by write operations.
	SaveErr error
}

var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

// AddTransaction seeds the repository with a ledger row.
func (m *MockRepository) AddTransaction(tx dataset.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.ID = m.nextID
	m.nextID++
	m.transactions = append(m.transactions, tx)
}

// SaveTransaction records a single issuance.
func (m *MockRepository) SaveTransaction(tx *dataset.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx.Reference == "" {
		tx.Reference = fmt.Sprintf("mock-ref-%d", m.nextID)
	}
	tx.ID = m.nextID
	m.nextID++
	m.transactions = append(m.transactions, *tx)
	return nil
}

// ImportTransactions bulk-inserts rows.
func (m *MockRepository) ImportTransactions(txs []dataset.Transaction) (int, error) {
	if m.SaveErr != nil {
		return 0, m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range txs {
		tx.ID = m.nextID
		m.nextID++
		m.transactions = append(m.transactions, tx)
	}
	return len(txs), nil
}

// LoadTransactions returns rows dated on or after since, oldest first.
func (m *MockRepository) LoadTransactions(since time.Time) ([]dataset.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dataset.Transaction
	for _, tx := range m.transactions {
		if tx.Date.Before(since) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListTransactions applies the filters with pagination.
func (m *MockRepository) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []dataset.Transaction
	for i := range m.transactions {
		tx := m.transactions[i]
		if filters.Item != "" && !tx.MatchesItem(filters.Item) {
			continue
		}
		if !tx.MatchesDepartment(filters.Department) {
			continue
		}
		if filters.Category != "" && tx.ItemCategory != filters.Category {
			continue
		}
		if filters.Store != "" && tx.Store != filters.Store {
			continue
		}
		if !filters.From.IsZero() && tx.Date.Before(filters.From) {
			continue
		}
		if !filters.To.IsZero() && tx.Date.After(filters.To) {
			continue
		}
		matched = append(matched, tx)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if filters.OrderBy == "quantity" {
			if filters.OrderDesc {
				return matched[i].Quantity > matched[j].Quantity
			}
			return matched[i].Quantity < matched[j].Quantity
		}
		if filters.OrderDesc {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].Date.Before(matched[j].Date)
	})

	total := len(matched)
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &TransactionListResult{
		Transactions: matched[start:end],
		TotalCount:   total,
		Limit:        limit,
		Offset:       filters.Offset,
	}, nil
}

// Close is a no-op for the mock.
func (m *MockRepository) Close() error {
	return nil
}
