package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

func TestMockRepository_ListOrderingWithTies(t *testing.T) {
	repo := NewMockRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Three rows share a date; the descending sort must keep their
	// insertion order rather than shuffling equal elements.
	repo.AddTransaction(dataset.Transaction{Date: day, ItemName: "Flour", Department: "Bakery", Quantity: 5})
	repo.AddTransaction(dataset.Transaction{Date: day, ItemName: "Flour", Department: "Pastry", Quantity: 5})
	repo.AddTransaction(dataset.Transaction{Date: day, ItemName: "Flour", Department: "Grill", Quantity: 5})
	repo.AddTransaction(dataset.Transaction{Date: day.AddDate(0, 0, 1), ItemName: "Flour", Department: "Deli", Quantity: 9})

	t.Run("descending by date", func(t *testing.T) {
		result, err := repo.ListTransactions(TransactionFilters{OrderDesc: true})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 4)

		assert.Equal(t, "Deli", result.Transactions[0].Department)
		assert.Equal(t, "Bakery", result.Transactions[1].Department)
		assert.Equal(t, "Pastry", result.Transactions[2].Department)
		assert.Equal(t, "Grill", result.Transactions[3].Department)
	})

	t.Run("descending by quantity", func(t *testing.T) {
		result, err := repo.ListTransactions(TransactionFilters{OrderBy: "quantity", OrderDesc: true})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 4)

		assert.Equal(t, 9.0, result.Transactions[0].Quantity)
		assert.Equal(t, "Bakery", result.Transactions[1].Department)
		assert.Equal(t, "Pastry", result.Transactions[2].Department)
		assert.Equal(t, "Grill", result.Transactions[3].Department)
	})

	t.Run("ascending by date keeps ties stable", func(t *testing.T) {
		result, err := repo.ListTransactions(TransactionFilters{})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 4)

		assert.Equal(t, "Bakery", result.Transactions[0].Department)
		assert.Equal(t, "Deli", result.Transactions[3].Department)
	})
}
