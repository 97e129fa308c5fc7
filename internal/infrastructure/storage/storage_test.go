package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

func createTempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ledger_test.db")
}

func ledgerRow(date time.Time, item, department string, qty float64) dataset.Transaction {
	return dataset.Transaction{
		Date:          date,
		ItemSerial:    "1001",
		ItemName:      item,
		Department:    department,
		IssuedTo:      "Kitchen",
		Quantity:      qty,
		UnitOfMeasure: "kg",
		ItemCategory:  "Dry Goods",
		Store:         "Main",
		ReceivedBy:    "J. Doe",
	}
}

func TestStorage_SaveAndLoadTransaction(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	tx := ledgerRow(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "Flour", "Bakery", 25)
	tx.Reference = "REF-001"

	err = store.SaveTransaction(&tx)
	require.NoError(t, err)
	assert.NotZero(t, tx.ID)

	loaded, err := store.LoadTransactions(time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, "Flour", got.ItemName)
	assert.Equal(t, "1001", got.ItemSerial)
	assert.Equal(t, "Bakery", got.Department)
	assert.Equal(t, 25.0, got.Quantity)
	assert.Equal(t, "REF-001", got.Reference)
	assert.Equal(t, "kg", got.UnitOfMeasure)
	assert.True(t, got.Date.Equal(tx.Date))
}

func TestStorage_SaveTransaction_GeneratesReference(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	tx := ledgerRow(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "Flour", "Bakery", 5)
	require.NoError(t, store.SaveTransaction(&tx))

	assert.NotEmpty(t, tx.Reference)
}

func TestStorage_ImportTransactions(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []dataset.Transaction{
		ledgerRow(base, "Flour", "Bakery", 10),
		ledgerRow(base.AddDate(0, 1, 0), "Flour", "Pastry", 5),
		ledgerRow(base.AddDate(0, 2, 0), "Sugar", "Pastry", 8),
	}

	n, err := store.ImportTransactions(rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	loaded, err := store.LoadTransactions(time.Time{})
	require.NoError(t, err)
	assert.Len(t, loaded, 3)

	t.Run("empty import is a no-op", func(t *testing.T) {
		n, err := store.ImportTransactions(nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestStorage_LoadTransactions_RetentionWindow(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.ImportTransactions([]dataset.Transaction{
		ledgerRow(time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), "Flour", "Bakery", 10),
		ledgerRow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "Flour", "Bakery", 20),
		ledgerRow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "Flour", "Bakery", 30),
	})
	require.NoError(t, err)

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loaded, err := store.LoadTransactions(since)
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	// Oldest first.
	assert.Equal(t, 20.0, loaded[0].Quantity)
	assert.Equal(t, 30.0, loaded[1].Quantity)
}

func TestStorage_ListTransactions(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []dataset.Transaction{
		ledgerRow(base, "Flour", "Bakery", 10),
		ledgerRow(base.AddDate(0, 0, 10), "Flour", "Pastry", 5),
		ledgerRow(base.AddDate(0, 0, 20), "Sugar", "Pastry", 8),
	}
	rows[2].ItemSerial = "2002"
	_, err = store.ImportTransactions(rows)
	require.NoError(t, err)

	t.Run("filter by item name is case-insensitive", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Item: "flour"})
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
		assert.Len(t, result.Transactions, 2)
	})

	t.Run("numeric item filter matches serial", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Item: "2002"})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "Sugar", result.Transactions[0].ItemName)
	})

	t.Run("filter by department", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Department: "Pastry"})
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
	})

	t.Run("all-departments sentinel matches everything", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Department: dataset.AllDepartments})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
	})

	t.Run("date range", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{
			From: base.AddDate(0, 0, 5),
			To:   base.AddDate(0, 0, 15),
		})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "Pastry", result.Transactions[0].Department)
	})

	t.Run("pagination and descending date order", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Limit: 2, OrderDesc: true})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
		require.Len(t, result.Transactions, 2)
		assert.Equal(t, "Sugar", result.Transactions[0].ItemName)

		next, err := store.ListTransactions(TransactionFilters{Limit: 2, Offset: 2, OrderDesc: true})
		require.NoError(t, err)
		require.Len(t, next.Transactions, 1)
		assert.Equal(t, "Bakery", next.Transactions[0].Department)
	})

	t.Run("order by quantity", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{OrderBy: "quantity", OrderDesc: true})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 3)
		assert.Equal(t, 10.0, result.Transactions[0].Quantity)
	})
}

func TestStorage_MigrationsAreIdempotent(t *testing.T) {
	dbPath := createTempDB(t)

	store, err := NewStorage(dbPath)
	require.NoError(t, err)
	tx := ledgerRow(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "Flour", "Bakery", 1)
	require.NoError(t, store.SaveTransaction(&tx))
	require.NoError(t, store.Close())

	// Re-opening re-runs the migration check without error or data loss.
	reopened, err := NewStorage(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadTransactions(time.Time{})
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
