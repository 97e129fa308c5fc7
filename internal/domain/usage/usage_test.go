package usage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

func row(date time.Time, item, category, department string, qty float64) dataset.Transaction {
	return dataset.Transaction{
		Date:         date,
		ItemName:     item,
		ItemCategory: category,
		Department:   department,
		Quantity:     qty,
	}
}

func testSnapshot() *dataset.Snapshot {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	return dataset.NewSnapshot([]dataset.Transaction{
		row(jan, "Flour", "Dry Goods", "Bakery", 40),
		row(jan, "Sugar", "Dry Goods", "Pastry", 15),
		row(feb, "Flour", "Dry Goods", "Bakery", 20),
		row(feb, "Butter", "Dairy", "Pastry", 10),
		row(mar, "Flour", "Dry Goods", "Grill", 5),
	})
}

func TestComputeOverview_NoFilters(t *testing.T) {
	overview := ComputeOverview(testSnapshot(), Filters{})

	assert.Equal(t, 90.0, overview.TotalQuantity)
	assert.Equal(t, 5, overview.TransactionCount)
	assert.Equal(t, 3, overview.UniqueItems)

	require.Len(t, overview.ByDepartment, 3)
	assert.Equal(t, DepartmentUsage{Department: "Bakery", Quantity: 60}, overview.ByDepartment[0])
	assert.Equal(t, DepartmentUsage{Department: "Pastry", Quantity: 25}, overview.ByDepartment[1])
	assert.Equal(t, DepartmentUsage{Department: "Grill", Quantity: 5}, overview.ByDepartment[2])
}

func TestComputeOverview_Filters(t *testing.T) {
	snap := testSnapshot()

	t.Run("date range", func(t *testing.T) {
		overview := ComputeOverview(snap, Filters{
			From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		})
		assert.Equal(t, 30.0, overview.TotalQuantity)
		assert.Equal(t, 2, overview.TransactionCount)
	})

	t.Run("category", func(t *testing.T) {
		overview := ComputeOverview(snap, Filters{Categories: []string{"Dairy"}})
		assert.Equal(t, 10.0, overview.TotalQuantity)
		assert.Equal(t, 1, overview.UniqueItems)
	})

	t.Run("item and department", func(t *testing.T) {
		overview := ComputeOverview(snap, Filters{
			Items:       []string{"Flour"},
			Departments: []string{"Bakery"},
		})
		assert.Equal(t, 60.0, overview.TotalQuantity)
		assert.Equal(t, 2, overview.TransactionCount)
	})

	t.Run("no matches", func(t *testing.T) {
		overview := ComputeOverview(snap, Filters{Items: []string{"Saffron"}})
		assert.Zero(t, overview.TotalQuantity)
		assert.Zero(t, overview.TransactionCount)
		assert.Empty(t, overview.ByDepartment)
	})
}

func TestMonthlyByDepartment(t *testing.T) {
	series := MonthlyByDepartment(testSnapshot(), dataset.AllDepartments)

	require.Len(t, series, 5)
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, MonthlyUsage{Month: jan, Department: "Bakery", Quantity: 40}, series[0])
	assert.Equal(t, MonthlyUsage{Month: jan, Department: "Pastry", Quantity: 15}, series[1])

	t.Run("restricted to one department", func(t *testing.T) {
		bakery := MonthlyByDepartment(testSnapshot(), "Bakery")
		require.Len(t, bakery, 2)
		assert.Equal(t, 40.0, bakery[0].Quantity)
		assert.Equal(t, 20.0, bakery[1].Quantity)
	})
}

func TestTopItems(t *testing.T) {
	items := TopItems(testSnapshot(), dataset.AllDepartments, 2)

	require.Len(t, items, 2)
	assert.Equal(t, ItemUsage{ItemName: "Flour", Quantity: 65}, items[0])
	assert.Equal(t, ItemUsage{ItemName: "Sugar", Quantity: 15}, items[1])

	t.Run("zero limit returns all", func(t *testing.T) {
		assert.Len(t, TopItems(testSnapshot(), "", 0), 3)
	})

	t.Run("department restriction", func(t *testing.T) {
		items := TopItems(testSnapshot(), "Pastry", 10)
		require.Len(t, items, 2)
		assert.Equal(t, "Sugar", items[0].ItemName)
	})
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(testSnapshot())

	assert.Equal(t, 3, stats.ItemCount)
	assert.Equal(t, 3, stats.DepartmentCount)
	assert.Equal(t, 5, stats.TransactionCount)
	assert.Equal(t, 90.0, stats.TotalQuantity)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), stats.EarliestDate)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), stats.LatestDate)
}
