// Package usage computes aggregate statistics over the issuance ledger:
// filtered overviews, monthly department trends, and most-used items.
package usage

import (
	"sort"
	"time"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// Filters narrows an overview to a date range and/or specific values.
// Zero-valued fields are ignored.
type Filters struct {
	From        time.Time
	To          time.Time
	Items       []string
	Categories  []string
	Departments []string
}

// DepartmentUsage is the summed quantity one department consumed.
type DepartmentUsage struct {
	Department string  `json:"department"`
	Quantity   float64 `json:"quantity"`
}

// ItemUsage is the summed quantity of one item.
type ItemUsage struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
}

// MonthlyUsage is one department's summed quantity in one calendar month.
type MonthlyUsage struct {
	Month      time.Time `json:"month"`
	Department string    `json:"department"`
	Quantity   float64   `json:"quantity"`
}

// Overview summarizes the rows matching the filters.
type Overview struct {
	TotalQuantity    float64           `json:"total_quantity"`
	TransactionCount int               `json:"transaction_count"`
	UniqueItems      int               `json:"unique_items"`
	ByDepartment     []DepartmentUsage `json:"by_department"`
}

// Stats is the dataset-wide summary shown before any filtering.
type Stats struct {
	ItemCount        int       `json:"item_count"`
	DepartmentCount  int       `json:"department_count"`
	TransactionCount int       `json:"transaction_count"`
	TotalQuantity    float64   `json:"total_quantity"`
	EarliestDate     time.Time `json:"earliest_date"`
	LatestDate       time.Time `json:"latest_date"`
	LoadedAt         time.Time `json:"loaded_at"`
}

// ComputeOverview aggregates the snapshot rows matching the filters.
func ComputeOverview(snap *dataset.Snapshot, filters Filters) Overview {
	items := toSet(filters.Items)
	categories := toSet(filters.Categories)
	departments := toSet(filters.Departments)

	overview := Overview{}
	uniqueItems := make(map[string]bool)
	deptSums := make(map[string]float64)

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if !filters.From.IsZero() && t.Date.Before(filters.From) {
			continue
		}
		if !filters.To.IsZero() && t.Date.After(filters.To) {
			continue
		}
		if len(items) > 0 && !items[t.ItemName] {
			continue
		}
		if len(categories) > 0 && !categories[t.ItemCategory] {
			continue
		}
		if len(departments) > 0 && !departments[t.Department] {
			continue
		}

		overview.TotalQuantity += t.Quantity
		overview.TransactionCount++
		uniqueItems[t.ItemName] = true
		deptSums[t.Department] += t.Quantity
	}

	overview.UniqueItems = len(uniqueItems)
	overview.ByDepartment = sortedDepartmentUsage(deptSums)
	return overview
}

// MonthlyByDepartment buckets usage by calendar month and department,
// restricted to one department unless the filter is AllDepartments/"".
// Results are ordered by month, then department.
func MonthlyByDepartment(snap *dataset.Snapshot, department string) []MonthlyUsage {
	type key struct {
		month time.Time
		dept  string
	}
	sums := make(map[key]float64)

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if !t.MatchesDepartment(department) {
			continue
		}
		month := time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[key{month, t.Department}] += t.Quantity
	}

	series := make([]MonthlyUsage, 0, len(sums))
	for k, qty := range sums {
		series = append(series, MonthlyUsage{Month: k.month, Department: k.dept, Quantity: qty})
	}
	sort.Slice(series, func(i, j int) bool {
		if !series[i].Month.Equal(series[j].Month) {
			return series[i].Month.Before(series[j].Month)
		}
		return series[i].Department < series[j].Department
	})
	return series
}

// TopItems returns the n most-used items within the department filter,
// by summed quantity descending. Ties are broken by item name.
func TopItems(snap *dataset.Snapshot, department string, n int) []ItemUsage {
	sums := make(map[string]float64)
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if !t.MatchesDepartment(department) {
			continue
		}
		sums[t.ItemName] += t.Quantity
	}

	items := make([]ItemUsage, 0, len(sums))
	for name, qty := range sums {
		items = append(items, ItemUsage{ItemName: name, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].ItemName < items[j].ItemName
	})

	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}

// ComputeStats summarizes the whole snapshot.
func ComputeStats(snap *dataset.Snapshot) Stats {
	stats := Stats{
		ItemCount:        len(snap.Items()),
		DepartmentCount:  len(snap.Departments()),
		TransactionCount: snap.Len(),
		LoadedAt:         snap.LoadedAt,
	}
	for i := range snap.Transactions {
		stats.TotalQuantity += snap.Transactions[i].Quantity
	}
	if min, max, ok := snap.DateRange(); ok {
		stats.EarliestDate = min
		stats.LatestDate = max
	}
	return stats
}

func sortedDepartmentUsage(sums map[string]float64) []DepartmentUsage {
	deptUsage := make([]DepartmentUsage, 0, len(sums))
	for dept, qty := range sums {
		deptUsage = append(deptUsage, DepartmentUsage{Department: dept, Quantity: qty})
	}
	sort.Slice(deptUsage, func(i, j int) bool {
		if deptUsage[i].Quantity != deptUsage[j].Quantity {
			return deptUsage[i].Quantity > deptUsage[j].Quantity
		}
		return deptUsage[i].Department < deptUsage[j].Department
	})
	return deptUsage
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
