// Package allocator distributes an available ingredient quantity across
// departments in proportion to their historical usage.
//
// Two steps, consumed in sequence:
//
//	proportions = each department's share of historical usage, as
//	              percentages normalized to sum to 100
//	allocation  = integer units per department whose sum equals the
//	              requested quantity exactly
package allocator

import (
	"errors"
	"sort"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// DefaultMinProportion is the significance threshold policy: departments
// whose raw share of usage falls below this percentage are dropped from
// allocation results.
const DefaultMinProportion = 1.0

// ErrNotFound signals that there is no usable historical basis for an
// allocation: the identifier matched no rows, the department restriction
// emptied the match, or the net historical quantity is zero. Callers must
// treat it as "cannot allocate", never as an empty success.
var ErrNotFound = errors.New("item not found in historical data or no usage for selected department")

// ProportionEntry is one department's share of an item's historical usage.
type ProportionEntry struct {
	Department  string  `json:"department"`
	QuantitySum float64 `json:"quantity_sum"`
	Proportion  float64 `json:"proportion"`
}

// ComputeProportions calculates each qualifying department's share of the
// historical usage of the identified item, as percentages summing to 100.
//
// Departments below minProportion percent are dropped and the remaining
// shares renormalized; if every department falls below the threshold, the
// single department with the largest raw share is kept at 100%. Entries
// are sorted by proportion descending, ties keeping first-appearance
// order.
func ComputeProportions(snap *dataset.Snapshot, identifier, department string, minProportion float64) ([]ProportionEntry, error) {
	sums, order := sumByDepartment(snap, identifier, department)
	if len(order) == 0 {
		return nil, ErrNotFound
	}

	var total float64
	for _, dept := range order {
		total += sums[dept]
	}
	// Zero net usage: no meaningful proportion can be derived.
	if total == 0 {
		return nil, ErrNotFound
	}

	entries := make([]ProportionEntry, 0, len(order))
	for _, dept := range order {
		entries = append(entries, ProportionEntry{
			Department:  dept,
			QuantitySum: sums[dept],
			Proportion:  sums[dept] / total * 100,
		})
	}

	significant := entries[:0:0]
	for _, e := range entries {
		if e.Proportion >= minProportion {
			significant = append(significant, e)
		}
	}
	// Never return an empty set from a non-empty grouping: fall back to
	// the department with the largest raw share.
	if len(significant) == 0 {
		maxIdx := 0
		for i, e := range entries {
			if e.Proportion > entries[maxIdx].Proportion {
				maxIdx = i
			}
		}
		significant = append(significant, entries[maxIdx])
	}

	var kept float64
	for _, e := range significant {
		kept += e.Proportion
	}
	for i := range significant {
		significant[i].Proportion = significant[i].Proportion / kept * 100
	}

	sort.SliceStable(significant, func(i, j int) bool {
		return significant[i].Proportion > significant[j].Proportion
	})

	return significant, nil
}

// sumByDepartment filters the snapshot to the identified item (and the
// optional department restriction) and sums signed quantities per
// department, preserving first-appearance order.
func sumByDepartment(snap *dataset.Snapshot, identifier, department string) (map[string]float64, []string) {
	sums := make(map[string]float64)
	var order []string

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if !t.MatchesItem(identifier) || !t.MatchesDepartment(department) {
			continue
		}
		if _, ok := sums[t.Department]; !ok {
			order = append(order, t.Department)
		}
		sums[t.Department] += t.Quantity
	}

	return sums, order
}
