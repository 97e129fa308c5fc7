package allocator

import (
	"math"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// AllocationEntry is the integer quantity assigned to one department.
type AllocationEntry struct {
	Department string  `json:"department"`
	Proportion float64 `json:"proportion"`
	Allocated  int     `json:"allocated_quantity"`
}

// Allocate distributes available units of the identified item across
// departments in proportion to their historical usage, using the
// DefaultMinProportion significance policy.
//
// Raw shares are rounded half away from zero. A shortfall against the
// rounded target is added to the largest allocation (first occurrence in
// descending-proportion order); an excess is taken back one unit at a
// time from the currently largest allocation, so the entries always sum
// to round(available) exactly and never go negative.
//
// available must be positive and finite; that is the caller's
// precondition and is not re-validated here.
func Allocate(snap *dataset.Snapshot, identifier string, available float64, department string) ([]AllocationEntry, error) {
	proportions, err := ComputeProportions(snap, identifier, department, DefaultMinProportion)
	if err != nil {
		return nil, err
	}

	target := int(math.Round(available))

	entries := make([]AllocationEntry, 0, len(proportions))
	allocated := 0
	for _, p := range proportions {
		units := int(math.Round(p.Proportion / 100 * available))
		entries = append(entries, AllocationEntry{
			Department: p.Department,
			Proportion: p.Proportion,
			Allocated:  units,
		})
		allocated += units
	}

	remainder := target - allocated
	if remainder > 0 {
		entries[largestEntry(entries)].Allocated += remainder
	}
	// Taking the whole excess from one entry could drive it negative when
	// many half-point shares rounded up, so decrement the running maximum
	// one unit at a time instead.
	for remainder < 0 {
		entries[largestEntry(entries)].Allocated--
		remainder++
	}

	return entries, nil
}

// largestEntry returns the index of the first entry holding the maximum
// allocated quantity.
func largestEntry(entries []AllocationEntry) int {
	maxIdx := 0
	for i, e := range entries {
		if e.Allocated > entries[maxIdx].Allocated {
			maxIdx = i
		}
	}
	return maxIdx
}
