package dataset

import (
	"sort"
	"time"
)

// Snapshot is an immutable in-memory copy of the retained transaction
// window. Engine calls read a single snapshot for their whole duration;
// refreshing swaps the snapshot wholesale, never mutates one in place.
type Snapshot struct {
	Transactions []Transaction
	LoadedAt     time.Time
}

// NewSnapshot wraps the given transactions in a snapshot stamped now.
func NewSnapshot(transactions []Transaction) *Snapshot {
	return &Snapshot{
		Transactions: transactions,
		LoadedAt:     time.Now().UTC(),
	}
}

// Len returns the number of transactions in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Transactions)
}

// Items returns the sorted distinct item names.
func (s *Snapshot) Items() []string {
	return s.distinct(func(t *Transaction) string { return t.ItemName })
}

// Serials returns the sorted distinct item serial codes.
func (s *Snapshot) Serials() []string {
	return s.distinct(func(t *Transaction) string { return t.ItemSerial })
}

// Departments returns the sorted distinct departments.
func (s *Snapshot) Departments() []string {
	return s.distinct(func(t *Transaction) string { return t.Department })
}

// Categories returns the sorted distinct item categories.
func (s *Snapshot) Categories() []string {
	return s.distinct(func(t *Transaction) string { return t.ItemCategory })
}

// Stores returns the sorted distinct stores.
func (s *Snapshot) Stores() []string {
	return s.distinct(func(t *Transaction) string { return t.Store })
}

// DateRange returns the earliest and latest transaction dates. ok is
// false for an empty snapshot.
func (s *Snapshot) DateRange() (min, max time.Time, ok bool) {
	if len(s.Transactions) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min = s.Transactions[0].Date
	max = s.Transactions[0].Date
	for _, t := range s.Transactions[1:] {
		if t.Date.Before(min) {
			min = t.Date
		}
		if t.Date.After(max) {
			max = t.Date
		}
	}
	return min, max, true
}

func (s *Snapshot) distinct(key func(*Transaction) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range s.Transactions {
		v := key(&s.Transactions[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
