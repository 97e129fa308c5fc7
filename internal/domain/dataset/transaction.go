// Package dataset defines the historical issuance ledger the allocation
// engine reads: one Transaction per CHECK_OUT row, collected into an
// immutable Snapshot.
package dataset

import (
	"strings"
	"time"
)

// AllDepartments is the sentinel department filter meaning "no restriction".
// An empty string is treated the same way.
const AllDepartments = "All Departments"

// Transaction is a single issuance event from the CHECK_OUT ledger.
// Quantity is signed: negative rows are returns or corrections.
type Transaction struct {
	ID                 int64     `json:"id,omitempty"`
	Date               time.Time `json:"date"`
	ItemSerial         string    `json:"item_serial"`
	ItemName           string    `json:"item_name"`
	Department         string    `json:"department"`
	IssuedTo           string    `json:"issued_to,omitempty"`
	Quantity           float64   `json:"quantity"`
	UnitOfMeasure      string    `json:"unit_of_measure,omitempty"`
	ItemCategory       string    `json:"item_category,omitempty"`
	Week               string    `json:"week,omitempty"`
	Reference          string    `json:"reference,omitempty"`
	DepartmentCategory string    `json:"department_category,omitempty"`
	BatchNumber        string    `json:"batch_number,omitempty"`
	Store              string    `json:"store,omitempty"`
	ReceivedBy         string    `json:"received_by,omitempty"`
}

// MatchesItem reports whether the transaction belongs to the given item
// identifier. A purely numeric identifier is matched against the serial
// field; anything else is matched against the item name. Both matches
// are case-insensitive and exact.
func (t *Transaction) MatchesItem(identifier string) bool {
	if IsSerial(identifier) {
		return strings.EqualFold(t.ItemSerial, identifier)
	}
	return strings.EqualFold(t.ItemName, identifier)
}

// MatchesDepartment reports whether the transaction falls under the given
// department filter. AllDepartments and "" match every row.
func (t *Transaction) MatchesDepartment(department string) bool {
	if department == "" || department == AllDepartments {
		return true
	}
	return t.Department == department
}

// IsSerial reports whether an item identifier should be looked up by
// serial code rather than by name: it must be non-empty and consist only
// of digits.
func IsSerial(identifier string) bool {
	if identifier == "" {
		return false
	}
	for _, r := range identifier {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
