package dto

// AllocationItemRequest is one item to distribute.
type AllocationItemRequest struct {
	Identifier string  `json:"identifier"`
	Quantity   float64 `json:"quantity"`
}

// AllocationRequest asks for one or more items to be distributed across
// departments. Department is optional; empty or "All Departments" means
// no restriction.
type AllocationRequest struct {
	Department string                  `json:"department,omitempty"`
	Items      []AllocationItemRequest `json:"items"`
}

// IssuanceRequest records a new ledger row.
type IssuanceRequest struct {
	Date               string  `json:"date,omitempty"`
	ItemSerial         string  `json:"item_serial,omitempty"`
	ItemName           string  `json:"item_name"`
	Department         string  `json:"department"`
	IssuedTo           string  `json:"issued_to,omitempty"`
	Quantity           float64 `json:"quantity"`
	UnitOfMeasure      string  `json:"unit_of_measure,omitempty"`
	ItemCategory       string  `json:"item_category,omitempty"`
	Week               string  `json:"week,omitempty"`
	Reference          string  `json:"reference,omitempty"`
	DepartmentCategory string  `json:"department_category,omitempty"`
	BatchNumber        string  `json:"batch_number,omitempty"`
	Store              string  `json:"store,omitempty"`
	ReceivedBy         string  `json:"received_by,omitempty"`
}
