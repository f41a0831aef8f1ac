package entity

import "time"

// Contractor types. A contractor may act as supplier, client or both.
const (
	ContractorTypeSupplier = "supplier"
	ContractorTypeClient   = "client"
	ContractorTypeBoth     = "both"
)

// Contractor is a business partner referenced by items, orders, purchases
// and invoices. Soft-deleted via the Deleted flag, never removed physically.
type Contractor struct {
	ID        string
	Name      string
	Type      string // supplier, client, both
	NIP       string // tax identification number
	Email     string
	Phone     string
	Address   string
	City      string
	ZipCode   string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSupplier reports whether the contractor can supply purchases.
func (c *Contractor) IsSupplier() bool {
	return c.Type == ContractorTypeSupplier || c.Type == ContractorTypeBoth
}

// IsClient reports whether the contractor can receive sales.
func (c *Contractor) IsClient() bool {
	return c.Type == ContractorTypeClient || c.Type == ContractorTypeBoth
}
