package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase statuses. Mirrors the order machine with its own status set.
const (
	PurchaseStatusDraft      = "draft"
	PurchaseStatusConfirmed  = "confirmed"
	PurchaseStatusInProgress = "in_progress"
	PurchaseStatusReceived   = "received"
	PurchaseStatusCancelled  = "cancelled"
)

// PurchaseStatusAllowed is the allow-list for the free-form status update.
var PurchaseStatusAllowed = map[string]bool{
	PurchaseStatusDraft:      true,
	PurchaseStatusConfirmed:  true,
	PurchaseStatusInProgress: true,
	PurchaseStatusCancelled:  true,
}

// Purchase is the supplier-scoped counterpart of Order: Draft → Confirmed →
// Received, with its own append-only history.
type Purchase struct {
	ID         string
	Number     string
	Status     string
	SupplierID string // contractor of type supplier (or both)
	Total      decimal.Decimal
	Notes      string
	Deleted    bool
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseItem is a line of a purchase, priced from the catalog purchase cost.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ItemID     string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	VATRate    decimal.Decimal
	Total      decimal.Decimal
}

// PurchaseHistory records every status transition and edit of a purchase.
type PurchaseHistory struct {
	ID         string
	PurchaseID string
	Action     string
	Details    string
	CreatedBy  string
	CreatedAt  time.Time
}
