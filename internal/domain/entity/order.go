package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order types.
const (
	OrderTypeSale     = "sale"
	OrderTypePurchase = "purchase"
)

// Order statuses. Draft → Confirmed → (purchase) Received; Received,
// Completed and Cancelled are terminal.
const (
	OrderStatusDraft      = "draft"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProgress = "in_progress"
	OrderStatusShipped    = "shipped"
	OrderStatusReceived   = "received"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatusAllowed is the allow-list for the free-form status update
// endpoint. Received is excluded there: it is only reachable via Receive.
var OrderStatusAllowed = map[string]bool{
	OrderStatusDraft:      true,
	OrderStatusConfirmed:  true,
	OrderStatusInProgress: true,
	OrderStatusShipped:    true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

// Order aggregates line items referencing catalog items at frozen prices.
type Order struct {
	ID           string
	Number       string
	Type         string // sale, purchase
	Status       string
	ContractorID string
	Total        decimal.Decimal
	Notes        string
	Deleted      bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem is a line of an order. UnitPrice and VATRate are frozen from the
// catalog at creation time, not taken from the caller.
type OrderItem struct {
	ID        string
	OrderID   string
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	VATRate   decimal.Decimal
	Total     decimal.Decimal // Quantity × UnitPrice × (1 + VATRate/100)
}

// Order history actions, append-only.
const (
	HistoryCreated       = "Created"
	HistoryConfirmed     = "Confirmed"
	HistoryReceived      = "Received"
	HistoryStatusUpdated = "StatusUpdated"
	HistoryEdited        = "Edited"
)

// OrderHistory records every status transition and edit of an order.
type OrderHistory struct {
	ID        string
	OrderID   string
	Action    string
	Details   string
	CreatedBy string
	CreatedAt time.Time
}

// LineTotal computes quantity × unit price × (1 + VAT/100).
func LineTotal(quantity, unitPrice, vatRate decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return quantity.Mul(unitPrice).Mul(decimal.NewFromInt(1).Add(vatRate.Div(hundred)))
}
