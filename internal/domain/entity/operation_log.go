package entity

import "time"

// Common operation labels for the item audit log.
const (
	OpItemCreated       = "ItemCreated"
	OpItemUpdated       = "ItemUpdated"
	OpItemDeleted       = "ItemDeleted"
	OpItemRestored      = "ItemRestored"
	OpMovementApplied   = "MovementApplied"
	OpMovementRejected  = "MovementRejected"
	OpOrderConfirmed    = "OrderConfirmed"
	OpOrderReceived     = "OrderReceived"
	OpPurchaseConfirmed = "PurchaseConfirmed"
	OpPurchaseReceived  = "PurchaseReceived"
)

// OperationLog is an append-only audit record of warehouse item mutations:
// who did what to which item, with a human-readable detail string.
type OperationLog struct {
	ID        string
	ItemID    string
	Operation string
	Details   string
	CreatedBy string
	CreatedAt time.Time
}
