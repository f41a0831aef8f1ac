package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a warehouse catalog item. Code is unique among non-deleted items.
// Quantity is mutated only by the stock-movement engine and the order/purchase
// workflow, never directly by catalog updates.
type Item struct {
	ID           string
	Code         string
	Name         string
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal // sales price, frozen into order lines
	PurchaseCost decimal.Decimal
	VATRate      decimal.Decimal // percent: 0, 5, 8, 23
	Category     string
	LocationID   string
	Unit         string // szt, kg, m, ...
	MinStock     decimal.Decimal
	SupplierID   string // optional supplying contractor
	BatchNumber  string
	ExpiryDate   *time.Time
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
