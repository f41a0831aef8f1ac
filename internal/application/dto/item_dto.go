package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest adds a catalog item. Quantity starts at zero unless an
// initial quantity is given (recorded as a PW movement by the use case).
type CreateItemRequest struct {
	Code         string           `json:"code" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	PurchaseCost decimal.Decimal  `json:"purchase_cost"`
	VATRate      decimal.Decimal  `json:"vat_rate"`
	Category     string           `json:"category"`
	LocationID   string           `json:"location_id"`
	Unit         string           `json:"unit"`
	MinStock     decimal.Decimal  `json:"min_stock"`
	SupplierID   string           `json:"supplier_id"`
	BatchNumber  string           `json:"batch_number"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
	Quantity     *decimal.Decimal `json:"quantity"`
}

// UpdateItemRequest patches an item. Nil fields are left unchanged; quantity
// is deliberately absent (movements only).
type UpdateItemRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	VATRate      *decimal.Decimal `json:"vat_rate"`
	Category     *string          `json:"category"`
	LocationID   *string          `json:"location_id"`
	Unit         *string          `json:"unit"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	SupplierID   *string          `json:"supplier_id"`
	BatchNumber  *string          `json:"batch_number"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
}

// ItemResponse projects a warehouse item.
type ItemResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	Category     string          `json:"category,omitempty"`
	LocationID   string          `json:"location_id,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	MinStock     decimal.Decimal `json:"min_stock"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Deleted      bool            `json:"deleted"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ItemListResponse is the list envelope.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
