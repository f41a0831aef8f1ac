package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest creates a draft purchase from a supplier.
type CreatePurchaseRequest struct {
	SupplierID string             `json:"supplier_id" validate:"required"`
	Notes      string             `json:"notes"`
	Items      []OrderLineRequest `json:"items" validate:"required,min=1"`
}

// UpdatePurchaseStatusRequest forces the status to an allow-listed value.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PurchaseItemResponse projects one purchase line.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseResponse projects a purchase with its lines.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	Number     string                 `json:"number"`
	Status     string                 `json:"status"`
	SupplierID string                 `json:"supplier_id"`
	Total      decimal.Decimal        `json:"total"`
	Notes      string                 `json:"notes,omitempty"`
	Deleted    bool                   `json:"deleted"`
	Items      []PurchaseItemResponse `json:"items,omitempty"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// PurchaseListResponse is the list envelope.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
