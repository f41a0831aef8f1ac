package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested line. Prices come from the catalog, not
// from the caller.
type OrderLineRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest creates a draft order.
type CreateOrderRequest struct {
	Type         string             `json:"type" validate:"required"` // sale, purchase
	ContractorID string             `json:"contractor_id" validate:"required"`
	Notes        string             `json:"notes"`
	Items        []OrderLineRequest `json:"items" validate:"required,min=1"`
}

// UpdateOrderStatusRequest forces the status to an allow-listed value.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse projects one order line.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	Total     decimal.Decimal `json:"total"`
}

// OrderResponse projects an order with its lines.
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Type         string              `json:"type"`
	Status       string              `json:"status"`
	ContractorID string              `json:"contractor_id"`
	Total        decimal.Decimal     `json:"total"`
	Notes        string              `json:"notes,omitempty"`
	Deleted      bool                `json:"deleted"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	CreatedBy    string              `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// OrderListResponse is the list envelope.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderHistoryResponse projects one history entry.
type OrderHistoryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
