package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest applies a stock movement to one item.
type RegisterMovementRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	Type        string          `json:"type" validate:"required"` // PZ PW WZ RW MM ZW ZK INW
	Quantity    decimal.Decimal `json:"quantity"`
	Supplier    string          `json:"supplier"`
	Document    string          `json:"document"`
	Description string          `json:"description"`
	Comment     string          `json:"comment"`
}

// MovementResponse projects one movement audit row.
type MovementResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Supplier    string          `json:"supplier,omitempty"`
	Document    string          `json:"document,omitempty"`
	Description string          `json:"description,omitempty"`
	Comment     string          `json:"comment,omitempty"`
	Status      string          `json:"status"`
	OrderID     string          `json:"order_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse is the list envelope.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AttachmentResponse projects file metadata linked to a movement.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	MovementID string    `json:"movement_id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// OperationLogResponse projects one audit log row.
type OperationLogResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Operation string    `json:"operation"`
	Details   string    `json:"details"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
