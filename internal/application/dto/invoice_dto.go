package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one directly-supplied invoice line, used when the
// invoice is not linked to an order.
type InvoiceLineRequest struct {
	Name      string          `json:"name" validate:"required"`
	Code      string          `json:"code"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
}

// CreateInvoiceRequest issues an invoice. Number is caller-supplied; lines
// come from the linked order when OrderID is set, otherwise from Lines.
type CreateInvoiceRequest struct {
	Number        string               `json:"number" validate:"required"`
	Type          string               `json:"type" validate:"required"`
	ContractorID  string               `json:"contractor_id" validate:"required"`
	OrderID       string               `json:"order_id"`
	IssueDate     time.Time            `json:"issue_date"`
	DueDate       time.Time            `json:"due_date"`
	RelatedID     string               `json:"related_id"`
	AdvanceAmount decimal.Decimal      `json:"advance_amount"`
	Lines         []InvoiceLineRequest `json:"lines"`
}

// InvoiceResponse projects an invoice header.
type InvoiceResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	ContractorID   string          `json:"contractor_id"`
	ContractorName string          `json:"contractor_name"`
	OrderID        string          `json:"order_id,omitempty"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        time.Time       `json:"due_date"`
	NetTotal       decimal.Decimal `json:"net_total"`
	VATTotal       decimal.Decimal `json:"vat_total"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	RelatedID      string          `json:"related_id,omitempty"`
	AdvanceAmount  decimal.Decimal `json:"advance_amount"`
	ExternalRef    string          `json:"external_ref,omitempty"`
	Deleted        bool            `json:"deleted"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InvoiceListResponse is the list envelope.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SubmitInvoiceResponse reports the external submission outcome.
type SubmitInvoiceResponse struct {
	ID          string `json:"id"`
	ExternalRef string `json:"external_ref"`
	Status      string `json:"status"`
}
