package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice types.
const (
	InvoiceTypeSales      = "sales"
	InvoiceTypePurchase   = "purchase"
	InvoiceTypeCorrective = "corrective"
	InvoiceTypeProforma   = "proforma"
	InvoiceTypeAdvance    = "advance"
	InvoiceTypeFinal      = "final"
)

// Invoice statuses.
const (
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusSubmitted = "submitted" // accepted by the e-invoicing service
)

// Invoice header. Number is caller-supplied; uniqueness is a business
// convention, not enforced here. ContractorName is a snapshot taken at issue
// time so later contractor edits do not rewrite history.
type Invoice struct {
	ID             string
	Number         string
	Type           string
	Status         string
	ContractorID   string
	ContractorName string
	OrderID        string // optional source order
	IssueDate      time.Time
	DueDate        time.Time
	NetTotal       decimal.Decimal
	VATTotal       decimal.Decimal
	GrossTotal     decimal.Decimal
	RelatedID      string          // corrective/final → original invoice
	AdvanceAmount  decimal.Decimal // advance invoices
	FilePath       string          // rendered PDF, empty until first render
	ExternalRef    string          // reference id returned by the e-invoicing service
	Deleted        bool
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvoiceLine is a denormalized line used for rendering and submission,
// derived from the source order items or supplied directly.
type InvoiceLine struct {
	Name      string
	Code      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	VATRate   decimal.Decimal
}

// Net returns quantity × unit price.
func (l InvoiceLine) Net() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// VAT returns the VAT amount of the line.
func (l InvoiceLine) VAT() decimal.Decimal {
	return l.Net().Mul(l.VATRate.Div(decimal.NewFromInt(100)))
}

// Gross returns net + VAT.
func (l InvoiceLine) Gross() decimal.Decimal {
	return l.Net().Add(l.VAT())
}
