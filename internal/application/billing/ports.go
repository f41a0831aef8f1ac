package billing

import (
	"context"

	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
)

// Company is the seller letterhead printed on invoices and embedded in the
// e-invoicing payload. Loaded from configuration.
type Company struct {
	Name    string
	NIP     string
	Address string
	City    string
	ZipCode string
	Email   string
	Phone   string
	Bank    string
	Account string
}

// PDFGenerator renders the invoice document. Totals are recomputed from the
// lines by the renderer, never taken from the stored header.
type PDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, company Company, contractor *entity.Contractor, lines []entity.InvoiceLine) ([]byte, error)
}

// Submitter delivers the invoice to the external e-invoicing service and
// returns the reference id assigned by it.
type Submitter interface {
	Submit(ctx context.Context, inv *entity.Invoice, company Company, contractor *entity.Contractor, lines []entity.InvoiceLine) (string, error)
}
