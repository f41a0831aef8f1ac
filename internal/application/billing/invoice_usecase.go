package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// InvoiceUseCase issues invoices from orders or direct lines, reads them
// back and handles the external submission workflow.
type InvoiceUseCase struct {
	invoiceRepo    repository.InvoiceRepository
	contractorRepo repository.ContractorRepository
	orderRepo      repository.OrderRepository
	itemRepo       repository.ItemRepository
	submitter      Submitter
	company        Company
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	contractorRepo repository.ContractorRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	submitter Submitter,
	company Company,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:    invoiceRepo,
		contractorRepo: contractorRepo,
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		submitter:      submitter,
		company:        company,
	}
}

var invoiceTypes = map[string]bool{
	entity.InvoiceTypeSales:      true,
	entity.InvoiceTypePurchase:   true,
	entity.InvoiceTypeCorrective: true,
	entity.InvoiceTypeProforma:   true,
	entity.InvoiceTypeAdvance:    true,
	entity.InvoiceTypeFinal:      true,
}

// Create issues an invoice. Totals are computed from the lines (order lines
// when OrderID is set, request lines otherwise); the contractor name is
// snapshotted into the header.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Number == "" || in.ContractorID == "" || !invoiceTypes[in.Type] {
		return nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractorRepo.GetByID(in.ContractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil || contractor.Deleted {
		return nil, domain.ErrNotFound
	}
	if in.RelatedID != "" {
		related, err := uc.invoiceRepo.GetByID(in.RelatedID)
		if err != nil {
			return nil, err
		}
		if related == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	issue := in.IssueDate
	if issue.IsZero() {
		issue = now
	}
	due := in.DueDate
	if due.IsZero() {
		due = issue.AddDate(0, 0, 14)
	}

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		Number:         in.Number,
		Type:           in.Type,
		Status:         entity.InvoiceStatusIssued,
		ContractorID:   contractor.ID,
		ContractorName: contractor.Name,
		OrderID:        in.OrderID,
		IssueDate:      issue,
		DueDate:        due,
		RelatedID:      in.RelatedID,
		AdvanceAmount:  in.AdvanceAmount,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var lines []entity.InvoiceLine
	if in.OrderID != "" {
		order, err := uc.orderRepo.GetByID(in.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil || order.Deleted {
			return nil, domain.ErrNotFound
		}
		lines, err = uc.orderLines(in.OrderID)
		if err != nil {
			return nil, err
		}
	} else {
		for _, l := range in.Lines {
			if l.Name == "" || !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			lines = append(lines, entity.InvoiceLine{
				Name:      l.Name,
				Code:      l.Code,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				VATRate:   l.VATRate,
			})
		}
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	inv.NetTotal, inv.VATTotal, inv.GrossTotal = Totals(lines)

	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Totals recomputes net/VAT/gross from the lines. Used at creation and again
// at render time so stored-header drift never reaches the document.
func Totals(lines []entity.InvoiceLine) (net, vat, gross decimal.Decimal) {
	for _, l := range lines {
		net = net.Add(l.Net())
		vat = vat.Add(l.VAT())
		gross = gross.Add(l.Gross())
	}
	return net.Round(2), vat.Round(2), gross.Round(2)
}

// Lines resolves the renderable lines of an invoice: order lines joined with
// catalog names, or a single synthetic line when there is nothing to derive
// them from.
func (uc *InvoiceUseCase) Lines(inv *entity.Invoice) ([]entity.InvoiceLine, error) {
	if inv.OrderID != "" {
		lines, err := uc.orderLines(inv.OrderID)
		if err != nil {
			return nil, err
		}
		if len(lines) > 0 {
			return lines, nil
		}
	}
	// Synthetic single line keeps the document renderable for invoices
	// issued without order items.
	gross := inv.GrossTotal
	net := inv.NetTotal
	rate := decimal.Zero
	if net.GreaterThan(decimal.Zero) {
		rate = gross.Sub(net).Div(net).Mul(decimal.NewFromInt(100)).Round(0)
	}
	return []entity.InvoiceLine{{
		Name:      "Invoice " + inv.Number,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: net,
		VATRate:   rate,
	}}, nil
}

func (uc *InvoiceUseCase) orderLines(orderID string) ([]entity.InvoiceLine, error) {
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.InvoiceLine, 0, len(items))
	for _, oi := range items {
		name, code := oi.ItemID, ""
		if item, err := uc.itemRepo.GetByID(oi.ItemID); err == nil && item != nil {
			name, code = item.Name, item.Code
		}
		lines = append(lines, entity.InvoiceLine{
			Name:      name,
			Code:      code,
			Quantity:  oi.Quantity,
			UnitPrice: oi.UnitPrice,
			VATRate:   oi.VATRate,
		})
	}
	return lines, nil
}

// Submit delivers the invoice to the external e-invoicing service and stores
// the returned reference. Safe to retry; an already-submitted invoice keeps
// its reference.
func (uc *InvoiceUseCase) Submit(ctx context.Context, id string) (*dto.SubmitInvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Deleted {
		return nil, domain.ErrNotFound
	}
	if inv.ExternalRef != "" {
		return &dto.SubmitInvoiceResponse{ID: inv.ID, ExternalRef: inv.ExternalRef, Status: inv.Status}, nil
	}
	contractor, err := uc.contractorRepo.GetByID(inv.ContractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.Lines(inv)
	if err != nil {
		return nil, err
	}
	ref, err := uc.submitter.Submit(ctx, inv, uc.company, contractor, lines)
	if err != nil {
		return nil, err
	}
	inv.ExternalRef = ref
	inv.Status = entity.InvoiceStatusSubmitted
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return &dto.SubmitInvoiceResponse{ID: inv.ID, ExternalRef: ref, Status: inv.Status}, nil
}

// GetByID returns one invoice header.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// Entity returns the raw invoice for the rendering path.
func (uc *InvoiceUseCase) Entity(id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Deleted {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// Contractor returns the invoice's contractor for the rendering path.
func (uc *InvoiceUseCase) Contractor(id string) (*entity.Contractor, error) {
	c, err := uc.contractorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List returns invoices matching the filter.
func (uc *InvoiceUseCase) List(filter repository.ListFilter) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// SoftDelete marks the invoice deleted.
func (uc *InvoiceUseCase) SoftDelete(id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil || inv.Deleted {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.SetDeleted(id, true)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		Type:           inv.Type,
		Status:         inv.Status,
		ContractorID:   inv.ContractorID,
		ContractorName: inv.ContractorName,
		OrderID:        inv.OrderID,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		NetTotal:       inv.NetTotal,
		VATTotal:       inv.VATTotal,
		GrossTotal:     inv.GrossTotal,
		RelatedID:      inv.RelatedID,
		AdvanceAmount:  inv.AdvanceAmount,
		ExternalRef:    inv.ExternalRef,
		Deleted:        inv.Deleted,
		CreatedBy:      inv.CreatedBy,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}
