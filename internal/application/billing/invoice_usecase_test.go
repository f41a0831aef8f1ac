package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) List(filter repository.ListFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.Deleted == filter.Deleted {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) SetDeleted(id string, deleted bool) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Deleted = deleted
	return nil
}

type fakeContractorRepo struct {
	contractors map[string]*entity.Contractor
}

func (r *fakeContractorRepo) Create(c *entity.Contractor) error { return nil }

func (r *fakeContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	c, ok := r.contractors[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractorRepo) GetByNIP(nip string) (*entity.Contractor, error) { return nil, nil }
func (r *fakeContractorRepo) Update(c *entity.Contractor) error               { return nil }
func (r *fakeContractorRepo) List(filter repository.ListFilter) ([]*entity.Contractor, error) {
	return nil, nil
}
func (r *fakeContractorRepo) SetDeleted(id string, deleted bool) error { return nil }

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	lines  map[string][]*entity.OrderItem
}

func (r *fakeOrderRepo) Create(o *entity.Order, items []*entity.OrderItem) error { return nil }

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	return r.lines[orderID], nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error                       { return nil }
func (r *fakeOrderRepo) List(filter repository.ListFilter) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) SetDeleted(id string, deleted bool) error                   { return nil }
func (r *fakeOrderRepo) AddHistory(h *entity.OrderHistory) error                    { return nil }
func (r *fakeOrderRepo) ListHistory(orderID string) ([]*entity.OrderHistory, error) {
	return nil, nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (r *fakeItemRepo) Create(item *entity.Item) error { return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.Item, error)            { return nil, nil }
func (r *fakeItemRepo) Update(item *entity.Item) error                         { return nil }
func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error)           { return nil, nil }
func (r *fakeItemRepo) UpdateQuantity(id string, q decimal.Decimal) error      { return nil }
func (r *fakeItemRepo) List(f repository.ListFilter) ([]*entity.Item, error)   { return nil, nil }
func (r *fakeItemRepo) SetDeleted(id string, deleted bool) error               { return nil }

type fakeSubmitter struct {
	ref   string
	err   error
	calls int
}

func (s *fakeSubmitter) Submit(ctx context.Context, inv *entity.Invoice, company billing.Company, contractor *entity.Contractor, lines []entity.InvoiceLine) (string, error) {
	s.calls++
	return s.ref, s.err
}

type billingEnv struct {
	uc        *billing.InvoiceUseCase
	invoices  *fakeInvoiceRepo
	submitter *fakeSubmitter
}

func newBillingEnv() *billingEnv {
	invoiceRepo := newFakeInvoiceRepo()
	contractorRepo := &fakeContractorRepo{contractors: map[string]*entity.Contractor{
		"ctr-1": {ID: "ctr-1", Name: "Budimex S.A.", NIP: "5261003187", Type: entity.ContractorTypeClient},
	}}
	orderRepo := &fakeOrderRepo{
		orders: map[string]*entity.Order{
			"ord-1": {ID: "ord-1", Number: "ZS/2025/08/1", Status: entity.OrderStatusConfirmed},
		},
		lines: map[string][]*entity.OrderItem{
			"ord-1": {
				{ItemID: "i-1", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10), VATRate: decimal.NewFromInt(23)},
				{ItemID: "i-2", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(20), VATRate: decimal.NewFromInt(23)},
			},
		},
	}
	itemRepo := &fakeItemRepo{items: map[string]*entity.Item{
		"i-1": {ID: "i-1", Code: "KB-01", Name: "Kabel YDY"},
		"i-2": {ID: "i-2", Code: "GN-02", Name: "Gniazdo podwójne"},
	}}
	submitter := &fakeSubmitter{ref: "KSEF-REF-001"}
	company := billing.Company{Name: "Magazyn Sp. z o.o.", NIP: "1234567890"}
	return &billingEnv{
		uc:        billing.NewInvoiceUseCase(invoiceRepo, contractorRepo, orderRepo, itemRepo, submitter, company),
		invoices:  invoiceRepo,
		submitter: submitter,
	}
}

func TestInvoiceCreate_FromOrderComputesTotals(t *testing.T) {
	env := newBillingEnv()

	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/001",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		OrderID:      "ord-1",
	})
	require.NoError(t, err)

	// 5×10 + 2×20 = 90 net, 20.70 VAT, 110.70 gross
	assert.True(t, resp.NetTotal.Equal(decimal.RequireFromString("90")), "net %s", resp.NetTotal)
	assert.True(t, resp.VATTotal.Equal(decimal.RequireFromString("20.70")), "vat %s", resp.VATTotal)
	assert.True(t, resp.GrossTotal.Equal(decimal.RequireFromString("110.70")), "gross %s", resp.GrossTotal)
	assert.Equal(t, entity.InvoiceStatusIssued, resp.Status)
	assert.Equal(t, "Budimex S.A.", resp.ContractorName, "contractor name snapshotted")
}

func TestInvoiceCreate_FromDirectLines(t *testing.T) {
	env := newBillingEnv()

	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/002",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		Lines: []dto.InvoiceLineRequest{
			{Name: "Usługa montażu", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500), VATRate: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.GrossTotal.Equal(decimal.RequireFromString("540")), "gross %s", resp.GrossTotal)
}

func TestInvoiceCreate_DefaultsDates(t *testing.T) {
	env := newBillingEnv()

	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/003",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		Lines: []dto.InvoiceLineRequest{
			{Name: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), resp.IssueDate, time.Minute)
	assert.Equal(t, resp.IssueDate.AddDate(0, 0, 14), resp.DueDate, "due date defaults to issue + 14 days")
}

func TestInvoiceCreate_Validation(t *testing.T) {
	env := newBillingEnv()

	_, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Type: entity.InvoiceTypeSales, ContractorID: "ctr-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "number required")

	_, err = env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number: "FV/1", Type: "receipt", ContractorID: "ctr-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown type rejected")

	_, err = env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number: "FV/1", Type: entity.InvoiceTypeSales, ContractorID: "ghost",
		Lines: []dto.InvoiceLineRequest{{Name: "X", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown contractor rejected")

	_, err = env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number: "FV/1", Type: entity.InvoiceTypeSales, ContractorID: "ctr-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no lines and no order rejected")
}

func TestTotals_RoundsToGrosze(t *testing.T) {
	net, vat, gross := billing.Totals([]entity.InvoiceLine{
		{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("3.33"), VATRate: decimal.NewFromInt(23)},
	})
	assert.True(t, net.Equal(decimal.RequireFromString("9.99")), "net %s", net)
	assert.True(t, vat.Equal(decimal.RequireFromString("2.30")), "vat %s", vat)
	assert.True(t, gross.Equal(decimal.RequireFromString("12.29")), "gross %s", gross)
}

func TestInvoiceLines_SyntheticLineWhenNoOrder(t *testing.T) {
	env := newBillingEnv()
	inv := &entity.Invoice{
		ID:         "inv-1",
		Number:     "FV/2025/08/004",
		NetTotal:   decimal.NewFromInt(100),
		GrossTotal: decimal.NewFromInt(123),
	}

	lines, err := env.uc.Lines(inv)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, lines[0].VATRate.Equal(decimal.NewFromInt(23)), "rate derived from totals, got %s", lines[0].VATRate)
}

func TestInvoiceSubmit_StoresReferenceAndStatus(t *testing.T) {
	env := newBillingEnv()
	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/005",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		OrderID:      "ord-1",
	})
	require.NoError(t, err)

	sub, err := env.uc.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "KSEF-REF-001", sub.ExternalRef)
	assert.Equal(t, entity.InvoiceStatusSubmitted, sub.Status)
	assert.Equal(t, 1, env.submitter.calls)
}

func TestInvoiceSubmit_Idempotent(t *testing.T) {
	env := newBillingEnv()
	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/006",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		OrderID:      "ord-1",
	})
	require.NoError(t, err)

	_, err = env.uc.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	sub, err := env.uc.Submit(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, "KSEF-REF-001", sub.ExternalRef)
	assert.Equal(t, 1, env.submitter.calls, "second submit must not hit the service")
}

func TestInvoiceSubmit_ServiceErrorLeavesInvoiceUntouched(t *testing.T) {
	env := newBillingEnv()
	env.submitter.ref = ""
	env.submitter.err = domain.ErrServiceUnavailable

	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/007",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		OrderID:      "ord-1",
	})
	require.NoError(t, err)

	_, err = env.uc.Submit(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)

	stored, _ := env.invoices.GetByID(resp.ID)
	assert.Empty(t, stored.ExternalRef)
	assert.Equal(t, entity.InvoiceStatusIssued, stored.Status)
}

func TestInvoiceSoftDelete(t *testing.T) {
	env := newBillingEnv()
	resp, err := env.uc.Create(context.Background(), "u-1", dto.CreateInvoiceRequest{
		Number:       "FV/2025/08/008",
		Type:         entity.InvoiceTypeSales,
		ContractorID: "ctr-1",
		OrderID:      "ord-1",
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.SoftDelete(resp.ID))
	assert.ErrorIs(t, env.uc.SoftDelete(resp.ID), domain.ErrNotFound)

	_, err = env.uc.Submit(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "deleted invoice cannot be submitted")
}
