package orders_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// In-memory repositories for the order workflow tests. The fake tx runner
// snapshots item quantities and appended rows so a failing fn leaves no trace,
// mirroring a rolled-back transaction.

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.Item{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.Code == code && !it.Deleted {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) List(filter repository.ListFilter) ([]*entity.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) SetDeleted(id string, deleted bool) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Deleted = deleted
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }

func (r *fakeMovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) { return nil, nil }

func (r *fakeMovementRepo) List(filter repository.ListFilter) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) MarkCompletedByOrder(orderID string) error {
	for _, m := range r.movements {
		if m.OrderID == orderID && m.Status == entity.MovementStatusPending {
			m.Status = entity.MovementStatusCompleted
		}
	}
	return nil
}

type fakeLogRepo struct {
	logs []*entity.OperationLog
}

func (r *fakeLogRepo) Create(l *entity.OperationLog) error {
	cp := *l
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *fakeLogRepo) ListByItem(itemID string) ([]*entity.OperationLog, error) { return nil, nil }

type fakeContractorRepo struct {
	contractors map[string]*entity.Contractor
}

func newFakeContractorRepo(list ...*entity.Contractor) *fakeContractorRepo {
	r := &fakeContractorRepo{contractors: map[string]*entity.Contractor{}}
	for _, c := range list {
		r.contractors[c.ID] = c
	}
	return r
}

func (r *fakeContractorRepo) Create(c *entity.Contractor) error {
	cp := *c
	r.contractors[c.ID] = &cp
	return nil
}

func (r *fakeContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	c, ok := r.contractors[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractorRepo) GetByNIP(nip string) (*entity.Contractor, error) { return nil, nil }

func (r *fakeContractorRepo) Update(c *entity.Contractor) error { return nil }

func (r *fakeContractorRepo) List(filter repository.ListFilter) ([]*entity.Contractor, error) {
	return nil, nil
}

func (r *fakeContractorRepo) SetDeleted(id string, deleted bool) error { return nil }

type fakeOrderRepo struct {
	orders  map[string]*entity.Order
	lines   map[string][]*entity.OrderItem
	history []*entity.OrderHistory
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*entity.Order{},
		lines:  map[string][]*entity.OrderItem{},
	}
}

func (r *fakeOrderRepo) Create(o *entity.Order, items []*entity.OrderItem) error {
	cp := *o
	r.orders[o.ID] = &cp
	for _, l := range items {
		lc := *l
		r.lines[o.ID] = append(r.lines[o.ID], &lc)
	}
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, l := range r.lines[orderID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) List(filter repository.ListFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) SetDeleted(id string, deleted bool) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Deleted = deleted
	return nil
}

func (r *fakeOrderRepo) AddHistory(h *entity.OrderHistory) error {
	cp := *h
	r.history = append(r.history, &cp)
	return nil
}

func (r *fakeOrderRepo) ListHistory(orderID string) ([]*entity.OrderHistory, error) {
	var out []*entity.OrderHistory
	for _, h := range r.history {
		if h.OrderID == orderID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	lines     map[string][]*entity.PurchaseItem
	history   []*entity.PurchaseHistory
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: map[string]*entity.Purchase{},
		lines:     map[string][]*entity.PurchaseItem{},
	}
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase, items []*entity.PurchaseItem) error {
	cp := *p
	r.purchases[p.ID] = &cp
	for _, l := range items {
		lc := *l
		r.lines[p.ID] = append(r.lines[p.ID], &lc)
	}
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, l := range r.lines[purchaseID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePurchaseRepo) UpdateStatus(id, status string) error {
	p, ok := r.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *fakePurchaseRepo) List(filter repository.ListFilter) ([]*entity.Purchase, error) {
	return nil, nil
}

func (r *fakePurchaseRepo) SetDeleted(id string, deleted bool) error {
	p, ok := r.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Deleted = deleted
	return nil
}

func (r *fakePurchaseRepo) AddHistory(h *entity.PurchaseHistory) error {
	cp := *h
	r.history = append(r.history, &cp)
	return nil
}

func (r *fakePurchaseRepo) ListHistory(purchaseID string) ([]*entity.PurchaseHistory, error) {
	var out []*entity.PurchaseHistory
	for _, h := range r.history {
		if h.PurchaseID == purchaseID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	items     *fakeItemRepo
	movements *fakeMovementRepo
	logs      *fakeLogRepo
	orders    *fakeOrderRepo
	purchases *fakePurchaseRepo
}

func (tx *fakeTxRunner) rollbackPoint() (map[string]decimal.Decimal, int, int) {
	snapshot := map[string]decimal.Decimal{}
	for id, it := range tx.items.items {
		snapshot[id] = it.Quantity
	}
	return snapshot, len(tx.movements.movements), len(tx.logs.logs)
}

func (tx *fakeTxRunner) rollback(snapshot map[string]decimal.Decimal, movLen, logLen int) {
	for id, q := range snapshot {
		tx.items.items[id].Quantity = q
	}
	tx.movements.movements = tx.movements.movements[:movLen]
	tx.logs.logs = tx.logs.logs[:logLen]
}

func (tx *fakeTxRunner) RunOrder(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	logs repository.OperationLogRepository,
	ordersRepo repository.OrderRepository,
) error) error {
	snapshot, movLen, logLen := tx.rollbackPoint()
	if err := fn(tx.items, tx.movements, tx.logs, tx.orders); err != nil {
		tx.rollback(snapshot, movLen, logLen)
		return err
	}
	return nil
}

func (tx *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	logs repository.OperationLogRepository,
	purchases repository.PurchaseRepository,
) error) error {
	snapshot, movLen, logLen := tx.rollbackPoint()
	if err := fn(tx.items, tx.movements, tx.logs, tx.purchases); err != nil {
		tx.rollback(snapshot, movLen, logLen)
		return err
	}
	return nil
}
