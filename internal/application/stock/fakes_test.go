package stock_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// In-memory repositories backing the stock engine tests. The fake tx runner
// passes them straight through; commit/rollback semantics are emulated by
// snapshotting item quantities and restoring them when fn fails.

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
	if _, ok := r.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
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
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
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
	var out []*entity.Item
	for _, it := range r.items {
		if it.Deleted == filter.Deleted {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
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

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(filter repository.ListFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
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

func (r *fakeLogRepo) ListByItem(itemID string) ([]*entity.OperationLog, error) {
	var out []*entity.OperationLog
	for _, l := range r.logs {
		if l.ItemID == itemID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAttachmentRepo struct {
	attachments []*entity.Attachment
}

func (r *fakeAttachmentRepo) Create(a *entity.Attachment) error {
	cp := *a
	r.attachments = append(r.attachments, &cp)
	return nil
}

func (r *fakeAttachmentRepo) ListByMovement(movementID string) ([]*entity.Attachment, error) {
	var out []*entity.Attachment
	for _, a := range r.attachments {
		if a.MovementID == movementID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	items     *fakeItemRepo
	movements *fakeMovementRepo
	logs      *fakeLogRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	logs repository.OperationLogRepository,
) error) error {
	snapshot := map[string]decimal.Decimal{}
	for id, it := range tx.items.items {
		snapshot[id] = it.Quantity
	}
	movLen, logLen := len(tx.movements.movements), len(tx.logs.logs)

	if err := fn(tx.items, tx.movements, tx.logs); err != nil {
		for id, q := range snapshot {
			tx.items.items[id].Quantity = q
		}
		tx.movements.movements = tx.movements.movements[:movLen]
		tx.logs.logs = tx.logs.logs[:logLen]
		return err
	}
	return nil
}
