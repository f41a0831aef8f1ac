package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// OrderUseCase drives the order state machine: Draft → Confirmed →
// (purchase-type) Received, plus the free-form status update escape hatch.
// Every transition appends a history entry.
type OrderUseCase struct {
	txRunner       OrderTxRunner
	orderRepo      repository.OrderRepository
	itemRepo       repository.ItemRepository
	contractorRepo repository.ContractorRepository
}

// NewOrderUseCase builds the use case.
func NewOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	contractorRepo repository.ContractorRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:       txRunner,
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		contractorRepo: contractorRepo,
	}
}

// Create validates the lines against the catalog, freezes unit price and VAT
// from the catalog (never from the caller), computes the total and persists
// the draft with an initial "Created" history entry.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Type != entity.OrderTypeSale && in.Type != entity.OrderTypePurchase {
		return nil, domain.ErrInvalidInput
	}
	if in.ContractorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractorRepo.GetByID(in.ContractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil || contractor.Deleted {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		Number:       orderNumber(in.Type, now),
		Type:         in.Type,
		Status:       entity.OrderStatusDraft,
		ContractorID: in.ContractorID,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var total decimal.Decimal
	lines := make([]*entity.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.Deleted {
			return nil, domain.ErrNotFound
		}
		if !item.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := entity.LineTotal(line.Quantity, item.UnitPrice, item.VATRate)
		lines = append(lines, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.UnitPrice,
			VATRate:   item.VATRate,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}
	order.Total = total

	if err := uc.orderRepo.Create(order, lines); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.AddHistory(&entity.OrderHistory{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Action:    entity.HistoryCreated,
		Details:   fmt.Sprintf("%d lines, total %s", len(lines), total),
		CreatedBy: userID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return toOrderResponse(order, lines), nil
}

// Confirm moves Draft → Confirmed. Sale orders re-validate stock for every
// line (all-or-nothing), then decrement on hand and record a WZ movement per
// line; purchase orders record pending PZ movements without touching stock.
func (uc *OrderUseCase) Confirm(ctx context.Context, orderID, userID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Deleted {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft {
		return domain.ErrConflict
	}
	contractor, err := uc.contractorRepo.GetByID(order.ContractorID)
	if err != nil {
		return err
	}
	if contractor == nil || contractor.Deleted {
		return domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunOrder(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
		ordersRepo repository.OrderRepository,
	) error {
		// Validation pass first: every catalog item must exist, and a sale
		// must be coverable in full before any line mutates.
		locked := make([]*entity.Item, len(lines))
		for i, line := range lines {
			item, err := items.GetForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil || item.Deleted {
				return domain.ErrNotFound
			}
			if order.Type == entity.OrderTypeSale && item.Quantity.LessThan(line.Quantity) {
				return domain.ErrInsufficientStock
			}
			locked[i] = item
		}

		for i, line := range lines {
			item := locked[i]
			if order.Type == entity.OrderTypeSale {
				next := item.Quantity.Sub(line.Quantity)
				if err := items.UpdateQuantity(item.ID, next); err != nil {
					return err
				}
				if err := movements.Create(&entity.Movement{
					ID:        uuid.New().String(),
					ItemID:    item.ID,
					Type:      entity.MovementWZ,
					Quantity:  line.Quantity,
					Document:  order.Number,
					Status:    entity.MovementStatusCompleted,
					OrderID:   order.ID,
					CreatedBy: userID,
					CreatedAt: now,
				}); err != nil {
					return err
				}
				if err := logs.Create(&entity.OperationLog{
					ID:        uuid.New().String(),
					ItemID:    item.ID,
					Operation: entity.OpOrderConfirmed,
					Details:   fmt.Sprintf("order %s: WZ %s, quantity %s -> %s", order.Number, line.Quantity, item.Quantity, next),
					CreatedBy: userID,
					CreatedAt: now,
				}); err != nil {
					return err
				}
			} else {
				// Purchase-type: announce the inbound, applied on Receive.
				if err := movements.Create(&entity.Movement{
					ID:        uuid.New().String(),
					ItemID:    item.ID,
					Type:      entity.MovementPZ,
					Quantity:  line.Quantity,
					Document:  order.Number,
					Status:    entity.MovementStatusPending,
					OrderID:   order.ID,
					CreatedBy: userID,
					CreatedAt: now,
				}); err != nil {
					return err
				}
			}
		}

		if err := ordersRepo.UpdateStatus(order.ID, entity.OrderStatusConfirmed); err != nil {
			return err
		}
		return ordersRepo.AddHistory(&entity.OrderHistory{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Action:    entity.HistoryConfirmed,
			CreatedBy: userID,
			CreatedAt: now,
		})
	})
}

// Receive moves Confirmed → Received for purchase-type orders: every line's
// on-hand quantity grows by the ordered quantity and the pending movements
// flip to completed.
func (uc *OrderUseCase) Receive(ctx context.Context, orderID, userID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Deleted {
		return domain.ErrNotFound
	}
	if order.Type != entity.OrderTypePurchase {
		return domain.ErrConflict
	}
	if order.Status != entity.OrderStatusConfirmed {
		return domain.ErrConflict
	}
	lines, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunOrder(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
		ordersRepo repository.OrderRepository,
	) error {
		for _, line := range lines {
			item, err := items.GetForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			next := item.Quantity.Add(line.Quantity)
			if err := items.UpdateQuantity(item.ID, next); err != nil {
				return err
			}
			if err := logs.Create(&entity.OperationLog{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				Operation: entity.OpOrderReceived,
				Details:   fmt.Sprintf("order %s: PZ %s, quantity %s -> %s", order.Number, line.Quantity, item.Quantity, next),
				CreatedBy: userID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		if err := movements.MarkCompletedByOrder(order.ID); err != nil {
			return err
		}
		if err := ordersRepo.UpdateStatus(order.ID, entity.OrderStatusReceived); err != nil {
			return err
		}
		return ordersRepo.AddHistory(&entity.OrderHistory{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Action:    entity.HistoryReceived,
			CreatedBy: userID,
			CreatedAt: now,
		})
	})
}

// UpdateStatus forces the status to any allow-listed value, bypassing the
// structured transitions. Deliberately no state-machine validation here.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID, userID string, in dto.UpdateOrderStatusRequest) error {
	if !entity.OrderStatusAllowed[in.Status] {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Deleted {
		return domain.ErrNotFound
	}
	if err := uc.orderRepo.UpdateStatus(orderID, in.Status); err != nil {
		return err
	}
	return uc.orderRepo.AddHistory(&entity.OrderHistory{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Action:    entity.HistoryStatusUpdated,
		Details:   fmt.Sprintf("%s -> %s", order.Status, in.Status),
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})
}

// GetByID returns the order with its lines.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, lines), nil
}

// List returns orders matching the filter.
func (uc *OrderUseCase) List(filter repository.ListFilter) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// SoftDelete marks the order deleted; history and lines stay in place.
func (uc *OrderUseCase) SoftDelete(id, userID string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil || order.Deleted {
		return domain.ErrNotFound
	}
	return uc.orderRepo.SetDeleted(id, true)
}

// History returns the append-only audit trail of the order.
func (uc *OrderUseCase) History(orderID string) ([]dto.OrderHistoryResponse, error) {
	entries, err := uc.orderRepo.ListHistory(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderHistoryResponse, 0, len(entries))
	for _, h := range entries {
		out = append(out, dto.OrderHistoryResponse{
			ID:        h.ID,
			Action:    h.Action,
			Details:   h.Details,
			CreatedBy: h.CreatedBy,
			CreatedAt: h.CreatedAt,
		})
	}
	return out, nil
}

func orderNumber(orderType string, now time.Time) string {
	prefix := "ZS"
	if orderType == entity.OrderTypePurchase {
		prefix = "ZZ"
	}
	return fmt.Sprintf("%s/%s/%d", prefix, now.Format("2006/01"), now.UnixNano()%100000)
}

func toOrderResponse(o *entity.Order, lines []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Type:         o.Type,
		Status:       o.Status,
		ContractorID: o.ContractorID,
		Total:        o.Total,
		Notes:        o.Notes,
		Deleted:      o.Deleted,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			VATRate:   l.VATRate,
			Total:     l.Total,
		})
	}
	return resp
}
