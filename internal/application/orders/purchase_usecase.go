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

// PurchaseUseCase mirrors the order workflow for the supplier-scoped
// purchase aggregate: Draft → Confirmed → Received with its own history.
type PurchaseUseCase struct {
	txRunner       PurchaseTxRunner
	purchaseRepo   repository.PurchaseRepository
	itemRepo       repository.ItemRepository
	contractorRepo repository.ContractorRepository
}

// NewPurchaseUseCase builds the use case.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
	contractorRepo repository.ContractorRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:       txRunner,
		purchaseRepo:   purchaseRepo,
		itemRepo:       itemRepo,
		contractorRepo: contractorRepo,
	}
}

// Create persists a draft purchase. The contractor must be able to supply
// (type supplier or both); line prices are frozen from the catalog purchase
// cost, falling back to the sales price when no cost is recorded.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.contractorRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.Deleted {
		return nil, domain.ErrNotFound
	}
	if !supplier.IsSupplier() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		Number:     fmt.Sprintf("ZD/%s/%d", now.Format("2006/01"), now.UnixNano()%100000),
		Status:     entity.PurchaseStatusDraft,
		SupplierID: in.SupplierID,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var total decimal.Decimal
	lines := make([]*entity.PurchaseItem, 0, len(in.Items))
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
		price := item.PurchaseCost
		if !price.GreaterThan(decimal.Zero) {
			price = item.UnitPrice
		}
		if !price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := entity.LineTotal(line.Quantity, price, item.VATRate)
		lines = append(lines, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ItemID:     item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  price,
			VATRate:    item.VATRate,
			Total:      lineTotal,
		})
		total = total.Add(lineTotal)
	}
	purchase.Total = total

	if err := uc.purchaseRepo.Create(purchase, lines); err != nil {
		return nil, err
	}
	if err := uc.purchaseRepo.AddHistory(&entity.PurchaseHistory{
		ID:         uuid.New().String(),
		PurchaseID: purchase.ID,
		Action:     entity.HistoryCreated,
		Details:    fmt.Sprintf("%d lines, total %s", len(lines), total),
		CreatedBy:  userID,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, lines), nil
}

// Confirm moves Draft → Confirmed and records pending PZ movements per line;
// stock is untouched until Receive.
func (uc *PurchaseUseCase) Confirm(ctx context.Context, purchaseID, userID string) error {
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil || purchase.Deleted {
		return domain.ErrNotFound
	}
	if purchase.Status != entity.PurchaseStatusDraft {
		return domain.ErrConflict
	}
	supplier, err := uc.contractorRepo.GetByID(purchase.SupplierID)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.Deleted {
		return domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.GetItems(purchaseID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunPurchase(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
		purchases repository.PurchaseRepository,
	) error {
		for _, line := range lines {
			item, err := items.GetByID(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil || item.Deleted {
				return domain.ErrNotFound
			}
			if err := movements.Create(&entity.Movement{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				Type:      entity.MovementPZ,
				Quantity:  line.Quantity,
				Supplier:  supplier.Name,
				Document:  purchase.Number,
				Status:    entity.MovementStatusPending,
				OrderID:   purchase.ID,
				CreatedBy: userID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			if err := logs.Create(&entity.OperationLog{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				Operation: entity.OpPurchaseConfirmed,
				Details:   fmt.Sprintf("purchase %s: PZ %s pending", purchase.Number, line.Quantity),
				CreatedBy: userID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		if err := purchases.UpdateStatus(purchase.ID, entity.PurchaseStatusConfirmed); err != nil {
			return err
		}
		return purchases.AddHistory(&entity.PurchaseHistory{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			Action:     entity.HistoryConfirmed,
			CreatedBy:  userID,
			CreatedAt:  now,
		})
	})
}

// Receive moves Confirmed → Received and applies every line's quantity to
// the catalog, completing the pending movements.
func (uc *PurchaseUseCase) Receive(ctx context.Context, purchaseID, userID string) error {
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil || purchase.Deleted {
		return domain.ErrNotFound
	}
	if purchase.Status != entity.PurchaseStatusConfirmed {
		return domain.ErrConflict
	}
	lines, err := uc.purchaseRepo.GetItems(purchaseID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunPurchase(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
		purchases repository.PurchaseRepository,
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
				Operation: entity.OpPurchaseReceived,
				Details:   fmt.Sprintf("purchase %s: +%s, quantity %s -> %s", purchase.Number, line.Quantity, item.Quantity, next),
				CreatedBy: userID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		if err := movements.MarkCompletedByOrder(purchase.ID); err != nil {
			return err
		}
		if err := purchases.UpdateStatus(purchase.ID, entity.PurchaseStatusReceived); err != nil {
			return err
		}
		return purchases.AddHistory(&entity.PurchaseHistory{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			Action:     entity.HistoryReceived,
			CreatedBy:  userID,
			CreatedAt:  now,
		})
	})
}

// UpdateStatus forces the status to an allow-listed value without checking
// the transition; "received" must go through Receive.
func (uc *PurchaseUseCase) UpdateStatus(ctx context.Context, purchaseID, userID string, in dto.UpdatePurchaseStatusRequest) error {
	if !entity.PurchaseStatusAllowed[in.Status] {
		return domain.ErrInvalidInput
	}
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil || purchase.Deleted {
		return domain.ErrNotFound
	}
	if err := uc.purchaseRepo.UpdateStatus(purchaseID, in.Status); err != nil {
		return err
	}
	return uc.purchaseRepo.AddHistory(&entity.PurchaseHistory{
		ID:         uuid.New().String(),
		PurchaseID: purchaseID,
		Action:     entity.HistoryStatusUpdated,
		Details:    fmt.Sprintf("%s -> %s", purchase.Status, in.Status),
		CreatedBy:  userID,
		CreatedAt:  time.Now(),
	})
}

// GetByID returns the purchase with its lines.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, lines), nil
}

// List returns purchases matching the filter.
func (uc *PurchaseUseCase) List(filter repository.ListFilter) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p, nil))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// SoftDelete marks the purchase deleted.
func (uc *PurchaseUseCase) SoftDelete(id, userID string) error {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil || purchase.Deleted {
		return domain.ErrNotFound
	}
	return uc.purchaseRepo.SetDeleted(id, true)
}

// History returns the append-only audit trail of the purchase.
func (uc *PurchaseUseCase) History(purchaseID string) ([]dto.OrderHistoryResponse, error) {
	entries, err := uc.purchaseRepo.ListHistory(purchaseID)
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

func toPurchaseResponse(p *entity.Purchase, lines []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:         p.ID,
		Number:     p.Number,
		Status:     p.Status,
		SupplierID: p.SupplierID,
		Total:      p.Total,
		Notes:      p.Notes,
		Deleted:    p.Deleted,
		CreatedBy:  p.CreatedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
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
