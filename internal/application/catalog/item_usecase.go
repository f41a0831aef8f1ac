package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/application/stock"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// ItemUseCase covers the item catalog: CRUD with soft delete, uniqueness of
// the item code among non-deleted rows, and a change-diff audit trail.
// Quantity is out of its reach; only the stock engine mutates it.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	logRepo  repository.OperationLogRepository
	stock    MovementApplier
	cache    Cache
}

// NewItemUseCase builds the use case.
func NewItemUseCase(itemRepo repository.ItemRepository, logRepo repository.OperationLogRepository, applier MovementApplier, cache Cache) *ItemUseCase {
	if cache == nil {
		cache = NopCache()
	}
	return &ItemUseCase{itemRepo: itemRepo, logRepo: logRepo, stock: applier, cache: cache}
}

// Create adds a catalog item. An initial quantity is not written directly;
// it goes through the stock engine as an internal receipt so the movement
// history starts consistent.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.PurchaseCost.IsNegative() || in.VATRate.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		Quantity:     decimal.Zero,
		UnitPrice:    in.UnitPrice,
		PurchaseCost: in.PurchaseCost,
		VATRate:      in.VATRate,
		Category:     in.Category,
		LocationID:   in.LocationID,
		Unit:         in.Unit,
		MinStock:     in.MinStock,
		SupplierID:   in.SupplierID,
		BatchNumber:  in.BatchNumber,
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	_ = uc.logRepo.Create(&entity.OperationLog{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Operation: entity.OpItemCreated,
		Details:   fmt.Sprintf("code %s, name %q", item.Code, item.Name),
		CreatedBy: userID,
		CreatedAt: now,
	})

	if in.Quantity != nil && in.Quantity.GreaterThan(decimal.Zero) {
		if _, err := uc.stock.Apply(ctx, stock.MovementInput{
			ItemID:      item.ID,
			Type:        entity.MovementPW,
			Quantity:    *in.Quantity,
			Description: "initial stock",
			UserID:      userID,
		}); err != nil {
			return nil, err
		}
		item.Quantity = *in.Quantity
	}

	uc.cache.Purge()
	return toItemResponse(item), nil
}

// Update patches the given fields and records a field-by-field diff in the
// audit log. Quantity cannot be patched here.
func (uc *ItemUseCase) Update(userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Deleted {
		return nil, domain.ErrNotFound
	}

	var changes []string
	patchStr := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			changes = append(changes, fmt.Sprintf("%s: %q -> %q", field, *dst, *src))
			*dst = *src
		}
	}
	patchDec := func(field string, dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil && !src.Equal(*dst) {
			if src.IsNegative() {
				return
			}
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", field, *dst, *src))
			*dst = *src
		}
	}

	patchStr("name", &item.Name, in.Name)
	patchStr("description", &item.Description, in.Description)
	patchDec("unit_price", &item.UnitPrice, in.UnitPrice)
	patchDec("purchase_cost", &item.PurchaseCost, in.PurchaseCost)
	patchDec("vat_rate", &item.VATRate, in.VATRate)
	patchStr("category", &item.Category, in.Category)
	patchStr("location_id", &item.LocationID, in.LocationID)
	patchStr("unit", &item.Unit, in.Unit)
	patchDec("min_stock", &item.MinStock, in.MinStock)
	patchStr("supplier_id", &item.SupplierID, in.SupplierID)
	patchStr("batch_number", &item.BatchNumber, in.BatchNumber)
	if in.ExpiryDate != nil {
		changes = append(changes, fmt.Sprintf("expiry_date: %s", in.ExpiryDate.Format("2006-01-02")))
		item.ExpiryDate = in.ExpiryDate
	}

	if len(changes) == 0 {
		return toItemResponse(item), nil
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	_ = uc.logRepo.Create(&entity.OperationLog{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Operation: entity.OpItemUpdated,
		Details:   strings.Join(changes, "; "),
		CreatedBy: userID,
		CreatedAt: item.UpdatedAt,
	})
	uc.cache.Purge()
	return toItemResponse(item), nil
}

// GetByID returns a single item, served from the read cache when warm.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	key := "item:" + id
	if v, ok := uc.cache.Get(key); ok {
		if resp, ok := v.(*dto.ItemResponse); ok {
			return resp, nil
		}
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := toItemResponse(item)
	uc.cache.Set(key, resp)
	return resp, nil
}

// List returns non-deleted items matching the filter.
func (uc *ItemUseCase) List(filter repository.ListFilter) (*dto.ItemListResponse, error) {
	filter.Deleted = false
	return uc.list(filter)
}

// ListDeleted returns soft-deleted items, the restore candidates.
func (uc *ItemUseCase) ListDeleted(filter repository.ListFilter) (*dto.ItemListResponse, error) {
	filter.Deleted = true
	return uc.list(filter)
}

func (uc *ItemUseCase) list(filter repository.ListFilter) (*dto.ItemListResponse, error) {
	key := listCacheKey("items", filter)
	if v, ok := uc.cache.Get(key); ok {
		if resp, ok := v.(*dto.ItemListResponse); ok {
			return resp, nil
		}
	}
	items, err := uc.itemRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	resp := &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	uc.cache.Set(key, resp)
	return resp, nil
}

// SoftDelete marks the item deleted. Stock history stays; the code becomes
// reusable by new items.
func (uc *ItemUseCase) SoftDelete(userID, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil || item.Deleted {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.SetDeleted(id, true); err != nil {
		return err
	}
	_ = uc.logRepo.Create(&entity.OperationLog{
		ID:        uuid.New().String(),
		ItemID:    id,
		Operation: entity.OpItemDeleted,
		Details:   fmt.Sprintf("code %s", item.Code),
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})
	uc.cache.Purge()
	return nil
}

// Restore brings back a soft-deleted item unless its code was taken by
// another active item in the meantime.
func (uc *ItemUseCase) Restore(userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Deleted {
		return nil, domain.ErrNotFound
	}
	active, err := uc.itemRepo.GetByCode(item.Code)
	if err != nil {
		return nil, err
	}
	if active != nil && active.ID != item.ID {
		return nil, domain.ErrDuplicate
	}
	if err := uc.itemRepo.SetDeleted(id, false); err != nil {
		return nil, err
	}
	item.Deleted = false
	_ = uc.logRepo.Create(&entity.OperationLog{
		ID:        uuid.New().String(),
		ItemID:    id,
		Operation: entity.OpItemRestored,
		Details:   fmt.Sprintf("code %s", item.Code),
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})
	uc.cache.Purge()
	return toItemResponse(item), nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           item.ID,
		Code:         item.Code,
		Name:         item.Name,
		Description:  item.Description,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		PurchaseCost: item.PurchaseCost,
		VATRate:      item.VATRate,
		Category:     item.Category,
		LocationID:   item.LocationID,
		Unit:         item.Unit,
		MinStock:     item.MinStock,
		SupplierID:   item.SupplierID,
		BatchNumber:  item.BatchNumber,
		ExpiryDate:   item.ExpiryDate,
		Deleted:      item.Deleted,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
