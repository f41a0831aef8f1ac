package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

var itemCols = []string{
	"id", "code", "name", "description", "quantity", "unit_price", "purchase_cost",
	"vat_rate", "category", "location_id", "unit", "min_stock", "supplier_id",
	"batch_number", "expiry_date", "deleted", "created_at", "updated_at",
}

var itemSortable = map[string]bool{
	"code": true, "name": true, "quantity": true, "unit_price": true,
	"category": true, "created_at": true, "updated_at": true,
}

// ItemRepo implements ItemRepository on PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass pool or tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persists a new item.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, code, name, description, quantity, unit_price, purchase_cost, vat_rate, category, location_id, unit, min_stock, supplier_id, batch_number, expiry_date, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Description, item.Quantity,
		item.UnitPrice, item.PurchaseCost, item.VATRate, item.Category,
		nullable(item.LocationID), item.Unit, item.MinStock, nullable(item.SupplierID),
		item.BatchNumber, item.ExpiryDate, item.Deleted, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID fetches an item by ID, deleted or not.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByCode fetches a non-deleted item by its unique code.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	return r.getOne(`WHERE code = $1 AND deleted = false`, code)
}

// GetForUpdate fetches the item and locks the row (SELECT FOR UPDATE). Only
// meaningful inside a transaction.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.getOne(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) getOne(where string, arg any) (*entity.Item, error) {
	query := `
		SELECT id, code, name, description, quantity, unit_price, purchase_cost, vat_rate, category, COALESCE(location_id, ''), unit, min_stock, COALESCE(supplier_id, ''), batch_number, expiry_date, deleted, created_at, updated_at
		FROM items ` + where
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.Code, &i.Name, &i.Description, &i.Quantity, &i.UnitPrice,
		&i.PurchaseCost, &i.VATRate, &i.Category, &i.LocationID, &i.Unit,
		&i.MinStock, &i.SupplierID, &i.BatchNumber, &i.ExpiryDate, &i.Deleted,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// Update rewrites the catalog fields. Quantity is excluded; it moves only
// through UpdateQuantity.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, unit_price = $4, purchase_cost = $5, vat_rate = $6, category = $7, location_id = $8, unit = $9, min_stock = $10, supplier_id = $11, batch_number = $12, expiry_date = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.UnitPrice, item.PurchaseCost,
		item.VATRate, item.Category, nullable(item.LocationID), item.Unit,
		item.MinStock, nullable(item.SupplierID), item.BatchNumber, item.ExpiryDate,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity writes the on-hand quantity (stock engine only).
func (r *ItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// List returns items matching the filter.
func (r *ItemRepo) List(filter repository.ListFilter) ([]*entity.Item, error) {
	cols := make([]string, len(itemCols))
	copy(cols, itemCols)
	cols[9] = "COALESCE(location_id, '') AS location_id"
	cols[12] = "COALESCE(supplier_id, '') AS supplier_id"

	q, err := listSelect("items", cols, filter, []string{"name", "code", "category"}, itemSortable, "name ASC")
	if err != nil {
		return nil, err
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Location != "" {
		q = q.Where(squirrel.Eq{"location_id": filter.Location})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items: %w", err)
	}
	var list []*entity.Item
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return list, nil
}

// SetDeleted flips the soft-delete flag.
func (r *ItemRepo) SetDeleted(id string, deleted bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET deleted = $2, updated_at = now() WHERE id = $1`,
		id, deleted,
	)
	if err != nil {
		return fmt.Errorf("set item deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullable maps an empty string to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
