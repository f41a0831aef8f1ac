package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

var purchaseCols = []string{
	"id", "number", "status", "supplier_id", "total", "notes", "deleted",
	"COALESCE(created_by, '') AS created_by", "created_at", "updated_at",
}

var purchaseSortable = map[string]bool{
	"number": true, "status": true, "total": true, "created_at": true, "updated_at": true,
}

// PurchaseRepo implements PurchaseRepository on PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the adapter. Pass pool or tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persists the purchase header and its lines.
func (r *PurchaseRepo) Create(p *entity.Purchase, items []*entity.PurchaseItem) error {
	query := `
		INSERT INTO purchases (id, number, status, supplier_id, total, notes, deleted, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Number, p.Status, p.SupplierID, p.Total, p.Notes, p.Deleted,
		nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_items (id, purchase_id, item_id, quantity, unit_price, vat_rate, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.PurchaseID, it.ItemID, it.Quantity, it.UnitPrice, it.VATRate, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID fetches a purchase header.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, number, status, supplier_id, total, notes, deleted, COALESCE(created_by, ''), created_at, updated_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.Status, &p.SupplierID, &p.Total, &p.Notes,
		&p.Deleted, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// GetItems returns the lines of a purchase.
func (r *PurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, item_id, quantity, unit_price, vat_rate, total
		FROM purchase_items WHERE purchase_id = $1`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ItemID, &it.Quantity,
			&it.UnitPrice, &it.VATRate, &it.Total); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus writes the purchase status.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns purchases matching the filter.
func (r *PurchaseRepo) List(filter repository.ListFilter) ([]*entity.Purchase, error) {
	q, err := listSelect("purchases", purchaseCols, filter, []string{"number", "notes"}, purchaseSortable, "created_at DESC")
	if err != nil {
		return nil, err
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list purchases: %w", err)
	}
	var list []*entity.Purchase
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return list, nil
}

// SetDeleted flips the soft-delete flag.
func (r *PurchaseRepo) SetDeleted(id string, deleted bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET deleted = $2, updated_at = now() WHERE id = $1`,
		id, deleted,
	)
	if err != nil {
		return fmt.Errorf("set purchase deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddHistory appends a history row.
func (r *PurchaseRepo) AddHistory(h *entity.PurchaseHistory) error {
	query := `
		INSERT INTO purchase_history (id, purchase_id, action, details, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.PurchaseID, h.Action, h.Details, nullable(h.CreatedBy), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase history: %w", err)
	}
	return nil
}

// ListHistory returns the history of a purchase, oldest first.
func (r *PurchaseRepo) ListHistory(purchaseID string) ([]*entity.PurchaseHistory, error) {
	query := `
		SELECT id, purchase_id, action, details, COALESCE(created_by, ''), created_at
		FROM purchase_history WHERE purchase_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseHistory
	for rows.Next() {
		var h entity.PurchaseHistory
		if err := rows.Scan(&h.ID, &h.PurchaseID, &h.Action, &h.Details,
			&h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
