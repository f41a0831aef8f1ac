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

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderCols = []string{
	"id", "number", "type", "status", "contractor_id", "total", "notes",
	"deleted", "COALESCE(created_by, '') AS created_by", "created_at", "updated_at",
}

var orderSortable = map[string]bool{
	"number": true, "status": true, "total": true, "created_at": true, "updated_at": true,
}

// OrderRepo implements OrderRepository on PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists the order header and its lines.
func (r *OrderRepo) Create(o *entity.Order, items []*entity.OrderItem) error {
	query := `
		INSERT INTO orders (id, number, type, status, contractor_id, total, notes, deleted, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Number, o.Type, o.Status, o.ContractorID, o.Total, o.Notes,
		o.Deleted, nullable(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO order_items (id, order_id, item_id, quantity, unit_price, vat_rate, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.OrderID, it.ItemID, it.Quantity, it.UnitPrice, it.VATRate, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID fetches an order header.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, number, type, status, contractor_id, total, notes, deleted, COALESCE(created_by, ''), created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.Type, &o.Status, &o.ContractorID, &o.Total,
		&o.Notes, &o.Deleted, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetItems returns the lines of an order.
func (r *OrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, item_id, quantity, unit_price, vat_rate, total
		FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemID, &it.Quantity,
			&it.UnitPrice, &it.VATRate, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus writes the order status.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns orders matching the filter.
func (r *OrderRepo) List(filter repository.ListFilter) ([]*entity.Order, error) {
	q, err := listSelect("orders", orderCols, filter, []string{"number", "notes"}, orderSortable, "created_at DESC")
	if err != nil {
		return nil, err
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}
	var list []*entity.Order
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return list, nil
}

// SetDeleted flips the soft-delete flag.
func (r *OrderRepo) SetDeleted(id string, deleted bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET deleted = $2, updated_at = now() WHERE id = $1`,
		id, deleted,
	)
	if err != nil {
		return fmt.Errorf("set order deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddHistory appends a history row.
func (r *OrderRepo) AddHistory(h *entity.OrderHistory) error {
	query := `
		INSERT INTO order_history (id, order_id, action, details, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.OrderID, h.Action, h.Details, nullable(h.CreatedBy), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order history: %w", err)
	}
	return nil
}

// ListHistory returns the history of an order, oldest first.
func (r *OrderRepo) ListHistory(orderID string) ([]*entity.OrderHistory, error) {
	query := `
		SELECT id, order_id, action, details, COALESCE(created_by, ''), created_at
		FROM order_history WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderHistory
	for rows.Next() {
		var h entity.OrderHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.Action, &h.Details,
			&h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
