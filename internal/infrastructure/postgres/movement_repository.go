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

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.AttachmentRepository = (*AttachmentRepo)(nil)

var movementSortable = map[string]bool{
	"type": true, "quantity": true, "status": true, "created_at": true,
}

// MovementRepo implements the immutable movement log on PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the adapter. Pass pool or tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persists a movement. Movements are never updated or deleted except
// for the pending-to-completed flip on purchase receive.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, type, quantity, supplier, document, description, comment, status, order_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, string(m.Type), m.Quantity, m.Supplier, m.Document,
		m.Description, m.Comment, m.Status, nullable(m.OrderID), nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT id, item_id, type, quantity, supplier, document, description, comment, status, COALESCE(order_id, ''), COALESCE(created_by, ''), created_at
	FROM movements `

// GetByID fetches one movement.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), movementSelect+`WHERE id = $1`, id).Scan(
		&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.Supplier, &m.Document,
		&m.Description, &m.Comment, &m.Status, &m.OrderID, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByItem returns the full movement history of one item, newest first.
func (r *MovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(),
		movementSelect+`WHERE item_id = $1 ORDER BY created_at DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// List returns movements matching the filter.
func (r *MovementRepo) List(filter repository.ListFilter) ([]*entity.Movement, error) {
	cols := []string{
		"id", "item_id", "type", "quantity", "supplier", "document", "description",
		"comment", "status", "COALESCE(order_id, '') AS order_id",
		"COALESCE(created_by, '') AS created_by", "created_at",
	}
	q := builder().Select(cols...).From("movements")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"document": pattern},
			squirrel.ILike{"supplier": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	order, err := parseOrderBy(filter.SortBy, movementSortable, "created_at DESC")
	if err != nil {
		return nil, err
	}
	q = q.OrderBy(order)
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q = q.Limit(uint64(limit))
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movements: %w", err)
	}
	var list []*entity.Movement
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return list, nil
}

// MarkCompletedByOrder flips the pending movements of an order to completed.
func (r *MovementRepo) MarkCompletedByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movements SET status = $2 WHERE order_id = $1 AND status = $3`,
		orderID, entity.MovementStatusCompleted, entity.MovementStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark movements completed: %w", err)
	}
	return nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.Supplier,
			&m.Document, &m.Description, &m.Comment, &m.Status, &m.OrderID,
			&m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// AttachmentRepo stores movement file metadata on PostgreSQL.
type AttachmentRepo struct {
	q Querier
}

// NewAttachmentRepository builds the adapter.
func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

// Create persists attachment metadata.
func (r *AttachmentRepo) Create(a *entity.Attachment) error {
	query := `
		INSERT INTO attachments (id, movement_id, file_name, file_path, mime_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.MovementID, a.FileName, a.FilePath, a.MimeType, a.Size, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

// ListByMovement returns attachments of one movement.
func (r *AttachmentRepo) ListByMovement(movementID string) ([]*entity.Attachment, error) {
	query := `
		SELECT id, movement_id, file_name, file_path, mime_type, size, created_at
		FROM attachments WHERE movement_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		if err := rows.Scan(&a.ID, &a.MovementID, &a.FileName, &a.FilePath,
			&a.MimeType, &a.Size, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
