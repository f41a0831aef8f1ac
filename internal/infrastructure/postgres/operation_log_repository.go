package postgres

import (
	"context"
	"fmt"

	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

var _ repository.OperationLogRepository = (*OperationLogRepo)(nil)

// OperationLogRepo implements the append-only item audit log on PostgreSQL.
type OperationLogRepo struct {
	q Querier
}

// NewOperationLogRepository builds the adapter. Pass pool or tx (Querier).
func NewOperationLogRepository(q Querier) *OperationLogRepo {
	return &OperationLogRepo{q: q}
}

// Create appends an audit row.
func (r *OperationLogRepo) Create(l *entity.OperationLog) error {
	query := `
		INSERT INTO operation_logs (id, item_id, operation, details, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ItemID, l.Operation, l.Details, nullable(l.CreatedBy), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation log: %w", err)
	}
	return nil
}

// ListByItem returns the audit trail of one item, newest first.
func (r *OperationLogRepo) ListByItem(itemID string) ([]*entity.OperationLog, error) {
	query := `
		SELECT id, item_id, operation, details, COALESCE(created_by, ''), created_at
		FROM operation_logs WHERE item_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list operation logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.OperationLog
	for rows.Next() {
		var l entity.OperationLog
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Operation, &l.Details,
			&l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
