package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// OperationLogRepository is the append-only audit log of item mutations.
type OperationLogRepository interface {
	Create(l *entity.OperationLog) error
	ListByItem(itemID string) ([]*entity.OperationLog, error)
}
