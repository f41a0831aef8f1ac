package stock

import (
	"context"

	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, passing
// repositories bound to that transaction. Guarantees that the quantity
// update, the movement insert and the audit insert commit or roll back
// together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
	) error) error
}
