package orders

import (
	"context"

	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// OrderTxRunner executes the order confirm/receive flows inside a database
// transaction: stock mutation, movement rows, audit rows and the status
// change commit or roll back together.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
		ordersRepo repository.OrderRepository,
	) error) error
}

// PurchaseTxRunner is the purchase counterpart of OrderTxRunner.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
		purchases repository.PurchaseRepository,
	) error) error
}
