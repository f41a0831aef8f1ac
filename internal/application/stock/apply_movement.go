package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// ApplyMovementUseCase applies a warehouse movement to one item: row lock
// (SELECT FOR UPDATE), quantity transition by movement class, movement row
// and audit row, all in one transaction.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	logRepo  repository.OperationLogRepository
}

// NewApplyMovementUseCase builds the use case. itemRepo and logRepo are
// pool-bound: logRepo records stock rejections outside the rolled-back tx.
func NewApplyMovementUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, logRepo repository.OperationLogRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, itemRepo: itemRepo, logRepo: logRepo}
}

// MovementInput is the engine's input.
type MovementInput struct {
	ItemID      string
	Type        entity.MovementType
	Quantity    decimal.Decimal
	Supplier    string
	Document    string
	Description string
	Comment     string
	OrderID     string
	UserID      string
}

// FromRequest adapts the HTTP request to the engine input.
func FromRequest(userID string, in dto.RegisterMovementRequest) MovementInput {
	return MovementInput{
		ItemID:      in.ItemID,
		Type:        entity.MovementType(in.Type),
		Quantity:    in.Quantity,
		Supplier:    in.Supplier,
		Document:    in.Document,
		Description: in.Description,
		Comment:     in.Comment,
		UserID:      userID,
	}
}

// Apply validates and applies the movement. Receipt types add, issue types
// subtract after a sufficiency check, INW overrides the quantity. A rejected
// issue still leaves one audit row recording the attempt.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	class := input.Type.Class()
	if class == entity.ClassUnknown {
		return nil, domain.ErrUnsupportedMovement
	}
	if input.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if class == entity.ClassInventory {
		if input.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	} else if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var mov *entity.Movement

	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.OperationLogRepository,
	) error {
		item, err := items.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.Deleted {
			return domain.ErrNotFound
		}

		old := item.Quantity
		var next decimal.Decimal
		switch class {
		case entity.ClassReceipt:
			next = old.Add(input.Quantity)
		case entity.ClassIssue:
			if old.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			next = old.Sub(input.Quantity)
		case entity.ClassInventory:
			next = input.Quantity
		}

		if err := items.UpdateQuantity(item.ID, next); err != nil {
			return err
		}
		mov = &entity.Movement{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			Type:        input.Type,
			Quantity:    input.Quantity,
			Supplier:    input.Supplier,
			Document:    input.Document,
			Description: input.Description,
			Comment:     input.Comment,
			Status:      entity.MovementStatusCompleted,
			OrderID:     input.OrderID,
			CreatedBy:   input.UserID,
			CreatedAt:   now,
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		return logs.Create(&entity.OperationLog{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			Operation: entity.OpMovementApplied,
			Details:   fmt.Sprintf("%s %s: quantity %s -> %s", input.Type, input.Quantity, old, next),
			CreatedBy: input.UserID,
			CreatedAt: now,
		})
	})
	if errors.Is(err, domain.ErrInsufficientStock) {
		// The transaction rolled back; record the rejected attempt so the
		// audit trail still shows it.
		uc.logRejection(input, now)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (uc *ApplyMovementUseCase) logRejection(input MovementInput, now time.Time) {
	_ = uc.logRepo.Create(&entity.OperationLog{
		ID:        uuid.New().String(),
		ItemID:    input.ItemID,
		Operation: entity.OpMovementRejected,
		Details:   fmt.Sprintf("%s %s rejected: insufficient stock", input.Type, input.Quantity),
		CreatedBy: input.UserID,
		CreatedAt: now,
	})
}
