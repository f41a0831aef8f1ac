package stock

import (
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// MovementQueryUseCase reads the movement audit trail and item logs.
type MovementQueryUseCase struct {
	movRepo repository.MovementRepository
	logRepo repository.OperationLogRepository
}

// NewMovementQueryUseCase builds the query side.
func NewMovementQueryUseCase(movRepo repository.MovementRepository, logRepo repository.OperationLogRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, logRepo: logRepo}
}

// GetByID returns one movement.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToMovementResponse(m)
	return &resp, nil
}

// List returns movements filtered by item, type or status.
func (uc *MovementQueryUseCase) List(filter repository.ListFilter) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ItemMovements returns the movement history of one item, newest first.
func (uc *MovementQueryUseCase) ItemMovements(itemID string) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ItemLog returns the audit log of one item, newest first.
func (uc *MovementQueryUseCase) ItemLog(itemID string) ([]dto.OperationLogResponse, error) {
	logs, err := uc.logRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OperationLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.OperationLogResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Operation: l.Operation,
			Details:   l.Details,
			CreatedBy: l.CreatedBy,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

// ToMovementResponse projects a movement for the HTTP layer.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Supplier:    m.Supplier,
		Document:    m.Document,
		Description: m.Description,
		Comment:     m.Comment,
		Status:      m.Status,
		OrderID:     m.OrderID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
