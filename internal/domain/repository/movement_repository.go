package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// MovementRepository is the persistence port for the immutable movement log.
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByItem(itemID string) ([]*entity.Movement, error)
	List(filter ListFilter) ([]*entity.Movement, error)
	// MarkCompletedByOrder flips pending movements of an order to completed
	// (purchase receive applies the stock that confirm only announced).
	MarkCompletedByOrder(orderID string) error
}

// AttachmentRepository stores file metadata linked to movements.
type AttachmentRepository interface {
	Create(a *entity.Attachment) error
	ListByMovement(movementID string) ([]*entity.Attachment, error)
}
