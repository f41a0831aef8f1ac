package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// OrderRepository is the persistence port for orders, their lines and the
// append-only history.
type OrderRepository interface {
	Create(o *entity.Order, items []*entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	UpdateStatus(id, status string) error
	List(filter ListFilter) ([]*entity.Order, error)
	SetDeleted(id string, deleted bool) error
	AddHistory(h *entity.OrderHistory) error
	ListHistory(orderID string) ([]*entity.OrderHistory, error)
}
