package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// PurchaseRepository is the persistence port for purchases, their lines and
// the append-only history. Mirrors OrderRepository for the supplier aggregate.
type PurchaseRepository interface {
	Create(p *entity.Purchase, items []*entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	UpdateStatus(id, status string) error
	List(filter ListFilter) ([]*entity.Purchase, error)
	SetDeleted(id string, deleted bool) error
	AddHistory(h *entity.PurchaseHistory) error
	ListHistory(purchaseID string) ([]*entity.PurchaseHistory, error)
}
