package repository

import (
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
)

// ItemRepository is the persistence port for warehouse items.
// Quantity writes happen only inside transactions via GetForUpdate +
// UpdateQuantity so the stock engine can lock the row.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetByCode looks up a non-deleted item by its unique code.
	GetByCode(code string) (*entity.Item, error)
	Update(item *entity.Item) error
	// GetForUpdate locks the item row (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
	List(filter ListFilter) ([]*entity.Item, error)
	SetDeleted(id string, deleted bool) error
}
