package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// LocationRepository is the persistence port for warehouse locations.
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(l *entity.Location) error
	List(filter ListFilter) ([]*entity.Location, error)
	SetDeleted(id string, deleted bool) error
}
