package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// ContractorRepository is the persistence port for contractors.
type ContractorRepository interface {
	Create(c *entity.Contractor) error
	GetByID(id string) (*entity.Contractor, error)
	// GetByNIP looks up a non-deleted contractor by tax id.
	GetByNIP(nip string) (*entity.Contractor, error)
	Update(c *entity.Contractor) error
	List(filter ListFilter) ([]*entity.Contractor, error)
	SetDeleted(id string, deleted bool) error
}
