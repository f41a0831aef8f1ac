package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// InvoiceRepository is the persistence port for invoice headers.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// Update rewrites mutable header fields: status, file path, external
	// reference, totals and timestamps.
	Update(inv *entity.Invoice) error
	List(filter ListFilter) ([]*entity.Invoice, error)
	SetDeleted(id string, deleted bool) error
}
