package repository

import "github.com/magazyn-erp/magazyn-api/internal/domain/entity"

// UserRepository is the persistence port for API accounts.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
