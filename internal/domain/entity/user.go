package entity

import "time"

// User roles.
const (
	RoleAdmin      = "admin"
	RoleWarehouse  = "warehouse"
	RoleAccountant = "accountant"
)

// User is an API account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
