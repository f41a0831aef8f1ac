package entity

import "time"

// Location is a warehouse or storage location in the catalog.
type Location struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
