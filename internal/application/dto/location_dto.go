package dto

import "time"

// CreateLocationRequest adds a warehouse location.
type CreateLocationRequest struct {
	Code    string `json:"code" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

// UpdateLocationRequest patches a location; nil fields unchanged.
type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// LocationResponse projects a location.
type LocationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse is the list envelope.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
