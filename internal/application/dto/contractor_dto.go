package dto

import "time"

// CreateContractorRequest adds a business partner.
type CreateContractorRequest struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required"` // supplier, client, both
	NIP     string `json:"nip"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// UpdateContractorRequest patches a contractor; nil fields unchanged.
type UpdateContractorRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	NIP     *string `json:"nip"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	ZipCode *string `json:"zip_code"`
}

// ContractorResponse projects a contractor.
type ContractorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	NIP       string    `json:"nip,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContractorListResponse is the list envelope.
type ContractorListResponse struct {
	Items []ContractorResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
