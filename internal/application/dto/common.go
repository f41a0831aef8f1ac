package dto

// PageRequest is the pagination part of list queries.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage applies defaults when Limit/Offset are unset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListQuery is the common query-string surface of list endpoints:
// pagination plus field-based filter and sort.
type ListQuery struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
	Location string `query:"location_id"`
	Type     string `query:"type"`
	Status   string `query:"status"`
	SortBy   string `query:"sort_by"` // "field" or "-field"
}

// PageResponse echoes pagination in list responses.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
