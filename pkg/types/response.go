package types

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	Total           int64 `json:"total"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// SuccessEnvelope is the body of every 2xx response.
type SuccessEnvelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response. Errors carries
// per-field validation messages when the failure is a validation one.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
