package types

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta carries list pagination metadata.
type Meta struct {
	RequestID   string `json:"request_id,omitempty"`
	CurrentPage int    `json:"current_page,omitempty"`
	TotalPages  int    `json:"total_pages,omitempty"`
	TotalItems  int64  `json:"total_items,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
	HasNext     bool   `json:"has_next"`
	HasPrev     bool   `json:"has_prev"`
}
