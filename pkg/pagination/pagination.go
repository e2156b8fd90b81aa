package pagination

// MaxPageSize caps page sizes; larger requests are silently clamped.
const MaxPageSize = 100

// DefaultPageSize is used when no size (or a non-positive size) is requested.
const DefaultPageSize = 10

// Page is one bounded window over an ordered item set plus its metadata.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Paginate slices items into the requested page. Items must already be in
// the order the caller wants; pagination never reorders. An out-of-range
// page yields an empty slice with accurate totals rather than an error.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  int64(total),
		PageSize:    pageSize,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && totalPages > 0,
	}
}
