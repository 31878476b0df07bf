package projection

const (
	// DefaultPage is used when a caller omits or sends an invalid page.
	DefaultPage = 1
	// DefaultLimit is used when a caller omits or sends an invalid limit.
	DefaultLimit = 10
	// MaxLimit caps page sizes.
	MaxLimit = 100
)

// PageRequest is a normalized 1-based page window.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest applies defaults and the upper bound on limit.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page is one window of a larger ordered result set.
type Page[T any] struct {
	Items []T
	PageRequest
	Total int64
}

// TotalPages is ceil(Total/Limit).
func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Window slices an already ordered list according to the request.
func Window[T any](all []T, req PageRequest) Page[T] {
	page := Page[T]{PageRequest: req, Total: int64(len(all))}
	start := req.Offset()
	if start >= len(all) {
		page.Items = []T{}
		return page
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}
	page.Items = append([]T(nil), all[start:end]...)
	return page
}
