package query

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest is a normalized pagination request. Construct via
// ParsePageRequest so defaults are applied consistently.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest parses raw page/limit values. Missing, non-numeric, or
// non-positive values fall back to page=1, limit=10 rather than erroring.
func ParsePageRequest(page, limit string) PageRequest {
	req := PageRequest{Page: DefaultPage, Limit: DefaultLimit}

	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		req.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		req.Limit = n
	}

	return req
}

// Offset returns the number of items to skip for this request.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page wraps one page of results with its metadata. A request beyond the last
// page yields empty Items with metadata intact.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage computes page metadata for a result slice and total match count.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return Page[T]{
		Items:       items,
		Page:        req.Page,
		Limit:       req.Limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: req.Page < totalPages,
		HasPrevPage: req.Page > 1 && total > 0,
	}
}
