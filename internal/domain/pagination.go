package domain

import "math"

// PaginationParams holds page-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based), (Page - 1) * PageSize.
// A product past math.MaxInt saturates at math.MaxInt so the page is empty rather than wrapped.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Window returns the half-open [start, end) slice bounds for skipping skip items and
// taking at most limit of total. A nil limit takes everything; bounds never exceed total.
func Window(total, skip int, limit *int) (start, end int) {
	if skip < 0 {
		skip = 0
	}
	start = min(skip, total)
	end = total
	if limit != nil && *limit >= 0 && *limit < end-start {
		end = start + *limit
	}
	return start, end
}
