package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"eventcrm/internal/domain"
)

// DefaultFilterLimit is the page size of GET /users when no limit is given.
const DefaultFilterLimit = 10

// ParseUserQuery reads the user filter, sort_by, skip and limit from the query string.
// Malformed or negative numbers are reported as an error wrapping domain.ErrInvalidInput.
func ParseUserQuery(r *http.Request) (domain.UserQuery, error) {
	values := r.URL.Query()
	q := domain.UserQuery{
		Filter: domain.UserFilter{
			Company:  strings.TrimSpace(values.Get("company")),
			JobTitle: strings.TrimSpace(values.Get("job_title")),
			City:     strings.TrimSpace(values.Get("city")),
			State:    strings.TrimSpace(values.Get("state")),
		},
		SortBy: strings.TrimSpace(values.Get("sort_by")),
	}

	var err error
	bounds := []struct {
		name string
		dest **int
	}{
		{"events_hosted_min", &q.Filter.HostedMin},
		{"events_hosted_max", &q.Filter.HostedMax},
		{"events_attended_min", &q.Filter.AttendedMin},
		{"events_attended_max", &q.Filter.AttendedMax},
	}
	for _, b := range bounds {
		if *b.dest, err = optionalInt(values, b.name); err != nil {
			return domain.UserQuery{}, err
		}
	}

	skip, err := optionalInt(values, "skip")
	if err != nil {
		return domain.UserQuery{}, err
	}
	if skip != nil {
		q.Skip = *skip
	}
	if q.Limit, err = optionalInt(values, "limit"); err != nil {
		return domain.UserQuery{}, err
	}
	if q.Limit == nil {
		limit := DefaultFilterLimit
		q.Limit = &limit
	}

	if err := q.Validate(); err != nil {
		return domain.UserQuery{}, err
	}
	return q, nil
}

func optionalInt(values url.Values, name string) (*int, error) {
	s := strings.TrimSpace(values.Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return &v, nil
}

// Email log paging defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePage reads page and page_size. Missing, malformed or non-positive values fall back
// to the defaults and page_size is capped at MaxPageSize.
func ParsePage(r *http.Request) domain.PaginationParams {
	values := r.URL.Query()
	p := domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}
	if v, err := optionalInt(values, "page"); err == nil && v != nil && *v >= 1 {
		p.Page = *v
	}
	if v, err := optionalInt(values, "page_size"); err == nil && v != nil && *v >= 1 {
		p.PageSize = min(*v, MaxPageSize)
	}
	return p
}

// PageMeta describes the page returned by a paginated list endpoint.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageMeta rounds TotalPages up; a zero page size yields zero pages.
func NewPageMeta(p domain.PaginationParams, total int) PageMeta {
	meta := PageMeta{Page: p.Page, PageSize: p.PageSize, Total: total}
	if p.PageSize > 0 {
		meta.TotalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return meta
}
