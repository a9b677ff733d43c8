package domain

import "context"

// UserFilter is a conjunction of optional predicates over users.
// Empty strings and nil bounds impose no constraint.
type UserFilter struct {
	Company     string `json:"company,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	HostedMin   *int   `json:"events_hosted_min,omitempty"`
	HostedMax   *int   `json:"events_hosted_max,omitempty"`
	AttendedMin *int   `json:"events_attended_min,omitempty"`
	AttendedMax *int   `json:"events_attended_max,omitempty"`
}

// Matches reports whether u satisfies every predicate in f.
func (f UserFilter) Matches(u *User) bool {
	if f.Company != "" && u.Company != f.Company {
		return false
	}
	if f.JobTitle != "" && u.JobTitle != f.JobTitle {
		return false
	}
	if f.City != "" && u.City != f.City {
		return false
	}
	if f.State != "" && u.State != f.State {
		return false
	}
	return inRange(len(u.HostedEvents), f.HostedMin, f.HostedMax) &&
		inRange(len(u.AttendedEvents), f.AttendedMin, f.AttendedMax)
}

func inRange(n int, min, max *int) bool {
	if min != nil && n < *min {
		return false
	}
	if max != nil && n > *max {
		return false
	}
	return true
}

// UserQuery combines a filter with sorting and offset pagination.
type UserQuery struct {
	Filter UserFilter
	// SortBy names a User field (see UserSortKeys). Empty keeps scan order.
	SortBy string
	Skip   int
	// Limit caps the result size; nil returns everything after Skip.
	Limit *int
}

// Validate rejects negative pagination values and inverted ranges.
func (q UserQuery) Validate() error {
	if q.Skip < 0 {
		return InvalidInputf("skip must not be negative")
	}
	if q.Limit != nil && *q.Limit < 0 {
		return InvalidInputf("limit must not be negative")
	}
	for _, b := range []*int{q.Filter.HostedMin, q.Filter.HostedMax, q.Filter.AttendedMin, q.Filter.AttendedMax} {
		if b != nil && *b < 0 {
			return InvalidInputf("event count bounds must not be negative")
		}
	}
	return nil
}

// QueryService filters, sorts and paginates the user collection.
type QueryService interface {
	FilterUsers(ctx context.Context, q UserQuery) ([]*User, error)
}
