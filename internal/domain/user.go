package domain

import (
	"context"
	"strings"
)

// Relationship list fields on a user document.
const (
	FieldHostedEvents   = "hosted_events"
	FieldAttendedEvents = "attended_events"
)

// User represents a CRM contact and the events they host or attend.
// swagger:model User
type User struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	PhoneNumber    string   `json:"phone_number,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	JobTitle       string   `json:"job_title,omitempty"`
	Company        string   `json:"company,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	HostedEvents   []string `json:"hosted_events"`
	AttendedEvents []string `json:"attended_events"`
}

// NewUser returns a User with empty relationship lists. ID is set by the repository on create.
func NewUser(firstName, lastName, email string) *User {
	return &User{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		HostedEvents:   []string{},
		AttendedEvents: []string{},
	}
}

// Normalize trims profile fields and replaces nil relationship lists with empty ones.
func (u *User) Normalize() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)
	if u.HostedEvents == nil {
		u.HostedEvents = []string{}
	}
	if u.AttendedEvents == nil {
		u.AttendedEvents = []string{}
	}
}

// Validate checks the required profile fields. Email format is not checked beyond non-empty.
func (u *User) Validate() error {
	switch {
	case strings.TrimSpace(u.FirstName) == "":
		return InvalidInputf("first_name is required")
	case strings.TrimSpace(u.LastName) == "":
		return InvalidInputf("last_name is required")
	case strings.TrimSpace(u.Email) == "":
		return InvalidInputf("email is required")
	}
	return nil
}

// userSortFields maps each sortable profile field name to its accessor.
var userSortFields = []struct {
	key   string
	value func(*User) string
}{
	{"id", func(u *User) string { return u.ID }},
	{"first_name", func(u *User) string { return u.FirstName }},
	{"last_name", func(u *User) string { return u.LastName }},
	{"email", func(u *User) string { return u.Email }},
	{"phone_number", func(u *User) string { return u.PhoneNumber }},
	{"avatar", func(u *User) string { return u.Avatar }},
	{"gender", func(u *User) string { return u.Gender }},
	{"job_title", func(u *User) string { return u.JobTitle }},
	{"company", func(u *User) string { return u.Company }},
	{"city", func(u *User) string { return u.City }},
	{"state", func(u *User) string { return u.State }},
}

// UserSortKeys lists the field names accepted by SortValue, in declaration order.
var UserSortKeys = func() []string {
	keys := make([]string, len(userSortFields))
	for i, f := range userSortFields {
		keys[i] = f.key
	}
	return keys
}()

// SortValue returns the textual value of the named field, or "" if the field is unknown or empty.
func (u *User) SortValue(key string) string {
	for _, f := range userSortFields {
		if f.key == key {
			return f.value(u)
		}
	}
	return ""
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// UpdateProfile replaces profile fields and leaves relationship lists untouched.
	UpdateProfile(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	// List returns every user in scan order.
	List(ctx context.Context) ([]*User, error)
	AppendHostedEvent(ctx context.Context, userID, eventID string) error
	AppendAttendedEvent(ctx context.Context, userID, eventID string) error
}

// UserService defines user CRUD operations.
type UserService interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*User, error)
}
