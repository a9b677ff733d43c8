package domain

import (
	"context"
	"strings"
)

// FieldAttendees is the relationship list field on an event document.
const FieldAttendees = "attendees"

// Event represents a hosted event. StartAt and EndAt are opaque timestamps.
// swagger:model Event
type Event struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartAt     string   `json:"start_at"`
	EndAt       string   `json:"end_at"`
	Venue       string   `json:"venue,omitempty"`
	MaxCapacity int      `json:"max_capacity"`
	Owner       string   `json:"owner"`
	Hosts       []string `json:"hosts"`
	Attendees   []string `json:"attendees"`
}

// Normalize trims descriptive fields and replaces nil lists with empty ones.
func (e *Event) Normalize() {
	e.Slug = strings.TrimSpace(e.Slug)
	e.Title = strings.TrimSpace(e.Title)
	e.Owner = strings.TrimSpace(e.Owner)
	if e.Hosts == nil {
		e.Hosts = []string{}
	}
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
}

// Validate checks the required event fields.
func (e *Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Slug) == "":
		return InvalidInputf("slug is required")
	case strings.TrimSpace(e.Title) == "":
		return InvalidInputf("title is required")
	case strings.TrimSpace(e.StartAt) == "":
		return InvalidInputf("start_at is required")
	case strings.TrimSpace(e.EndAt) == "":
		return InvalidInputf("end_at is required")
	case e.MaxCapacity <= 0:
		return InvalidInputf("max_capacity must be positive")
	case strings.TrimSpace(e.Owner) == "":
		return InvalidInputf("owner is required")
	}
	return nil
}

// HostIDs returns the owner followed by every co-host, without duplicates.
func (e *Event) HostIDs() []string {
	seen := make(map[string]struct{}, len(e.Hosts)+1)
	out := make([]string, 0, len(e.Hosts)+1)
	for _, id := range append([]string{e.Owner}, e.Hosts...) {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// UpdateDetails replaces descriptive fields, owner and hosts, leaving attendees untouched.
	UpdateDetails(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Event, error)
	AppendAttendee(ctx context.Context, eventID, userID string) error
}

// EventService defines event CRUD operations. Creation goes through RelationshipService.
type EventService interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) (*Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Event, error)
}
