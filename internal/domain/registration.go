package domain

import "context"

// Registration statuses.
const (
	RegistrationStatusRegistered          = "registered"
	RegistrationStatusPartiallyRegistered = "partially_registered"
)

// RegistrationResult reports the outcome of registering a user for an event.
// swagger:model RegistrationResult
type RegistrationResult struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
	// Failures lists the sides that were not written when Status is partially_registered.
	Failures []LinkFailure `json:"failures,omitempty"`
}

// RelationshipService keeps both sides of the user/event links in step.
// Writes are best effort: an applied side is never rolled back.
type RelationshipService interface {
	// CreateEvent persists the event and appends its ID to the hosted list of the owner and every host.
	CreateEvent(ctx context.Context, event *Event) error
	// RegisterForEvent appends the user to the event's attendees and the event to the user's attended list.
	// Duplicate registrations are appended again.
	RegisterForEvent(ctx context.Context, eventID, userID string) (*RegistrationResult, error)
}
