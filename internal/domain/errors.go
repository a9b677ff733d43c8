package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by services, repositories and controllers.
var (
	// ErrNotFound is returned when a referenced user, event or document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable is returned when the key-value backend cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrPartialConsistency marks a two-sided relationship write where only some sides were applied.
	ErrPartialConsistency = errors.New("partial consistency failure")
)

// InvalidInputf returns an error wrapping ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// LinkFailure describes one side of a relationship that could not be written.
type LinkFailure struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Field      string `json:"field"`
	Reason     string `json:"reason"`
	Err        error  `json:"-"`
}

// PartialConsistencyError reports the sides of a relationship write that failed after
// at least one other side was already applied. Applied sides are never rolled back.
type PartialConsistencyError struct {
	Op       string
	Failures []LinkFailure
}

func (e *PartialConsistencyError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s/%s.%s: %v", f.Collection, f.ID, f.Field, f.Err))
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrPartialConsistency, strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrPartialConsistency) match.
func (e *PartialConsistencyError) Is(target error) bool {
	return target == ErrPartialConsistency
}
