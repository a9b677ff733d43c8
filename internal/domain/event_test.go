package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_HostIDs(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		hosts []string
		want  []string
	}{
		{"owner only", "a", nil, []string{"a"}},
		{"owner first", "a", []string{"b", "c"}, []string{"a", "b", "c"}},
		{"owner listed as host", "a", []string{"b", "a"}, []string{"a", "b"}},
		{"duplicate hosts", "a", []string{"b", "b", " b "}, []string{"a", "b"}},
		{"blank hosts dropped", "a", []string{"", "  "}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{Owner: tt.owner, Hosts: tt.hosts}
			assert.Equal(t, tt.want, e.HostIDs())
		})
	}
}

func TestEvent_Validate(t *testing.T) {
	valid := func() *Event {
		return &Event{Slug: "s", Title: "t", StartAt: "a", EndAt: "b", MaxCapacity: 1, Owner: "u"}
	}
	require.NoError(t, valid().Validate())

	for name, mutate := range map[string]func(*Event){
		"slug":     func(e *Event) { e.Slug = " " },
		"title":    func(e *Event) { e.Title = "" },
		"start":    func(e *Event) { e.StartAt = "" },
		"end":      func(e *Event) { e.EndAt = "" },
		"capacity": func(e *Event) { e.MaxCapacity = 0 },
		"owner":    func(e *Event) { e.Owner = "" },
	} {
		t.Run(name, func(t *testing.T) {
			e := valid()
			mutate(e)
			assert.ErrorIs(t, e.Validate(), ErrInvalidInput)
		})
	}
}

func TestPartialConsistencyError(t *testing.T) {
	cause := fmt.Errorf("user u1: %w", ErrNotFound)
	var err error = &PartialConsistencyError{
		Op:       "link attendance",
		Failures: []LinkFailure{{Collection: CollectionUsers, ID: "u1", Field: FieldAttendedEvents, Reason: cause.Error(), Err: cause}},
	}

	assert.ErrorIs(t, err, ErrPartialConsistency)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "users/u1.attended_events")

	var partial *PartialConsistencyError
	require.ErrorAs(t, fmt.Errorf("register: %w", err), &partial)
	assert.Len(t, partial.Failures, 1)
}
