package services

import (
	"context"
	"errors"
	"testing"

	"eventcrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipService_CreateRegisterAndReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ann := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))
	bob := f.createUser(t, domain.NewUser("Bob", "Ray", "bob@x.com"))

	event := newEvent(ann.ID)
	require.NoError(t, f.relations.CreateEvent(ctx, event))
	require.NotEmpty(t, event.ID)

	gotAnn, err := f.users.GetByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID}, gotAnn.HostedEvents)

	res, err := f.relations.RegisterForEvent(ctx, event.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusRegistered, res.Status)
	assert.Empty(t, res.Failures)

	gotEvent, err := f.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, gotEvent.Attendees)
	gotBob, err := f.users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID}, gotBob.AttendedEvents)

	report, err := NewAnalyticsService(f.users, testTimeout).EngagementReport(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, ann.ID, report[0].UserID)
	assert.Equal(t, 1, report[0].HostedCount)
	assert.Equal(t, 0, report[0].AttendedCount)
	assert.Equal(t, bob.ID, report[1].UserID)
	assert.Equal(t, 0, report[1].HostedCount)
	assert.Equal(t, 1, report[1].AttendedCount)
}

func TestRelationshipService_CreateEventDeduplicatesOwnerAndHosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	owner := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))
	host := f.createUser(t, domain.NewUser("Bob", "Ray", "bob@x.com"))

	event := newEvent(owner.ID, host.ID, owner.ID, host.ID)
	require.NoError(t, f.relations.CreateEvent(ctx, event))

	assert.Equal(t, []string{host.ID}, event.Hosts)
	assert.Equal(t, []string{}, event.Attendees)

	for _, id := range []string{owner.ID, host.ID} {
		u, err := f.users.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{event.ID}, u.HostedEvents, "user %s", id)
	}
}

func TestRelationshipService_CreateEventKeepsEventWhenHostLinkFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))

	event := newEvent(owner.ID, "ghost")
	require.NoError(t, f.relations.CreateEvent(ctx, event))

	stored, err := f.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, stored.Hosts)

	u, err := f.users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID}, u.HostedEvents)
}

func TestRelationshipService_CreateEventErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture()
		event := newEvent("u1")
		event.MaxCapacity = 0
		err := f.relations.CreateEvent(ctx, event)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("store unavailable on event write", func(t *testing.T) {
		f := newFixture()
		owner := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))
		f.store.putErr[domain.CollectionEvents] = domain.ErrStoreUnavailable

		err := f.relations.CreateEvent(ctx, newEvent(owner.ID))
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)

		u, err := f.users.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, u.HostedEvents)
	})
}

func TestRelationshipService_DuplicateRegistrationAppendsTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))
	guest := f.createUser(t, domain.NewUser("Bob", "Ray", "bob@x.com"))
	event := newEvent(owner.ID)
	require.NoError(t, f.relations.CreateEvent(ctx, event))

	for i := 0; i < 2; i++ {
		_, err := f.relations.RegisterForEvent(ctx, event.ID, guest.ID)
		require.NoError(t, err)
	}

	gotEvent, err := f.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{guest.ID, guest.ID}, gotEvent.Attendees)
	gotGuest, err := f.users.GetByID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID, event.ID}, gotGuest.AttendedEvents)
}

func TestRelationshipService_RegisterForEventFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing event applies nothing", func(t *testing.T) {
		f := newFixture()
		guest := f.createUser(t, domain.NewUser("Bob", "Ray", "bob@x.com"))

		_, err := f.relations.RegisterForEvent(ctx, "no-such-event", guest.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)

		u, err := f.users.GetByID(ctx, guest.ID)
		require.NoError(t, err)
		assert.Empty(t, u.AttendedEvents)
	})

	t.Run("missing user leaves the event side applied", func(t *testing.T) {
		f := newFixture()
		owner := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))
		event := newEvent(owner.ID)
		require.NoError(t, f.relations.CreateEvent(ctx, event))

		res, err := f.relations.RegisterForEvent(ctx, event.ID, "ghost")
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusPartiallyRegistered, res.Status)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "ghost", res.Failures[0].ID)
		assert.Equal(t, domain.FieldAttendedEvents, res.Failures[0].Field)
		assert.ErrorIs(t, res.Failures[0].Err, domain.ErrNotFound)

		got, err := f.events.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"ghost"}, got.Attendees)
	})

	t.Run("store unavailable on event side is fatal", func(t *testing.T) {
		f := newFixture()
		f.store.appendErr[domain.CollectionEvents] = domain.ErrStoreUnavailable

		_, err := f.relations.RegisterForEvent(ctx, "e1", "u1")
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		var partial *domain.PartialConsistencyError
		assert.False(t, errors.As(err, &partial))
	})

	t.Run("empty ids are invalid", func(t *testing.T) {
		f := newFixture()
		_, err := f.relations.RegisterForEvent(ctx, "", "u1")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
