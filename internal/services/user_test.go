package services

import (
	"context"
	"testing"

	"eventcrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewUserService(f.users, testTimeout)

	t.Run("assigns id and empty lists", func(t *testing.T) {
		u := domain.NewUser("Ann", "Lee", "ann@x.com")
		u.ID = "client-chosen"
		u.HostedEvents = []string{"e1"}
		require.NoError(t, svc.Create(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.NotEqual(t, "client-chosen", u.ID)

		got, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.HostedEvents)
		assert.Equal(t, []string{}, got.AttendedEvents)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := svc.Create(ctx, domain.NewUser("Ann", "", "ann@x.com"))
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("store unavailable", func(t *testing.T) {
		f.store.putErr[domain.CollectionUsers] = domain.ErrStoreUnavailable
		defer delete(f.store.putErr, domain.CollectionUsers)
		err := svc.Create(ctx, domain.NewUser("Ann", "Lee", "ann@x.com"))
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestUserService_UpdatePreservesRelationshipLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewUserService(f.users, testTimeout)

	u := domain.NewUser("Ann", "Lee", "ann@x.com")
	u.Company = "ABC"
	u.City = "Austin"
	require.NoError(t, svc.Create(ctx, u))
	require.NoError(t, f.users.AppendHostedEvent(ctx, u.ID, "e1"))
	require.NoError(t, f.users.AppendAttendedEvent(ctx, u.ID, "e2"))

	updated, err := svc.Update(ctx, &domain.User{
		ID:        u.ID,
		FirstName: "Ann",
		LastName:  "Smith",
		Email:     "ann@abc.com",
		Company:   "XYZ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Equal(t, "ann@abc.com", updated.Email)
	assert.Equal(t, "XYZ", updated.Company)
	assert.Empty(t, updated.City)
	assert.Equal(t, []string{"e1"}, updated.HostedEvents)
	assert.Equal(t, []string{"e2"}, updated.AttendedEvents)
}

func TestUserService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFixture().users, testTimeout)

	_, err := svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, &domain.User{ID: "missing", FirstName: "A", LastName: "B", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestUserService_DeleteLeavesEventReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewUserService(f.users, testTimeout)
	owner := f.createUser(t, domain.NewUser("Ann", "Lee", "ann@x.com"))
	event := newEvent(owner.ID)
	require.NoError(t, f.relations.CreateEvent(ctx, event))
	_, err := f.relations.RegisterForEvent(ctx, event.ID, owner.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID))

	_, err = svc.GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := f.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.Owner)
	assert.Equal(t, []string{owner.ID}, got.Attendees)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
