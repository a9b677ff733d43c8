package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventcrm/internal/domain"
	"eventcrm/internal/repository/docstore"
	"eventcrm/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// flakyStore wraps a real store and fails selected operations per collection.
type flakyStore struct {
	domain.Store
	appendErr map[string]error
	putErr    map[string]error
	scanErr   map[string]error
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		Store:     memory.NewStore(),
		appendErr: map[string]error{},
		putErr:    map[string]error{},
		scanErr:   map[string]error{},
	}
}

func (f *flakyStore) AppendToList(ctx context.Context, collection, id, field string, values ...string) error {
	if err := f.appendErr[collection]; err != nil {
		return err
	}
	return f.Store.AppendToList(ctx, collection, id, field, values...)
}

func (f *flakyStore) Put(ctx context.Context, collection string, doc domain.Document) error {
	if err := f.putErr[collection]; err != nil {
		return err
	}
	return f.Store.Put(ctx, collection, doc)
}

func (f *flakyStore) Scan(ctx context.Context, collection string) ([]domain.Document, error) {
	if err := f.scanErr[collection]; err != nil {
		return nil, err
	}
	return f.Store.Scan(ctx, collection)
}

type fixture struct {
	store     *flakyStore
	users     domain.UserRepository
	events    domain.EventRepository
	logs      domain.NotificationLogRepository
	relations domain.RelationshipService
	query     domain.QueryService
}

func newFixture() *fixture {
	store := newFlakyStore()
	users := docstore.NewUserRepository(store)
	events := docstore.NewEventRepository(store)
	return &fixture{
		store:     store,
		users:     users,
		events:    events,
		logs:      docstore.NewNotificationLogRepository(store),
		relations: NewRelationshipService(users, events, discardLogger(), testTimeout),
		query:     NewQueryService(users, testTimeout),
	}
}

func (f *fixture) createUser(t *testing.T, u *domain.User) *domain.User {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func newEvent(owner string, hosts ...string) *domain.Event {
	return &domain.Event{
		Slug:        "go-meetup",
		Title:       "Go Meetup",
		StartAt:     "2025-10-01T10:00:00Z",
		EndAt:       "2025-10-01T12:00:00Z",
		MaxCapacity: 100,
		Owner:       owner,
		Hosts:       hosts,
	}
}
