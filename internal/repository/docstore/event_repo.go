package docstore

import (
	"context"
	"fmt"

	"eventcrm/internal/domain"
)

type eventRepository struct {
	store domain.Store
}

// NewEventRepository returns a domain.EventRepository backed by the events collection.
func NewEventRepository(store domain.Store) domain.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = newID()
	}
	e.Normalize()
	doc, err := toDocument(e)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, domain.CollectionEvents, doc)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	doc, err := r.store.Get(ctx, domain.CollectionEvents, id)
	if err != nil {
		return nil, err
	}
	return decodeEvent(doc)
}

func (r *eventRepository) UpdateDetails(ctx context.Context, e *domain.Event) error {
	e.Normalize()
	doc, err := toDocument(e)
	if err != nil {
		return err
	}
	fields := without(doc, "id", domain.FieldAttendees)
	for _, f := range []string{"description", "venue"} {
		if _, ok := fields[f]; !ok {
			fields[f] = ""
		}
	}
	return r.store.UpdateFields(ctx, domain.CollectionEvents, e.ID, fields)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, domain.CollectionEvents, id)
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	docs, err := r.store.Scan(ctx, domain.CollectionEvents)
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(docs))
	for _, doc := range docs {
		e, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *eventRepository) AppendAttendee(ctx context.Context, eventID, userID string) error {
	return r.store.AppendToList(ctx, domain.CollectionEvents, eventID, domain.FieldAttendees, userID)
}

func decodeEvent(doc domain.Document) (*domain.Event, error) {
	e := &domain.Event{}
	if err := fromDocument(doc, e); err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	e.Normalize()
	return e, nil
}
