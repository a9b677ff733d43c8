package docstore

import (
	"context"
	"fmt"

	"eventcrm/internal/domain"
)

type notificationLogRepository struct {
	store domain.Store
}

// NewNotificationLogRepository returns a domain.NotificationLogRepository backed by the email_logs collection.
func NewNotificationLogRepository(store domain.Store) domain.NotificationLogRepository {
	return &notificationLogRepository{store: store}
}

func (r *notificationLogRepository) Create(ctx context.Context, entry *domain.NotificationLogEntry) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	doc, err := toDocument(entry)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, domain.CollectionEmailLogs, doc)
}

func (r *notificationLogRepository) List(ctx context.Context) ([]*domain.NotificationLogEntry, error) {
	docs, err := r.store.Scan(ctx, domain.CollectionEmailLogs)
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.NotificationLogEntry, 0, len(docs))
	for _, doc := range docs {
		entry := &domain.NotificationLogEntry{}
		if err := fromDocument(doc, entry); err != nil {
			return nil, fmt.Errorf("email log: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
