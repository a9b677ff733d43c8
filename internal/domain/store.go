package domain

import "context"

// Collection names used by the repositories.
const (
	CollectionUsers     = "users"
	CollectionEvents    = "events"
	CollectionEmailLogs = "email_logs"
)

// Document is a schemaless item in a collection. Every document carries an "id" key.
// Values are JSON-compatible: strings, float64 numbers, bools, []any and map[string]any.
type Document map[string]any

// ID returns the document identity or "" when absent.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Store is the key-value adapter every repository is built on.
// Implementations must return ErrNotFound for absent items and wrap
// connectivity failures with ErrStoreUnavailable.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	// Put fully replaces the document keyed by doc.ID().
	Put(ctx context.Context, collection string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
	// Scan returns every document in the store's native, stable order.
	Scan(ctx context.Context, collection string) ([]Document, error)
	// AppendToList creates field as an empty list when absent and appends values,
	// in a single operation that is safe under concurrent callers on the same key.
	AppendToList(ctx context.Context, collection, id, field string, values ...string) error
	// UpdateFields sets only the given top-level fields of an existing document.
	UpdateFields(ctx context.Context, collection, id string, fields Document) error
}
