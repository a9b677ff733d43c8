// Package docstore implements the domain repositories on top of a domain.Store.
// Typed aggregates are converted to and from schemaless documents here, and
// absent relationship lists become empty lists on the way out.
package docstore

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"eventcrm/internal/domain"
)

func newID() string {
	return uuid.NewString()
}

func toDocument(v any) (domain.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

func fromDocument(doc domain.Document, dest any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode document %q: %w", doc.ID(), err)
	}
	return nil
}

// without returns a copy of doc minus the given keys.
func without(doc domain.Document, keys ...string) domain.Document {
	out := make(domain.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
