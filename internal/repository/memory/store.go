// Package memory provides an in-process Store used for local development and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"eventcrm/internal/domain"
)

type collection struct {
	order []string
	items map[string][]byte
}

// Store keeps documents as encoded JSON so callers never share mutable state with it.
// Scan order is insertion order; replacing a document keeps its position.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{items: make(map[string][]byte)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	raw, ok := c.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return decode(raw)
}

func (s *Store) Put(ctx context.Context, collection string, doc domain.Document) error {
	id := doc.ID()
	if id == "" {
		return fmt.Errorf("put %s: document has no id", collection)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(collection)
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = raw
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := c.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return nil
}

// Scan decodes a snapshot of the collection taken under the read lock.
func (s *Store) Scan(ctx context.Context, collection string) ([]domain.Document, error) {
	s.mu.RLock()
	c, ok := s.collections[collection]
	if !ok {
		s.mu.RUnlock()
		return []domain.Document{}, nil
	}
	snapshot := make([][]byte, 0, len(c.order))
	for _, id := range c.order {
		snapshot = append(snapshot, c.items[id])
	}
	s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(snapshot))
	for _, raw := range snapshot {
		doc, err := decode(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) AppendToList(ctx context.Context, collection, id, field string, values ...string) error {
	return s.mutate(collection, id, func(doc domain.Document) error {
		var list []any
		switch existing := doc[field].(type) {
		case nil:
			list = []any{}
		case []any:
			list = existing
		default:
			return fmt.Errorf("append to %s/%s.%s: field is not a list", collection, id, field)
		}
		for _, v := range values {
			list = append(list, v)
		}
		doc[field] = list
		return nil
	})
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields domain.Document) error {
	return s.mutate(collection, id, func(doc domain.Document) error {
		for k, v := range fields {
			if k == "id" {
				continue
			}
			doc[k] = v
		}
		return nil
	})
}

// mutate applies fn to the decoded document while holding the write lock.
func (s *Store) mutate(collection, id string, fn func(domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection]
	if !ok {
		return domain.ErrNotFound
	}
	raw, ok := c.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc, err := decode(raw)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	c.items[id] = updated
	return nil
}

func decode(raw []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
