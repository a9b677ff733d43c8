package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"eventcrm/internal/domain"

	"github.com/lib/pq"
)

// Schema creates the single JSONB document table backing every collection.
// seq fixes the scan order to insertion order; upserts keep the original seq.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	seq        BIGSERIAL NOT NULL,
	collection TEXT      NOT NULL,
	id         TEXT      NOT NULL,
	doc        JSONB     NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);
`

// DocumentStore implements domain.Store on a single JSONB table.
type DocumentStore struct {
	DB *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", domain.ErrStoreUnavailable, err)
	}
	return db, nil
}

// NewDocumentStore returns a domain.Store that keeps documents in the documents table.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{DB: db}
}

// EnsureCollections creates the documents table. Collections are rows, so names need no provisioning.
func (s *DocumentStore) EnsureCollections(ctx context.Context, _ ...string) error {
	if _, err := s.DB.ExecContext(ctx, Schema); err != nil {
		return classify("create documents table", err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	var raw []byte
	if err := s.DB.QueryRowContext(ctx, query, collection, id).Scan(&raw); err != nil {
		return nil, classify("get document", err)
	}
	return decode(raw)
}

func (s *DocumentStore) Put(ctx context.Context, collection string, doc domain.Document) error {
	id := doc.ID()
	if id == "" {
		return fmt.Errorf("put %s: document has no id", collection)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	query := `
		INSERT INTO documents (collection, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc
	`
	if _, err := s.DB.ExecContext(ctx, query, collection, id, string(raw)); err != nil {
		return classify("put document", err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	res, err := s.DB.ExecContext(ctx, query, collection, id)
	if err != nil {
		return classify("delete document", err)
	}
	return requireRow(res)
}

func (s *DocumentStore) Scan(ctx context.Context, collection string) ([]domain.Document, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = $1
		ORDER BY seq
	`
	rows, err := s.DB.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, classify("scan documents", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, classify("scan documents", err)
		}
		doc, err := decode(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("scan documents", err)
	}
	return docs, nil
}

// AppendToList runs as one UPDATE, so the row lock serialises concurrent appends to the same key.
func (s *DocumentStore) AppendToList(ctx context.Context, collection, id, field string, values ...string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	query := `
		UPDATE documents
		SET doc = jsonb_set(doc, ARRAY[$3::text], COALESCE(doc->($3::text), '[]'::jsonb) || $4::jsonb, true)
		WHERE collection = $1 AND id = $2
	`
	res, err := s.DB.ExecContext(ctx, query, collection, id, field, string(raw))
	if err != nil {
		return classify("append to list", err)
	}
	return requireRow(res)
}

func (s *DocumentStore) UpdateFields(ctx context.Context, collection, id string, fields domain.Document) error {
	patch := make(domain.Document, len(fields))
	for k, v := range fields {
		if k != "id" {
			patch[k] = v
		}
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	query := `
		UPDATE documents
		SET doc = doc || $3::jsonb
		WHERE collection = $1 AND id = $2
	`
	res, err := s.DB.ExecContext(ctx, query, collection, id, string(raw))
	if err != nil {
		return classify("update fields", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return classify("rows affected", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func decode(raw []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// classify maps driver errors onto the domain taxonomy.
func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
