package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PostgresStore keeps every collection in a single documents table with a
// JSONB body. Containment (@>) drives FindOne/UpdateOne filters, which is
// as much query power as the services need.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresStore creates a document store backed by the given database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("growingtogether/docstore"),
	}
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			body       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		);
		CREATE INDEX IF NOT EXISTS documents_body_idx ON documents USING GIN (body);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Insert writes a new document. A primary-key collision maps to ErrDuplicate.
func (s *PostgresStore) Insert(ctx context.Context, collection, id string, doc any) error {
	ctx, span := s.tracer.Start(ctx, "docstore.insert",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("document.id", id),
		),
	)
	defer span.End()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`, collection, id, body, time.Now().UTC())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}

	span.SetAttributes(attribute.Bool("insert.success", true))
	return nil
}

// FindOne decodes the first document matching the filter into out.
func (s *PostgresStore) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	ctx, span := s.tracer.Start(ctx, "docstore.find_one",
		trace.WithAttributes(attribute.String("collection", collection)),
	)
	defer span.End()

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return fmt.Errorf("marshal filter: %w", err)
	}

	var body []byte
	err = s.db.QueryRowContext(ctx, `
		SELECT body FROM documents
		WHERE collection = $1 AND body @> $2
		LIMIT 1
	`, collection, filterJSON).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query document: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// Find decodes all matching documents into out, which must be a pointer to
// a slice. SortBy names a top-level body field; it is always supplied by
// code, never by a caller.
func (s *PostgresStore) Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error {
	ctx, span := s.tracer.Start(ctx, "docstore.find",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("sort.by", opts.SortBy),
		),
	)
	defer span.End()

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return fmt.Errorf("marshal filter: %w", err)
	}

	query := `SELECT body FROM documents WHERE collection = $1 AND body @> $2`
	args := []any{collection, filterJSON}

	if opts.SortBy != "" {
		direction := "ASC"
		if opts.Descending {
			direction = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY body->>'%s' %s", opts.SortBy, direction)
	}
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate documents: %w", err)
	}

	span.SetAttributes(attribute.Int("documents.found", len(docs)))
	return decodeSlice(docs, out)
}

// UpdateOne merges the patch into the first document matching the filter
// and reports how many documents matched (0 or 1).
func (s *PostgresStore) UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "docstore.update_one",
		trace.WithAttributes(attribute.String("collection", collection)),
	)
	defer span.End()

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return 0, fmt.Errorf("marshal filter: %w", err)
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return 0, fmt.Errorf("marshal patch: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET body = body || $3, updated_at = $4
		WHERE ctid IN (
			SELECT ctid FROM documents
			WHERE collection = $1 AND body @> $2
			LIMIT 1
		)
	`, collection, filterJSON, patchJSON, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("update document: %w", err)
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("documents.matched", matched))
	return matched, nil
}

// DeleteOne removes the first document matching the filter.
func (s *PostgresStore) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "docstore.delete_one",
		trace.WithAttributes(attribute.String("collection", collection)),
	)
	defer span.End()

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return 0, fmt.Errorf("marshal filter: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE ctid IN (
			SELECT ctid FROM documents
			WHERE collection = $1 AND body @> $2
			LIMIT 1
		)
	`, collection, filterJSON)
	if err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("documents.matched", matched))
	return matched, nil
}

// Count reports how many documents match the filter.
func (s *PostgresStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "docstore.count",
		trace.WithAttributes(attribute.String("collection", collection)),
	)
	defer span.End()

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return 0, fmt.Errorf("marshal filter: %w", err)
	}

	var count int64
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents
		WHERE collection = $1 AND body @> $2
	`, collection, filterJSON).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	span.SetAttributes(attribute.Int64("documents.counted", count))
	return count, nil
}

// decodeSlice re-marshals raw documents as one JSON array and decodes it
// into out, so callers work with their own domain slices.
func decodeSlice(docs []json.RawMessage, out any) error {
	buf, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("decode documents: %w", err)
	}
	return nil
}
