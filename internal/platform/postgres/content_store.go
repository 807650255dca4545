package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/store"
)

// ContentStore implements the store.ContentStore interface using a
// PostgreSQL database. Each concept is one JSONB row keyed by its ID.
type ContentStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewContentStore creates a new PostgreSQL implementation of the
// ContentStore interface.
func NewContentStore(db *sql.DB, logger *slog.Logger) *ContentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentStore{
		db:     db,
		logger: logger.With(slog.String("component", "content_store")),
	}
}

// Ensure ContentStore implements store.ContentStore interface
var _ store.ContentStore = (*ContentStore)(nil)

// SaveConcept implements store.ContentStore.SaveConcept.
func (s *ContentStore) SaveConcept(ctx context.Context, concept *domain.Concept) error {
	if concept == nil {
		return store.NewStoreError("concept", "save", "concept is nil", store.ErrInvalidEntity)
	}
	if concept.ID == "" {
		return store.NewStoreError("concept", "save", "concept id is empty", store.ErrInvalidEntity)
	}
	if err := concept.Validate(); err != nil {
		return store.NewStoreError("concept", "save", "concept failed validation",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	raw, err := json.Marshal(concept)
	if err != nil {
		return store.NewStoreError("concept", "save", "failed to encode concept", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO concepts (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		concept.ID, raw)
	if err != nil {
		return store.NewStoreError("concept", "save", "upsert failed", err)
	}

	return nil
}

// GetConcept implements store.ContentStore.GetConcept.
func (s *ContentStore) GetConcept(ctx context.Context, id string) (*domain.Concept, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM concepts WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrConceptNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("concept", "get", "query failed", err)
	}

	var concept domain.Concept
	if err := json.Unmarshal(raw, &concept); err != nil {
		return nil, store.NewStoreError("concept", "get", "failed to decode concept", err)
	}

	return &concept, nil
}

// ListConcepts implements store.ContentStore.ListConcepts.
func (s *ContentStore) ListConcepts(ctx context.Context) ([]*domain.Concept, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM concepts ORDER BY created_at, id`)
	if err != nil {
		return nil, store.NewStoreError("concept", "list", "query failed", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "failed to close rows",
				slog.String("error", closeErr.Error()))
		}
	}()

	concepts := make([]*domain.Concept, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, store.NewStoreError("concept", "list", "scan failed", err)
		}

		var concept domain.Concept
		if err := json.Unmarshal(raw, &concept); err != nil {
			// A single corrupt row should not hide the rest of the library.
			s.logger.WarnContext(ctx, "skipping unparseable concept row",
				slog.String("error", err.Error()))
			continue
		}
		concepts = append(concepts, &concept)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("concept", "list", "iteration failed", err)
	}

	return concepts, nil
}

// DeleteConcept implements store.ContentStore.DeleteConcept.
func (s *ContentStore) DeleteConcept(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM concepts WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("concept", "delete", "delete failed", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("concept", "delete", "rows affected unavailable", err)
	}
	if affected == 0 {
		return store.ErrConceptNotFound
	}

	return nil
}
