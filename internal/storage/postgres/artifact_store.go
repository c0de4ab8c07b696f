package postgres

import (
	"context"
	"fmt"

	"forex-dashboard/internal/storage"
)

// ArtifactStore implements storage.ArtifactStore using PostgreSQL. The
// optimization pipeline publishes each artifact document into the
// artifact_documents table; the dashboard reads them back by name.
type ArtifactStore struct {
	pool *Pool
}

// NewArtifactStore creates a new ArtifactStore.
func NewArtifactStore(pool *Pool) *ArtifactStore {
	return &ArtifactStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ArtifactStore = (*ArtifactStore)(nil)

// Put stores or replaces the named document.
func (s *ArtifactStore) Put(ctx context.Context, name string, payload []byte) error {
	if name == "" || len(payload) == 0 {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO artifact_documents (name, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, name, payload); err != nil {
		return fmt.Errorf("put artifact document: %w", err)
	}
	return nil
}

// Get retrieves the named document. Returns ErrNotFound if not exists.
func (s *ArtifactStore) Get(ctx context.Context, name string) ([]byte, error) {
	query := `
		SELECT payload
		FROM artifact_documents
		WHERE name = $1
	`

	var payload []byte
	if err := s.pool.QueryRow(ctx, query, name).Scan(&payload); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get artifact document: %w", err)
	}
	return payload, nil
}
