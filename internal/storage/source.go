package storage

import (
	"context"
	"errors"
	"fmt"

	"forex-dashboard/internal/artifact"
)

// ArtifactSource adapts an ArtifactStore to the loader's Source
// interface, so the dashboard can read artifacts straight from the table
// the optimization pipeline publishes into.
type ArtifactSource struct {
	store ArtifactStore
}

// NewArtifactSource wraps a store as an artifact source.
func NewArtifactSource(store ArtifactStore) *ArtifactSource {
	return &ArtifactSource{store: store}
}

// Compile-time interface check.
var _ artifact.Source = (*ArtifactSource)(nil)

// Fetch returns the stored document, mapping storage errors onto the
// loader's taxonomy.
func (s *ArtifactSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", artifact.ErrMissing, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", artifact.ErrUnreadable, name, err)
	}
	return data, nil
}
