package storage

import (
	"context"

	"forex-dashboard/internal/domain"
)

// ArtifactStore holds artifact documents published by the offline
// optimization pipeline. Documents are keyed by artifact file name and
// replaced wholesale on each pipeline run.
type ArtifactStore interface {
	// Put stores or replaces the named document.
	Put(ctx context.Context, name string, payload []byte) error

	// Get retrieves the named document. Returns ErrNotFound if not exists.
	Get(ctx context.Context, name string) ([]byte, error)
}

// EquityArchive stores simulated equity curves for offline analysis.
// Curves are keyed by (pair_id, seed); inserting an existing key returns
// ErrDuplicateKey.
type EquityArchive interface {
	// InsertCurve archives one simulated curve.
	InsertCurve(ctx context.Context, pairID domain.PairID, seed int64, points []domain.EquityPoint) error

	// GetCurve retrieves an archived curve ordered by bucket ASC.
	// Returns ErrNotFound if no points exist for the key.
	GetCurve(ctx context.Context, pairID domain.PairID, seed int64) ([]domain.EquityPoint, error)
}
