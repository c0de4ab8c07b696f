package memory

import (
	"context"
	"sync"

	"forex-dashboard/internal/domain"
	"forex-dashboard/internal/storage"
)

// curveKey identifies one archived curve.
type curveKey struct {
	pairID domain.PairID
	seed   int64
}

// EquityArchive is an in-memory implementation of storage.EquityArchive.
type EquityArchive struct {
	mu   sync.RWMutex
	data map[curveKey][]domain.EquityPoint
}

// NewEquityArchive creates a new in-memory equity archive.
func NewEquityArchive() *EquityArchive {
	return &EquityArchive{
		data: make(map[curveKey][]domain.EquityPoint),
	}
}

// Compile-time interface check.
var _ storage.EquityArchive = (*EquityArchive)(nil)

// InsertCurve archives one simulated curve. Returns ErrDuplicateKey if
// the (pair_id, seed) key already exists.
func (a *EquityArchive) InsertCurve(_ context.Context, pairID domain.PairID, seed int64, points []domain.EquityPoint) error {
	if pairID == "" || len(points) == 0 {
		return storage.ErrInvalidInput
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := curveKey{pairID: pairID, seed: seed}
	if _, exists := a.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	curve := make([]domain.EquityPoint, len(points))
	copy(curve, points)
	a.data[key] = curve
	return nil
}

// GetCurve retrieves an archived curve ordered by bucket ASC.
func (a *EquityArchive) GetCurve(_ context.Context, pairID domain.PairID, seed int64) ([]domain.EquityPoint, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	curve, exists := a.data[curveKey{pairID: pairID, seed: seed}]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	result := make([]domain.EquityPoint, len(curve))
	copy(result, curve)
	return result, nil
}
