package memory

import (
	"context"
	"sync"

	"forex-dashboard/internal/storage"
)

// ArtifactStore is an in-memory implementation of storage.ArtifactStore.
type ArtifactStore struct {
	mu   sync.RWMutex
	data map[string][]byte // keyed by artifact name
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		data: make(map[string][]byte),
	}
}

// Compile-time interface check.
var _ storage.ArtifactStore = (*ArtifactStore)(nil)

// Put stores or replaces the named document.
func (s *ArtifactStore) Put(_ context.Context, name string, payload []byte) error {
	if name == "" || len(payload) == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to prevent external mutation
	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.data[name] = buf
	return nil
}

// Get retrieves the named document. Returns ErrNotFound if not exists.
func (s *ArtifactStore) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.data[name]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
