package storage

import (
	"context"
	"errors"
	"testing"

	"forex-dashboard/internal/artifact"
)

// stubStore is a minimal ArtifactStore for exercising the adapter.
type stubStore struct {
	docs map[string][]byte
	err  error
}

func (s *stubStore) Put(_ context.Context, name string, payload []byte) error {
	s.docs[name] = payload
	return nil
}

func (s *stubStore) Get(_ context.Context, name string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func TestArtifactSource_Fetch(t *testing.T) {
	src := NewArtifactSource(&stubStore{docs: map[string][]byte{
		artifact.ComprehensiveFile: []byte(`{"x":1}`),
	}})

	data, err := src.Fetch(context.Background(), artifact.ComprehensiveFile)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != `{"x":1}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestArtifactSource_NotFoundMapsToMissing(t *testing.T) {
	src := NewArtifactSource(&stubStore{docs: map[string][]byte{}})

	_, err := src.Fetch(context.Background(), artifact.ConfidenceFile)
	if !errors.Is(err, artifact.ErrMissing) {
		t.Errorf("expected artifact.ErrMissing, got %v", err)
	}
}

func TestArtifactSource_OtherErrorsMapToUnreadable(t *testing.T) {
	src := NewArtifactSource(&stubStore{err: errors.New("connection refused")})

	_, err := src.Fetch(context.Background(), artifact.ComprehensiveFile)
	if !errors.Is(err, artifact.ErrUnreadable) {
		t.Errorf("expected artifact.ErrUnreadable, got %v", err)
	}
}
