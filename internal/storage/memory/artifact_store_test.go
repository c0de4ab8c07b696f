package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"forex-dashboard/internal/storage"
)

func TestArtifactStore_PutAndGet(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	err := store.Put(ctx, "comprehensive_test_results.json", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "comprehensive_test_results.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("payload mismatch: got %s", got)
	}
}

func TestArtifactStore_PutReplaces(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	if err := store.Put(ctx, "doc.json", []byte(`v1`)); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := store.Put(ctx, "doc.json", []byte(`v2`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := store.Get(ctx, "doc.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("expected replacement, got %s", got)
	}
}

func TestArtifactStore_GetNotFound(t *testing.T) {
	store := NewArtifactStore()

	_, err := store.Get(context.Background(), "missing.json")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestArtifactStore_InvalidInput(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	if err := store.Put(ctx, "", []byte(`x`)); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if err := store.Put(ctx, "doc.json", nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty payload: expected ErrInvalidInput, got %v", err)
	}
}

func TestArtifactStore_CopiesPayload(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	payload := []byte(`{"a":1}`)
	if err := store.Put(ctx, "doc.json", payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	payload[0] = 'X'

	got, err := store.Get(ctx, "doc.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("stored payload aliased caller slice: %s", got)
	}

	got[1] = 'Y'
	again, _ := store.Get(ctx, "doc.json")
	if string(again) != `{"a":1}` {
		t.Errorf("returned payload aliased internal storage: %s", again)
	}
}

func TestArtifactStore_ConcurrentAccess(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, "doc.json", []byte(`{"a":1}`))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, "doc.json")
		}()
	}
	wg.Wait()
}
