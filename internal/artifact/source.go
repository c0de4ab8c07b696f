package artifact

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source resolves an artifact document by name. Implementations map
// absence to ErrMissing and I/O failure to ErrUnreadable; schema checks
// happen in the loader after the fetch.
type Source interface {
	// Fetch returns the raw bytes of the named artifact.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FilesystemSource reads artifacts from a base directory, the layout the
// offline optimization pipeline writes:
//
//	<base>/comprehensive_test_results.json
//	<base>/confidence_analysis.json
type FilesystemSource struct {
	base string
}

// NewFilesystemSource creates a source rooted at the given directory.
func NewFilesystemSource(base string) *FilesystemSource {
	return &FilesystemSource{base: base}
}

// Compile-time interface check.
var _ Source = (*FilesystemSource)(nil)

// Fetch reads <base>/<name>.
func (s *FilesystemSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}

	data, err := os.ReadFile(filepath.Join(s.base, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	return data, nil
}

// FSSource reads artifacts from any fs.FS, e.g. an embed.FS carrying a
// frozen snapshot bundled with the binary.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over an fs.FS.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Compile-time interface check.
var _ Source = (*FSSource)(nil)

// Fetch reads the named file from the wrapped filesystem.
func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	return data, nil
}

// MemorySource serves artifacts from an in-memory map. Used in tests and
// as the frozen-bytes fallback when no directory is configured.
type MemorySource struct {
	docs map[string][]byte
}

// NewMemorySource creates a source over the given documents.
func NewMemorySource(docs map[string][]byte) *MemorySource {
	// Store copies to prevent external mutation
	copied := make(map[string][]byte, len(docs))
	for name, data := range docs {
		buf := make([]byte, len(data))
		copy(buf, data)
		copied[name] = buf
	}
	return &MemorySource{docs: copied}
}

// Compile-time interface check.
var _ Source = (*MemorySource)(nil)

// Fetch returns the named document or ErrMissing.
func (s *MemorySource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}

	data, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
