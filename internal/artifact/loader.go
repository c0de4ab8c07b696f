package artifact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultReadTimeout is the soft per-artifact read deadline. Exceeding it
// surfaces ErrUnreadable.
const DefaultReadTimeout = 5 * time.Second

// Loader reads, parses, and caches the two artifact documents. Results
// are cached per generation; only an explicit Invalidate drops them.
// Concurrent readers share a single in-flight fetch per artifact.
type Loader struct {
	source  Source
	timeout time.Duration

	mu         sync.Mutex
	generation string
	comp       *Comprehensive
	compErr    error
	compDone   bool
	conf       *Confidence
	confErr    error
	confDone   bool
	flights    map[string]*flight
}

// LoaderOptions contains configuration for creating a Loader.
type LoaderOptions struct {
	Source  Source
	Timeout time.Duration // zero means DefaultReadTimeout
}

// flight is one shared in-progress fetch.
type flight struct {
	done chan struct{}
	data []byte
	err  error
}

// NewLoader creates an artifact loader over the given source.
func NewLoader(opts LoaderOptions) *Loader {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &Loader{
		source:     opts.Source,
		timeout:    timeout,
		generation: uuid.NewString(),
		flights:    make(map[string]*flight),
	}
}

// Generation returns the current cache generation id. It changes on every
// Invalidate and is included in reload notifications.
func (l *Loader) Generation() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Invalidate drops both cached documents and bumps the generation.
// In-flight reads complete against the old generation and are discarded.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation = uuid.NewString()
	l.comp, l.compErr, l.compDone = nil, nil, false
	l.conf, l.confErr, l.confDone = nil, nil, false
	l.flights = make(map[string]*flight)
}

// ReadComprehensive returns the parsed comprehensive document. Failure is
// fatal to the dashboard; the caller renders a fallback.
func (l *Loader) ReadComprehensive(ctx context.Context) (*Comprehensive, error) {
	l.mu.Lock()
	if l.compDone {
		doc, err := l.comp, l.compErr
		l.mu.Unlock()
		return doc, err
	}
	gen := l.generation
	l.mu.Unlock()

	data, err := l.read(ctx, ComprehensiveFile)
	if err != nil {
		if ctx.Err() != nil {
			// Caller cancelled; leave the cache untouched.
			return nil, err
		}
		_, err = l.storeComprehensive(gen, nil, err)
		return nil, err
	}

	doc, parseErr := ParseComprehensive(data)
	return l.storeComprehensive(gen, doc, parseErr)
}

// ReadConfidence returns the parsed confidence document. Failure here is
// non-fatal; the confidence model falls back to documented defaults.
func (l *Loader) ReadConfidence(ctx context.Context) (*Confidence, error) {
	l.mu.Lock()
	if l.confDone {
		doc, err := l.conf, l.confErr
		l.mu.Unlock()
		return doc, err
	}
	gen := l.generation
	l.mu.Unlock()

	data, err := l.read(ctx, ConfidenceFile)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		_, err = l.storeConfidence(gen, nil, err)
		return nil, err
	}

	doc, parseErr := ParseConfidence(data)
	return l.storeConfidence(gen, doc, parseErr)
}

// read waits on the shared fetch for the named artifact, starting one if
// none is in flight. The fetch itself runs detached with its own timeout
// so one caller's cancellation cannot fail the others.
func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	l.mu.Lock()
	f, ok := l.flights[name]
	if !ok {
		f = &flight{done: make(chan struct{})}
		l.flights[name] = f
		go l.fetch(name, f)
	}
	l.mu.Unlock()

	select {
	case <-f.done:
		return f.data, f.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, ctx.Err())
	}
}

// fetch performs the actual source read under the soft timeout. The
// read runs in its own goroutine so a source that ignores its context
// still resolves the flight when the deadline passes.
func (l *Loader) fetch(name string, f *flight) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	res := make(chan result, 1)
	go func() {
		data, err := l.source.Fetch(ctx, name)
		res <- result{data, err}
	}()

	var data []byte
	var err error
	select {
	case r := <-res:
		data, err = r.data, r.err
		if err != nil && !errors.Is(err, ErrMissing) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %s: read timed out after %s", ErrUnreadable, name, l.timeout)
		}
	case <-ctx.Done():
		err = fmt.Errorf("%w: %s: read timed out after %s", ErrUnreadable, name, l.timeout)
	}

	f.data, f.err = data, err
	close(f.done)

	l.mu.Lock()
	if l.flights[name] == f {
		delete(l.flights, name)
	}
	l.mu.Unlock()
}

// storeComprehensive records the load outcome for the given generation.
// If the loader was invalidated mid-load the result is handed back
// uncached; if another load won the race, its cached outcome wins.
func (l *Loader) storeComprehensive(gen string, doc *Comprehensive, err error) (*Comprehensive, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		return doc, err
	}
	if !l.compDone {
		l.comp, l.compErr, l.compDone = doc, err, true
	}
	return l.comp, l.compErr
}

func (l *Loader) storeConfidence(gen string, doc *Confidence, err error) (*Confidence, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		return doc, err
	}
	if !l.confDone {
		l.conf, l.confErr, l.confDone = doc, err, true
	}
	return l.conf, l.confErr
}
