// Package dashboard is the only surface the UI talks to. It composes the
// artifact loader, normalizer, confidence model, and equity simulator
// into a read-only view-model API with a queryable last error.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"forex-dashboard/internal/artifact"
	"forex-dashboard/internal/confidence"
	"forex-dashboard/internal/domain"
	"forex-dashboard/internal/equity"
	"forex-dashboard/internal/normalize"
	"forex-dashboard/internal/observability"
)

// Service holds the loaded view model. Reads observe either a fully
// populated snapshot or the pre-load sentinel (nil summary, empty lists);
// upstream failures surface through LastError, never through panics.
type Service struct {
	loader   *artifact.Loader
	sim      *equity.Simulator
	metrics  *observability.Metrics
	onReload func(generation string)

	mu      sync.RWMutex
	model   *normalize.Model
	conf    *domain.Confidence
	dropped []*normalize.PairError
	loadErr error
}

// Options contains configuration for creating a Service. Loader is
// required; the rest are optional.
type Options struct {
	Loader    *artifact.Loader
	Simulator *equity.Simulator
	Metrics   *observability.Metrics
	OnReload  func(generation string)
}

// New creates a dashboard service. Nothing is loaded until LoadAll.
func New(opts Options) *Service {
	sim := opts.Simulator
	if sim == nil {
		sim = equity.NewSimulator()
	}
	return &Service{
		loader:   opts.Loader,
		sim:      sim,
		metrics:  opts.Metrics,
		onReload: opts.OnReload,
	}
}

// LoadAll resolves both artifacts and builds the view model. The
// comprehensive artifact is read first and its failure is fatal; a
// confidence failure silently downgrades to the documented fallbacks.
// Concurrent calls share one in-flight read per artifact.
func (s *Service) LoadAll(ctx context.Context) error {
	started := time.Now()

	comp, err := s.loader.ReadComprehensive(ctx)
	s.observeLoad(artifact.ComprehensiveFile, started, err)
	if err != nil {
		s.storeFailure(fmt.Errorf("load comprehensive artifact: %w", err))
		return err
	}

	model, dropped, err := normalize.Normalize(comp)
	if err != nil {
		s.storeFailure(fmt.Errorf("normalize artifact: %w", err))
		return err
	}

	confStart := time.Now()
	rawConf, confErr := s.loader.ReadConfidence(ctx)
	s.observeLoad(artifact.ConfidenceFile, confStart, confErr)
	if confErr != nil {
		// Non-fatal: Derive falls back to the documented defaults.
		rawConf = nil
	}

	conf := confidence.Derive(rawConf, confidence.BacktestAggregates{
		MeanWinRate:      model.Summary.AvgWinRate,
		MeanProfitFactor: model.Summary.AvgProfitFactor,
	})

	s.mu.Lock()
	s.model = model
	s.conf = &conf
	s.dropped = dropped
	s.loadErr = nil
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.PairsNormalized.Add(float64(len(model.Pairs)))
		s.metrics.PairsDropped.Add(float64(len(dropped)))
	}
	if s.onReload != nil {
		s.onReload(s.loader.Generation())
	}
	return nil
}

// Invalidate drops the cached artifacts and the view model. The next
// LoadAll re-reads everything under a new cache generation.
func (s *Service) Invalidate() {
	s.loader.Invalidate()

	s.mu.Lock()
	s.model = nil
	s.conf = nil
	s.dropped = nil
	s.loadErr = nil
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.CacheInvalidations.Inc()
	}
}

// Generation returns the loader's current cache generation id.
func (s *Service) Generation() string {
	return s.loader.Generation()
}

// LastError reports the most recent load problem: a fatal load error if
// one occurred, otherwise the per-pair normalization errors joined,
// otherwise nil.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return s.loadErr
	}
	if len(s.dropped) == 0 {
		return nil
	}
	errs := make([]error, len(s.dropped))
	for i, d := range s.dropped {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// DroppedPairs returns the per-pair normalization errors from the last
// successful load.
func (s *Service) DroppedPairs() []*normalize.PairError {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*normalize.PairError, len(s.dropped))
	copy(result, s.dropped)
	return result
}

// Summary returns the optimization summary, or nil before a successful
// load (the UI renders its fallback on nil).
func (s *Service) Summary() *domain.OptimizationSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.model == nil {
		return nil
	}
	summary := s.model.Summary
	return &summary
}

// Pair returns one pair's stats, or nil if unknown or not loaded.
func (s *Service) Pair(id domain.PairID) *domain.PairStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.model == nil {
		return nil
	}
	p, ok := s.model.ByID[id]
	if !ok {
		return nil
	}
	// Return a copy
	pairCopy := *p
	return &pairCopy
}

// Confidence returns the live-trading adjustment, or nil before a
// successful load.
func (s *Service) Confidence() *domain.Confidence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.conf == nil {
		return nil
	}
	confCopy := *s.conf
	return &confCopy
}

// EquityCurve simulates the equity curve for one loaded pair.
func (s *Service) EquityCurve(id domain.PairID, params equity.Params) ([]domain.EquityPoint, error) {
	s.mu.RLock()
	model := s.model
	conf := s.conf
	s.mu.RUnlock()

	if model == nil || conf == nil {
		return nil, fmt.Errorf("%w: model not loaded", equity.ErrInvalidInput)
	}
	pair, ok := model.ByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pair %s", equity.ErrInvalidInput, id)
	}

	points, err := s.sim.Simulate(pair, *conf, params)
	if s.metrics != nil {
		if err != nil {
			s.metrics.SimulationErrors.Inc()
		} else {
			s.metrics.CurvesSimulated.Inc()
		}
	}
	return points, err
}

// storeFailure records a fatal load error and clears any partial state.
func (s *Service) storeFailure(err error) {
	s.mu.Lock()
	s.model = nil
	s.conf = nil
	s.dropped = nil
	s.loadErr = err
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.LoadFailures.Inc()
	}
}

func (s *Service) observeLoad(name string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.ArtifactLoads.WithLabelValues(name, result).Inc()
	s.metrics.ArtifactLoadTime.WithLabelValues(name).Observe(time.Since(started).Seconds())
}
