// Package normalize transforms raw artifact records into the typed view
// model consumed by the dashboard. Tier assignment, loss-sign convention,
// derived aggregates, and the JPY split all live here.
package normalize

import (
	"errors"
	"fmt"
	"math"

	"forex-dashboard/internal/artifact"
	"forex-dashboard/internal/domain"
)

// ErrTooManyFailures is returned when more than half of the input pairs
// violate an invariant. A handful of bad records degrade gracefully; a
// majority means the artifact itself is suspect.
var ErrTooManyFailures = errors.New("normalization failed for more than half of pairs")

// PairError describes one dropped pair.
type PairError struct {
	PairID domain.PairID
	Reason string
}

func (e *PairError) Error() string {
	return fmt.Sprintf("normalize %s: %s", e.PairID, e.Reason)
}

// Model is the normalized view model. Pairs preserves artifact order;
// artifact order is display-meaningful and must survive normalization.
type Model struct {
	Summary domain.OptimizationSummary
	Pairs   []*domain.PairStats
	ByID    map[domain.PairID]*domain.PairStats
}

// JPYPairs returns the pairs containing JPY, in artifact order.
func (m *Model) JPYPairs() []*domain.PairStats {
	var result []*domain.PairStats
	for _, p := range m.Pairs {
		if p.PairID.IsJPY() {
			result = append(result, p)
		}
	}
	return result
}

// NonJPYPairs returns the complement of JPYPairs, in artifact order.
func (m *Model) NonJPYPairs() []*domain.PairStats {
	var result []*domain.PairStats
	for _, p := range m.Pairs {
		if !p.PairID.IsJPY() {
			result = append(result, p)
		}
	}
	return result
}

// Normalize produces the view model from a parsed comprehensive artifact.
// Individual invalid pairs are dropped and reported; the call fails only
// when the drop rate exceeds half of the input.
func Normalize(raw *artifact.Comprehensive) (*Model, []*PairError, error) {
	var dropped []*PairError

	pairs := make([]*domain.PairStats, 0, len(raw.ProfitablePairs.Order))
	byID := make(map[domain.PairID]*domain.PairStats, len(raw.ProfitablePairs.Order))

	for _, id := range raw.ProfitablePairs.Order {
		stats, err := normalizePair(domain.PairID(id), raw.ProfitablePairs.ByID[id])
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		pairs = append(pairs, stats)
		byID[stats.PairID] = stats
	}

	if len(dropped)*2 > len(raw.ProfitablePairs.Order) {
		return nil, dropped, fmt.Errorf("%w: %d of %d dropped",
			ErrTooManyFailures, len(dropped), len(raw.ProfitablePairs.Order))
	}

	model := &Model{
		Summary: summarize(raw.OptimizationInfo, pairs),
		Pairs:   pairs,
		ByID:    byID,
	}
	return model, dropped, nil
}

// normalizePair validates and converts one raw record.
func normalizePair(id domain.PairID, raw *artifact.PairStats) (*domain.PairStats, *PairError) {
	fail := func(format string, args ...any) (*domain.PairStats, *PairError) {
		return nil, &PairError{PairID: id, Reason: fmt.Sprintf(format, args...)}
	}

	if !id.Valid() {
		return fail("invalid pair id")
	}
	if raw.TotalTrades <= 0 {
		return fail("total_trades must be positive, got %d", raw.TotalTrades)
	}
	if raw.Wins < 0 || raw.Losses < 0 {
		return fail("negative win/loss counts: wins=%d losses=%d", raw.Wins, raw.Losses)
	}
	if raw.Wins+raw.Losses != raw.TotalTrades {
		return fail("wins+losses != total_trades: %d+%d != %d", raw.Wins, raw.Losses, raw.TotalTrades)
	}
	if raw.ProfitFactor < 0 {
		return fail("negative profit_factor %.4f", raw.ProfitFactor)
	}
	if raw.MaxConsecutiveLosses < 0 {
		return fail("negative max_consecutive_losses %d", raw.MaxConsecutiveLosses)
	}

	winRate, err := artifact.ParsePercent(raw.WinRate)
	if err != nil {
		return fail("bad win_rate: %v", err)
	}
	if winRate < 0 || winRate > 100 {
		return fail("win_rate %.2f out of [0,100]", winRate)
	}

	// avg_loss sign varies across artifact vintages; enforce the internal
	// convention (signed <= 0, magnitude alongside).
	absAvgLoss := math.Abs(raw.AvgLoss)

	annualReturn, err := artifact.ParsePercent(raw.AnnualReturn)
	if err != nil {
		// Older artifacts omit annual_return; estimate from the same
		// fractional-risk expectancy the equity simulator compounds.
		annualReturn = estimateAnnualReturn(winRate, raw.AvgWin, absAvgLoss, raw.TotalTrades)
	}

	tier := domain.ClassifyTier(raw.ProfitFactor)

	return &domain.PairStats{
		PairID:               id,
		TotalTrades:          raw.TotalTrades,
		Wins:                 raw.Wins,
		Losses:               raw.Losses,
		WinRate:              winRate,
		ProfitFactor:         raw.ProfitFactor,
		TotalPips:            raw.TotalPips,
		GrossProfit:          raw.GrossProfit,
		GrossLoss:            raw.GrossLoss,
		AvgWin:               raw.AvgWin,
		AvgLoss:              -absAvgLoss,
		AbsAvgLoss:           absAvgLoss,
		MaxConsecutiveLosses: raw.MaxConsecutiveLosses,
		AnnualReturnPct:      annualReturn,
		EMAConfig:            raw.EMAConfig,
		Tier:                 tier,
		TierIcon:             tier.Icon(),
	}, nil
}

// estimateAnnualReturn approximates an annual return from per-trade
// expectancy in R multiples, 0.5% risk per trade, over the artifact's
// two-year test window.
func estimateAnnualReturn(winRate, avgWin, absAvgLoss float64, totalTrades int) float64 {
	if absAvgLoss == 0 {
		return 0
	}
	p := winRate / 100
	expectancyR := p*(avgWin/absAvgLoss) - (1 - p)
	tradesPerYear := float64(totalTrades) / 2
	return expectancyR * 0.005 * tradesPerYear * 100
}

// summarize computes the header aggregates. Success rate, best performer,
// and the profitable-pair means are recomputed from the normalized pairs;
// the artifact's own summary_stats block is informational only.
func summarize(info artifact.OptimizationInfo, pairs []*domain.PairStats) domain.OptimizationSummary {
	summary := domain.OptimizationSummary{
		GeneratedAt:      info.Timestamp,
		StrategyVersion:  info.StrategyVersion,
		TotalPairsTested: info.TotalPairsTested,
		TotalTrades:      info.TotalTrades,
		Methodology:      info.Methodology,
	}
	if len(pairs) == 0 {
		return summary
	}

	profitable := 0
	var sumWinRate, sumPF float64
	var best *domain.PairStats

	for _, p := range pairs {
		if !p.Tier.Profitable() {
			continue
		}
		profitable++
		sumWinRate += p.WinRate
		sumPF += p.ProfitFactor
		if betterPerformer(p, best) {
			best = p
		}
	}

	summary.SuccessRate = float64(profitable) / float64(len(pairs))
	if profitable > 0 {
		summary.AvgWinRate = sumWinRate / float64(profitable)
		summary.AvgProfitFactor = sumPF / float64(profitable)
	}
	if best != nil {
		summary.BestPerformer = best.PairID
		summary.BestAnnualReturn = best.AnnualReturnPct
	}
	return summary
}

// betterPerformer implements the argmax ordering: annual return, then
// profit factor, then lexicographically smaller pair id.
func betterPerformer(candidate, current *domain.PairStats) bool {
	if current == nil {
		return true
	}
	if candidate.AnnualReturnPct != current.AnnualReturnPct {
		return candidate.AnnualReturnPct > current.AnnualReturnPct
	}
	if candidate.ProfitFactor != current.ProfitFactor {
		return candidate.ProfitFactor > current.ProfitFactor
	}
	return candidate.PairID < current.PairID
}
