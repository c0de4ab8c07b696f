package reporting

import (
	"errors"
	"time"

	"forex-dashboard/internal/dashboard"
	"forex-dashboard/internal/domain"
)

// ErrNotLoaded is returned when the dashboard model has not been loaded.
var ErrNotLoaded = errors.New("reporting: dashboard model not loaded")

// Generator produces reports from the loaded dashboard model.
type Generator struct {
	svc *dashboard.Service
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(svc *dashboard.Service) *Generator {
	return &Generator{
		svc: svc,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete optimization report.
func (g *Generator) Generate() (*Report, error) {
	summary := g.svc.Summary()
	conf := g.svc.Confidence()
	if summary == nil || conf == nil {
		return nil, ErrNotLoaded
	}

	pairs := g.svc.Pairs(dashboard.Filter{})

	report := &Report{
		GeneratedAt: g.now(),
		Summary:     *summary,
		TierRows:    tierRows(pairs),
		PairRows:    pairRows(pairs),
		Confidence:  *conf,
	}

	for _, d := range g.svc.DroppedPairs() {
		report.DroppedPairs = append(report.DroppedPairs, DroppedPairRow{
			PairID: d.PairID,
			Reason: d.Reason,
		})
	}

	return report, nil
}

// tierRows aggregates per-tier means. Empty tiers keep a zero row so the
// table shape is stable across artifacts.
func tierRows(pairs []*domain.PairStats) []TierRow {
	rows := make([]TierRow, 0, len(domain.Tiers))
	for _, tier := range domain.Tiers {
		row := TierRow{Tier: tier, Label: tier.Label(), Icon: tier.Icon()}

		var sumPF, sumWR, sumRet float64
		for _, p := range pairs {
			if p.Tier != tier {
				continue
			}
			row.Pairs++
			sumPF += p.ProfitFactor
			sumWR += p.WinRate
			sumRet += p.AnnualReturnPct
		}
		if row.Pairs > 0 {
			n := float64(row.Pairs)
			row.AvgPF = sumPF / n
			row.AvgWinRate = sumWR / n
			row.AvgAnnualRet = sumRet / n
		}
		rows = append(rows, row)
	}
	return rows
}

func pairRows(pairs []*domain.PairStats) []PairRow {
	rows := make([]PairRow, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, PairRow{
			PairID:               p.PairID,
			Tier:                 p.Tier,
			TotalTrades:          p.TotalTrades,
			WinRate:              p.WinRate,
			ProfitFactor:         p.ProfitFactor,
			AnnualReturnPct:      p.AnnualReturnPct,
			TotalPips:            p.TotalPips,
			MaxConsecutiveLosses: p.MaxConsecutiveLosses,
			EMAConfig:            p.EMAConfig,
		})
	}
	return rows
}
