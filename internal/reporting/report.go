package reporting

import (
	"time"

	"forex-dashboard/internal/domain"
)

// Report is the offline optimization report rendered by cmd/report.
type Report struct {
	// Metadata
	GeneratedAt time.Time

	// Header aggregates
	Summary domain.OptimizationSummary

	// Tier breakdown (all four tiers, display order)
	TierRows []TierRow

	// Per-pair metrics in artifact order
	PairRows []PairRow

	// Live-trading projection
	Confidence domain.Confidence

	// Pairs dropped during normalization
	DroppedPairs []DroppedPairRow
}

// TierRow is one row of the tier breakdown table.
type TierRow struct {
	Tier         domain.Tier
	Label        string
	Icon         string
	Pairs        int
	AvgPF        float64
	AvgWinRate   float64
	AvgAnnualRet float64
}

// PairRow is one row of the per-pair metrics table.
type PairRow struct {
	PairID               domain.PairID
	Tier                 domain.Tier
	TotalTrades          int
	WinRate              float64
	ProfitFactor         float64
	AnnualReturnPct      float64
	TotalPips            float64
	MaxConsecutiveLosses int
	EMAConfig            string
}

// DroppedPairRow records one normalization failure.
type DroppedPairRow struct {
	PairID domain.PairID
	Reason string
}
