package domain

// PairStats holds the normalized backtest statistics for one pair.
// Produced by the normalizer; read-only from the caller's perspective.
type PairStats struct {
	PairID PairID

	// Trade counts. Wins + Losses == TotalTrades is enforced during
	// normalization; records violating it are dropped.
	TotalTrades int
	Wins        int
	Losses      int

	WinRate      float64 // percent, 0-100
	ProfitFactor float64 // gross profit / |gross loss|, >= 0

	TotalPips   float64
	GrossProfit float64
	GrossLoss   float64

	// AvgLoss is stored <= 0 regardless of the sign convention in the
	// artifact; AbsAvgLoss carries the magnitude the simulator consumes.
	AvgWin     float64
	AvgLoss    float64
	AbsAvgLoss float64

	MaxConsecutiveLosses int
	AnnualReturnPct      float64
	EMAConfig            string // opaque label, e.g. "EMA 10/20"

	Tier     Tier
	TierIcon string
}

// OptimizationSummary aggregates the whole artifact for the dashboard
// header cards. Best performer and success rate are recomputed from the
// normalized pairs, not taken from the artifact's summary_stats.
type OptimizationSummary struct {
	GeneratedAt      string // artifact timestamp, displayed verbatim
	StrategyVersion  string
	TotalPairsTested int
	TotalTrades      int
	SuccessRate      float64 // share of normalized pairs with a profitable tier, 0-1
	BestPerformer    PairID
	BestAnnualReturn float64 // percent
	AvgWinRate       float64 // mean over profitable pairs, percent
	AvgProfitFactor  float64 // mean over profitable pairs
	Methodology      string  // displayed verbatim, never hardcoded prose
}
