package domain

// ConfidenceSource tags where the live-trading adjustments came from.
type ConfidenceSource string

// Confidence provenance constants.
const (
	// ConfidenceExtracted means the adjustments were read from the
	// confidence artifact's realistic_expectations block.
	ConfidenceExtracted ConfidenceSource = "extracted"

	// ConfidenceFallback means the artifact was absent or incomplete and
	// the documented default multipliers were applied.
	ConfidenceFallback ConfidenceSource = "fallback"
)

// Fallback multipliers applied to the backtest means when the confidence
// artifact provides no explicit expectations. Roughly an 18% win-rate
// haircut and a 28% profit-factor haircut.
const (
	FallbackWinRateMultiplier      = 0.82
	FallbackProfitFactorMultiplier = 0.72
)

// Documentation-default ranges used when the artifact provides none.
var (
	FallbackWinRateRange      = Range{Min: 48, Max: 52}  // percent
	FallbackProfitFactorRange = Range{Min: 1.8, Max: 2.4}
)

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// DegradationFactor is a named qualitative reason live results lag the
// backtest, with a signed percent impact. Descriptive only; the simulator
// consumes the scalar adjustments, never the factor list.
type DegradationFactor struct {
	Factor        string
	ImpactPercent float64
	Reasoning     string
}

// Confidence carries the live-trading adjustment derived from the
// confidence artifact, or from documented fallbacks when it is missing.
type Confidence struct {
	Source ConfidenceSource

	// Multiplicative adjustments in (0, 1], live value / backtest mean.
	WinRateAdjustment      float64
	ProfitFactorAdjustment float64

	// Expected live values. Always <= their backtest counterparts.
	LiveWinRate      float64 // percent
	LiveProfitFactor float64

	WinRateRange      Range // percent
	ProfitFactorRange Range

	DegradationFactors []DegradationFactor
	TotalAdjustmentPct float64 // sum of factor impacts, display only

	Summary string // free-text realistic_expectation, may be empty
}
