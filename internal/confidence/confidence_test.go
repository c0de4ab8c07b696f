package confidence

import (
	"math"
	"testing"

	"forex-dashboard/internal/artifact"
	"forex-dashboard/internal/domain"
)

func ptrFloat(f float64) *float64 {
	return &f
}

func TestDerive_NilArtifactFallsBack(t *testing.T) {
	agg := BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5}

	c := Derive(nil, agg)

	if c.Source != domain.ConfidenceFallback {
		t.Errorf("Source = %s, want fallback", c.Source)
	}
	// 60 * 0.82 = 49.2, 3.5 * 0.72 = 2.52
	if math.Abs(c.LiveWinRate-49.2) > 1e-9 {
		t.Errorf("LiveWinRate = %v, want 49.2", c.LiveWinRate)
	}
	if math.Abs(c.LiveProfitFactor-2.52) > 1e-9 {
		t.Errorf("LiveProfitFactor = %v, want 2.52", c.LiveProfitFactor)
	}
	if c.WinRateAdjustment != domain.FallbackWinRateMultiplier {
		t.Errorf("WinRateAdjustment = %v, want %v", c.WinRateAdjustment, domain.FallbackWinRateMultiplier)
	}
	if c.WinRateRange != domain.FallbackWinRateRange {
		t.Errorf("WinRateRange = %v, want fallback [48,52]", c.WinRateRange)
	}
	if c.ProfitFactorRange != domain.FallbackProfitFactorRange {
		t.Errorf("ProfitFactorRange = %v, want fallback [1.8,2.4]", c.ProfitFactorRange)
	}
}

func TestDerive_ExtractsExplicitExpectations(t *testing.T) {
	raw := &artifact.Confidence{
		RealityAdjustments: &artifact.RealityAdjustments{
			RealisticExpectations: &artifact.RealisticExpectations{
				WinRate:      ptrFloat(50),
				ProfitFactor: ptrFloat(2.1),
			},
			RealisticExpectation: "expect roughly half of backtest edge",
		},
	}
	agg := BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5}

	c := Derive(raw, agg)

	if c.Source != domain.ConfidenceExtracted {
		t.Errorf("Source = %s, want extracted", c.Source)
	}
	if c.LiveWinRate != 50 {
		t.Errorf("LiveWinRate = %v, want 50", c.LiveWinRate)
	}
	if c.LiveProfitFactor != 2.1 {
		t.Errorf("LiveProfitFactor = %v, want 2.1", c.LiveProfitFactor)
	}
	// 50/60 and 2.1/3.5
	if math.Abs(c.WinRateAdjustment-50.0/60.0) > 1e-9 {
		t.Errorf("WinRateAdjustment = %v, want %v", c.WinRateAdjustment, 50.0/60.0)
	}
	if math.Abs(c.ProfitFactorAdjustment-0.6) > 1e-9 {
		t.Errorf("ProfitFactorAdjustment = %v, want 0.6", c.ProfitFactorAdjustment)
	}
	if c.Summary != "expect roughly half of backtest edge" {
		t.Errorf("Summary = %q", c.Summary)
	}
}

func TestDerive_PartialExpectationsFallBack(t *testing.T) {
	// win_rate without profit_factor is not enough to extract.
	raw := &artifact.Confidence{
		RealityAdjustments: &artifact.RealityAdjustments{
			RealisticExpectations: &artifact.RealisticExpectations{
				WinRate: ptrFloat(50),
			},
		},
	}
	agg := BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5}

	c := Derive(raw, agg)

	if c.Source != domain.ConfidenceFallback {
		t.Errorf("Source = %s, want fallback", c.Source)
	}
	if math.Abs(c.LiveWinRate-49.2) > 1e-9 {
		t.Errorf("LiveWinRate = %v, want fallback 49.2", c.LiveWinRate)
	}
}

func TestDerive_CapsLiveAtBacktestMeans(t *testing.T) {
	// Artifact claims live beats backtest: capped at parity, adjustment 1.
	raw := &artifact.Confidence{
		RealityAdjustments: &artifact.RealityAdjustments{
			RealisticExpectations: &artifact.RealisticExpectations{
				WinRate:      ptrFloat(75),
				ProfitFactor: ptrFloat(5.0),
			},
		},
	}
	agg := BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5}

	c := Derive(raw, agg)

	if c.LiveWinRate != 60 {
		t.Errorf("LiveWinRate = %v, want capped at 60", c.LiveWinRate)
	}
	if c.LiveProfitFactor != 3.5 {
		t.Errorf("LiveProfitFactor = %v, want capped at 3.5", c.LiveProfitFactor)
	}
	if c.WinRateAdjustment != 1 {
		t.Errorf("WinRateAdjustment = %v, want 1", c.WinRateAdjustment)
	}
	if c.ProfitFactorAdjustment != 1 {
		t.Errorf("ProfitFactorAdjustment = %v, want 1", c.ProfitFactorAdjustment)
	}
}

func TestDerive_RangesFromArtifact(t *testing.T) {
	raw := &artifact.Confidence{
		RealisticProjections: &artifact.RealisticProjections{
			LiveTradingExpectations: &artifact.LiveTradingExpectations{
				WinRateRange:      &artifact.MinMax{Min: 45, Max: 55},
				ProfitFactorRange: &artifact.MinMax{Min: 1.5, Max: 2.8},
			},
		},
	}

	c := Derive(raw, BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5})

	if c.WinRateRange != (domain.Range{Min: 45, Max: 55}) {
		t.Errorf("WinRateRange = %v", c.WinRateRange)
	}
	if c.ProfitFactorRange != (domain.Range{Min: 1.5, Max: 2.8}) {
		t.Errorf("ProfitFactorRange = %v", c.ProfitFactorRange)
	}
}

func TestDerive_TotalAdjustmentFromFactors(t *testing.T) {
	raw := &artifact.Confidence{
		RealityAdjustments: &artifact.RealityAdjustments{
			DegradationFactors: []artifact.DegradationFactor{
				{Factor: "spread_widening", ImpactPercent: -8},
				{Factor: "slippage", ImpactPercent: -5},
				{Factor: "execution_latency", ImpactPercent: -3},
			},
			// Ignored when factors are present.
			TotalAdjustment: ptrFloat(-99),
		},
	}

	c := Derive(raw, BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5})

	if math.Abs(c.TotalAdjustmentPct-(-16)) > 1e-9 {
		t.Errorf("TotalAdjustmentPct = %v, want -16 (factor sum)", c.TotalAdjustmentPct)
	}
	if len(c.DegradationFactors) != 3 {
		t.Errorf("expected 3 degradation factors, got %d", len(c.DegradationFactors))
	}
}

func TestDerive_TotalAdjustmentFromArtifactTotal(t *testing.T) {
	raw := &artifact.Confidence{
		RealityAdjustments: &artifact.RealityAdjustments{
			TotalAdjustment: ptrFloat(-20),
		},
	}

	c := Derive(raw, BacktestAggregates{MeanWinRate: 60, MeanProfitFactor: 3.5})

	if c.TotalAdjustmentPct != -20 {
		t.Errorf("TotalAdjustmentPct = %v, want -20", c.TotalAdjustmentPct)
	}
}

func TestDerive_ZeroAggregatesUseFallbackRatio(t *testing.T) {
	// With no usable backtest mean the adjustment ratio falls back to the
	// documented multipliers.
	raw := &artifact.Confidence{
		RealityAdjustments: &artifact.RealityAdjustments{
			RealisticExpectations: &artifact.RealisticExpectations{
				WinRate:      ptrFloat(50),
				ProfitFactor: ptrFloat(2.1),
			},
		},
	}

	c := Derive(raw, BacktestAggregates{})

	if c.Source != domain.ConfidenceExtracted {
		t.Errorf("Source = %s, want extracted", c.Source)
	}
	if c.WinRateAdjustment != domain.FallbackWinRateMultiplier {
		t.Errorf("WinRateAdjustment = %v, want fallback multiplier", c.WinRateAdjustment)
	}
	if c.ProfitFactorAdjustment != domain.FallbackProfitFactorMultiplier {
		t.Errorf("ProfitFactorAdjustment = %v, want fallback multiplier", c.ProfitFactorAdjustment)
	}
}
