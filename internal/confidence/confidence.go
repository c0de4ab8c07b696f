// Package confidence converts the confidence artifact into the scalar
// live-trading adjustment the simulator and the dashboard consume.
package confidence

import (
	"forex-dashboard/internal/artifact"
	"forex-dashboard/internal/domain"
)

// BacktestAggregates carries the normalized backtest means the fallback
// multipliers apply to.
type BacktestAggregates struct {
	MeanWinRate      float64 // percent, over profitable pairs
	MeanProfitFactor float64
}

// Derive builds the Confidence record. Extraction order:
//
//  1. Explicit realistic_expectations win_rate and profit_factor, when the
//     artifact provides both.
//  2. Otherwise the documented fallback multipliers (0.82 / 0.72) applied
//     to the backtest means. A nil artifact always lands here.
//
// Ranges also prefer the artifact and fall back to the documentation
// defaults ([48,52]% win rate, [1.8,2.4]x profit factor).
func Derive(raw *artifact.Confidence, agg BacktestAggregates) domain.Confidence {
	c := domain.Confidence{
		Source:                 domain.ConfidenceFallback,
		WinRateAdjustment:      domain.FallbackWinRateMultiplier,
		ProfitFactorAdjustment: domain.FallbackProfitFactorMultiplier,
		LiveWinRate:            agg.MeanWinRate * domain.FallbackWinRateMultiplier,
		LiveProfitFactor:       agg.MeanProfitFactor * domain.FallbackProfitFactorMultiplier,
		WinRateRange:           domain.FallbackWinRateRange,
		ProfitFactorRange:      domain.FallbackProfitFactorRange,
	}
	if raw == nil {
		return c
	}

	if adj := raw.RealityAdjustments; adj != nil {
		if exp := adj.RealisticExpectations; exp != nil && exp.WinRate != nil && exp.ProfitFactor != nil {
			c.Source = domain.ConfidenceExtracted
			c.LiveWinRate = *exp.WinRate
			c.LiveProfitFactor = *exp.ProfitFactor

			// Live expectations never exceed the backtest means; an
			// artifact claiming otherwise is capped at parity.
			if c.LiveWinRate > agg.MeanWinRate && agg.MeanWinRate > 0 {
				c.LiveWinRate = agg.MeanWinRate
			}
			if c.LiveProfitFactor > agg.MeanProfitFactor && agg.MeanProfitFactor > 0 {
				c.LiveProfitFactor = agg.MeanProfitFactor
			}
			c.WinRateAdjustment = ratio(c.LiveWinRate, agg.MeanWinRate, domain.FallbackWinRateMultiplier)
			c.ProfitFactorAdjustment = ratio(c.LiveProfitFactor, agg.MeanProfitFactor, domain.FallbackProfitFactorMultiplier)
		}

		c.DegradationFactors = make([]domain.DegradationFactor, 0, len(adj.DegradationFactors))
		for _, f := range adj.DegradationFactors {
			c.DegradationFactors = append(c.DegradationFactors, domain.DegradationFactor{
				Factor:        f.Factor,
				ImpactPercent: f.ImpactPercent,
				Reasoning:     f.Reasoning,
			})
		}

		// Display-only aggregate: the factor sum when factors are present,
		// otherwise the artifact's own total.
		if len(c.DegradationFactors) > 0 {
			total := 0.0
			for _, f := range c.DegradationFactors {
				total += f.ImpactPercent
			}
			c.TotalAdjustmentPct = total
		} else if adj.TotalAdjustment != nil {
			c.TotalAdjustmentPct = *adj.TotalAdjustment
		}

		c.Summary = adj.RealisticExpectation
	}

	if proj := raw.RealisticProjections; proj != nil && proj.LiveTradingExpectations != nil {
		exp := proj.LiveTradingExpectations
		if r := exp.WinRateRange; r != nil {
			c.WinRateRange = domain.Range{Min: r.Min, Max: r.Max}
		}
		if r := exp.ProfitFactorRange; r != nil {
			c.ProfitFactorRange = domain.Range{Min: r.Min, Max: r.Max}
		}
	}

	return c
}

// ratio returns live/backtest clamped to (0, 1], or the fallback when the
// backtest mean is unusable.
func ratio(live, backtest, fallback float64) float64 {
	if backtest <= 0 || live <= 0 {
		return fallback
	}
	r := live / backtest
	if r > 1 {
		return 1
	}
	return r
}
