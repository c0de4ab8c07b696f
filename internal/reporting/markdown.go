package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Backtest Optimization Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Strategy: %s | Artifact: %s\n\n",
		r.Summary.StrategyVersion, r.Summary.GeneratedAt))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Pairs Tested | %d |\n", r.Summary.TotalPairsTested))
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", r.Summary.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Success Rate | %.1f%% |\n", r.Summary.SuccessRate*100))
	sb.WriteString(fmt.Sprintf("| Best Performer | %s |\n", r.Summary.BestPerformer))
	sb.WriteString(fmt.Sprintf("| Best Annual Return | %.1f%% |\n", r.Summary.BestAnnualReturn))
	sb.WriteString(fmt.Sprintf("| Avg Win Rate (profitable) | %.1f%% |\n", r.Summary.AvgWinRate))
	sb.WriteString(fmt.Sprintf("| Avg Profit Factor (profitable) | %.2f |\n", r.Summary.AvgProfitFactor))
	sb.WriteString("\n")

	if r.Summary.Methodology != "" {
		sb.WriteString("## Methodology\n\n")
		sb.WriteString(r.Summary.Methodology)
		sb.WriteString("\n\n")
	}

	// Tier breakdown
	sb.WriteString("## Tiers\n\n")
	sb.WriteString("| Tier | Pairs | Avg PF | Avg Win Rate | Avg Annual Return |\n")
	sb.WriteString("|------|-------|--------|--------------|-------------------|\n")
	for _, row := range r.TierRows {
		sb.WriteString(fmt.Sprintf("| %s %s | %d | %.2f | %.1f%% | %.1f%% |\n",
			row.Icon, row.Label, row.Pairs, row.AvgPF, row.AvgWinRate, row.AvgAnnualRet))
	}
	sb.WriteString("\n")

	// Per-pair metrics
	sb.WriteString("## Pairs\n\n")
	sb.WriteString("| Pair | Tier | Trades | Win Rate | PF | Annual Return | Pips | Max Consec Losses | Config |\n")
	sb.WriteString("|------|------|--------|----------|----|---------------|------|-------------------|--------|\n")
	for _, row := range r.PairRows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f%% | %.2f | %.1f%% | %.1f | %d | %s |\n",
			row.PairID.Display(), row.Tier, row.TotalTrades, row.WinRate,
			row.ProfitFactor, row.AnnualReturnPct, row.TotalPips,
			row.MaxConsecutiveLosses, row.EMAConfig))
	}
	sb.WriteString("\n")

	// Live projection
	sb.WriteString("## Live Trading Projection\n\n")
	if r.Confidence.Source == "fallback" {
		sb.WriteString("Projections use conservative defaults; no confidence artifact was available.\n\n")
	}
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Expected Live Win Rate | %.1f%% |\n", r.Confidence.LiveWinRate))
	sb.WriteString(fmt.Sprintf("| Expected Live Profit Factor | %.2f |\n", r.Confidence.LiveProfitFactor))
	sb.WriteString(fmt.Sprintf("| Win Rate Range | %.0f-%.0f%% |\n",
		r.Confidence.WinRateRange.Min, r.Confidence.WinRateRange.Max))
	sb.WriteString(fmt.Sprintf("| Profit Factor Range | %.1f-%.1fx |\n",
		r.Confidence.ProfitFactorRange.Min, r.Confidence.ProfitFactorRange.Max))
	sb.WriteString(fmt.Sprintf("| Total Adjustment | %.1f%% |\n", r.Confidence.TotalAdjustmentPct))
	sb.WriteString("\n")

	if len(r.Confidence.DegradationFactors) > 0 {
		sb.WriteString("### Degradation Factors\n\n")
		sb.WriteString("| Factor | Impact | Reasoning |\n")
		sb.WriteString("|--------|--------|-----------|\n")
		for _, f := range r.Confidence.DegradationFactors {
			sb.WriteString(fmt.Sprintf("| %s | %.1f%% | %s |\n",
				f.Factor, f.ImpactPercent, f.Reasoning))
		}
		sb.WriteString("\n")
	}

	// Dropped pairs
	if len(r.DroppedPairs) > 0 {
		sb.WriteString("## Dropped Pairs\n\n")
		for _, d := range r.DroppedPairs {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", d.PairID, d.Reason))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
