// Package charts maps view-model records onto the plain shapes the chart
// primitives consume. Every function is a pure transform; nothing here
// touches the loader or mutates its input.
package charts

import (
	"math"

	"forex-dashboard/internal/domain"
)

// Profitability axis colors: green for non-negative values, red for
// negative ones.
const (
	ColorProfit = "#22c55e"
	ColorLoss   = "#ef4444"
)

// Histogram bin width on the win-rate axis, in percentage points.
const WinRateBinWidth = 2.0

// Bar is one bar-chart entry.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ScatterPoint is one scatter-chart entry.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// PieSlice is one pie-chart entry.
type PieSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// HistogramBin is one fixed-width histogram bucket.
type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// WinRateComparisonRow pairs a backtest win rate with its live-adjusted
// counterpart for the grouped-bar chart.
type WinRateComparisonRow struct {
	Label    string  `json:"label"`
	Backtest float64 `json:"backtest"`
	Live     float64 `json:"live"`
}

// GroupReturnRow is one JPY/non-JPY group aggregate.
type GroupReturnRow struct {
	Name      string  `json:"name"`
	AvgReturn float64 `json:"avg_return"`
	Pairs     int     `json:"pairs"`
	Color     string  `json:"color"`
}

// ProfitFactorBars renders one bar per pair, colored by tier, preserving
// input order.
func ProfitFactorBars(pairs []*domain.PairStats) []Bar {
	bars := make([]Bar, 0, len(pairs))
	for _, p := range pairs {
		bars = append(bars, Bar{
			Label: p.PairID.Display(),
			Value: p.ProfitFactor,
			Color: p.Tier.Color(),
		})
	}
	return bars
}

// TradesVsReturn renders the trade-count / annual-return scatter.
func TradesVsReturn(pairs []*domain.PairStats) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(pairs))
	for _, p := range pairs {
		color := ColorProfit
		if p.AnnualReturnPct < 0 {
			color = ColorLoss
		}
		points = append(points, ScatterPoint{
			X:     float64(p.TotalTrades),
			Y:     p.AnnualReturnPct,
			Label: p.PairID.Display(),
			Color: color,
		})
	}
	return points
}

// WinRateComparison renders backtest vs confidence-adjusted win rates.
func WinRateComparison(pairs []*domain.PairStats, conf domain.Confidence) []WinRateComparisonRow {
	rows := make([]WinRateComparisonRow, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, WinRateComparisonRow{
			Label:    p.PairID.Display(),
			Backtest: p.WinRate,
			Live:     p.WinRate * conf.WinRateAdjustment,
		})
	}
	return rows
}

// WinRateHistogram buckets pairs into fixed 2.0-point win-rate bins.
// Bins cover [From, To); the edges snap to multiples of the bin width.
func WinRateHistogram(pairs []*domain.PairStats) []HistogramBin {
	if len(pairs) == 0 {
		return nil
	}

	lo, hi := pairs[0].WinRate, pairs[0].WinRate
	for _, p := range pairs[1:] {
		if p.WinRate < lo {
			lo = p.WinRate
		}
		if p.WinRate > hi {
			hi = p.WinRate
		}
	}

	start := math.Floor(lo/WinRateBinWidth) * WinRateBinWidth
	count := int((hi-start)/WinRateBinWidth) + 1

	bins := make([]HistogramBin, count)
	for i := range bins {
		bins[i].From = start + float64(i)*WinRateBinWidth
		bins[i].To = bins[i].From + WinRateBinWidth
	}
	for _, p := range pairs {
		idx := int((p.WinRate - start) / WinRateBinWidth)
		if idx >= count {
			idx = count - 1
		}
		bins[idx].Count++
	}
	return bins
}

// ConsecutiveLossBars renders the worst loss streak per pair.
func ConsecutiveLossBars(pairs []*domain.PairStats) []Bar {
	bars := make([]Bar, 0, len(pairs))
	for _, p := range pairs {
		bars = append(bars, Bar{
			Label: p.PairID.Display(),
			Value: float64(p.MaxConsecutiveLosses),
			Color: p.Tier.Color(),
		})
	}
	return bars
}

// GroupReturns aggregates average annual return for the JPY and non-JPY
// groups.
func GroupReturns(jpy, nonJPY []*domain.PairStats) []GroupReturnRow {
	return []GroupReturnRow{
		groupReturn("JPY Pairs", jpy),
		groupReturn("Non-JPY Pairs", nonJPY),
	}
}

func groupReturn(name string, pairs []*domain.PairStats) GroupReturnRow {
	row := GroupReturnRow{Name: name, Pairs: len(pairs), Color: ColorProfit}
	if len(pairs) == 0 {
		return row
	}
	sum := 0.0
	for _, p := range pairs {
		sum += p.AnnualReturnPct
	}
	row.AvgReturn = sum / float64(len(pairs))
	if row.AvgReturn < 0 {
		row.Color = ColorLoss
	}
	return row
}

// TierDistribution counts pairs per tier. Slice values sum to the number
// of input pairs; empty tiers are included so the legend is stable.
func TierDistribution(pairs []*domain.PairStats) []PieSlice {
	counts := make(map[domain.Tier]int, len(domain.Tiers))
	for _, p := range pairs {
		counts[p.Tier]++
	}

	slices := make([]PieSlice, 0, len(domain.Tiers))
	for _, tier := range domain.Tiers {
		slices = append(slices, PieSlice{
			Name:  tier.Label(),
			Value: counts[tier],
			Color: tier.Color(),
		})
	}
	return slices
}
