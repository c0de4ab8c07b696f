package charts

import (
	"math"
	"testing"

	"forex-dashboard/internal/domain"
)

func makePairs() []*domain.PairStats {
	mk := func(id string, pf, winRate, annualReturn float64, trades, mcl int) *domain.PairStats {
		tier := domain.ClassifyTier(pf)
		return &domain.PairStats{
			PairID:               domain.PairID(id),
			TotalTrades:          trades,
			WinRate:              winRate,
			ProfitFactor:         pf,
			AnnualReturnPct:      annualReturn,
			MaxConsecutiveLosses: mcl,
			Tier:                 tier,
			TierIcon:             tier.Icon(),
		}
	}
	return []*domain.PairStats{
		mk("USD_JPY", 4.14, 63.4, 31.2, 492, 4),
		mk("EUR_USD", 3.62, 58.0, 22.1, 455, 5),
		mk("GBP_JPY", 3.05, 55.2, 14.8, 388, 6),
		mk("AUD_USD", 2.40, 48.9, -3.2, 301, 8),
	}
}

func TestProfitFactorBars(t *testing.T) {
	bars := ProfitFactorBars(makePairs())
	if len(bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(bars))
	}

	if bars[0].Label != "USD/JPY" {
		t.Errorf("first label = %q, want USD/JPY (input order preserved)", bars[0].Label)
	}
	if bars[0].Value != 4.14 {
		t.Errorf("first value = %v, want 4.14", bars[0].Value)
	}
	if bars[0].Color != domain.TierHighlyProfitable.Color() {
		t.Errorf("gold pair color = %q", bars[0].Color)
	}
	if bars[3].Color != domain.TierUnprofitable.Color() {
		t.Errorf("unprofitable pair color = %q", bars[3].Color)
	}
}

func TestTradesVsReturn(t *testing.T) {
	points := TradesVsReturn(makePairs())
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	if points[0].X != 492 || points[0].Y != 31.2 {
		t.Errorf("first point = (%v, %v), want (492, 31.2)", points[0].X, points[0].Y)
	}
	if points[0].Color != ColorProfit {
		t.Errorf("positive return should be %s, got %s", ColorProfit, points[0].Color)
	}
	if points[3].Color != ColorLoss {
		t.Errorf("negative return should be %s, got %s", ColorLoss, points[3].Color)
	}
}

func TestWinRateComparison(t *testing.T) {
	conf := domain.Confidence{WinRateAdjustment: 0.82}
	rows := WinRateComparison(makePairs(), conf)

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Backtest != 63.4 {
		t.Errorf("backtest = %v, want 63.4", rows[0].Backtest)
	}
	want := 63.4 * 0.82
	if rows[0].Live != want {
		t.Errorf("live = %v, want %v", rows[0].Live, want)
	}
}

func TestWinRateHistogram(t *testing.T) {
	bins := WinRateHistogram(makePairs())
	if len(bins) == 0 {
		t.Fatal("expected bins")
	}

	// Edges snap to multiples of the bin width: min 48.9 starts the first
	// bin at 48.0.
	if bins[0].From != 48.0 || bins[0].To != 50.0 {
		t.Errorf("first bin = [%v, %v), want [48, 50)", bins[0].From, bins[0].To)
	}

	total := 0
	for _, b := range bins {
		if b.To-b.From != WinRateBinWidth {
			t.Errorf("bin [%v, %v): width != %v", b.From, b.To, WinRateBinWidth)
		}
		total += b.Count
	}
	if total != 4 {
		t.Errorf("bin counts sum to %d, want 4", total)
	}
}

func TestWinRateHistogram_Empty(t *testing.T) {
	if bins := WinRateHistogram(nil); bins != nil {
		t.Errorf("empty input should produce nil, got %v", bins)
	}
}

func TestWinRateHistogram_SinglePair(t *testing.T) {
	pairs := makePairs()[:1]
	bins := WinRateHistogram(pairs)
	if len(bins) != 1 {
		t.Fatalf("expected 1 bin, got %d", len(bins))
	}
	if bins[0].From != 62.0 || bins[0].Count != 1 {
		t.Errorf("bin = %+v, want [62, 64) with count 1", bins[0])
	}
}

func TestConsecutiveLossBars(t *testing.T) {
	bars := ConsecutiveLossBars(makePairs())
	if len(bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(bars))
	}
	if bars[2].Value != 6 {
		t.Errorf("GBP/JPY streak = %v, want 6", bars[2].Value)
	}
}

func TestGroupReturns(t *testing.T) {
	pairs := makePairs()
	var jpy, nonJPY []*domain.PairStats
	for _, p := range pairs {
		if p.PairID.IsJPY() {
			jpy = append(jpy, p)
		} else {
			nonJPY = append(nonJPY, p)
		}
	}

	rows := GroupReturns(jpy, nonJPY)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// JPY: (31.2 + 14.8) / 2 = 23.0
	if rows[0].Name != "JPY Pairs" || rows[0].Pairs != 2 {
		t.Errorf("JPY row = %+v", rows[0])
	}
	if math.Abs(rows[0].AvgReturn-23.0) > 1e-9 {
		t.Errorf("JPY avg = %v, want 23.0", rows[0].AvgReturn)
	}
	// Non-JPY: (22.1 + -3.2) / 2 = 9.45
	if math.Abs(rows[1].AvgReturn-9.45) > 1e-9 {
		t.Errorf("non-JPY avg = %v, want 9.45", rows[1].AvgReturn)
	}
	if rows[0].Color != ColorProfit {
		t.Errorf("positive group should be green")
	}
}

func TestGroupReturns_EmptyGroup(t *testing.T) {
	rows := GroupReturns(nil, makePairs())
	if rows[0].Pairs != 0 || rows[0].AvgReturn != 0 {
		t.Errorf("empty group row = %+v", rows[0])
	}
}

func TestTierDistribution(t *testing.T) {
	slices := TierDistribution(makePairs())

	// All four tiers present, even when empty, in display order.
	if len(slices) != len(domain.Tiers) {
		t.Fatalf("expected %d slices, got %d", len(domain.Tiers), len(slices))
	}
	if slices[0].Name != "Gold" || slices[0].Value != 1 {
		t.Errorf("gold slice = %+v", slices[0])
	}

	total := 0
	for _, s := range slices {
		total += s.Value
	}
	if total != 4 {
		t.Errorf("slice values sum to %d, want the pair count 4", total)
	}
}

func TestTierDistribution_IncludesEmptyTiers(t *testing.T) {
	slices := TierDistribution(makePairs()[:1]) // gold only

	for i, s := range slices {
		want := 0
		if i == 0 {
			want = 1
		}
		if s.Value != want {
			t.Errorf("%s = %d, want %d", s.Name, s.Value, want)
		}
	}
}
