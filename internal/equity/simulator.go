// Package equity synthesizes equity curves from a pair's aggregate
// backtest statistics. The curves are illustrative Bernoulli-trial
// simulations, not replays of trade logs: a "backtest" trajectory uses
// the pair's recorded win rate and expectancy, a "live" trajectory uses
// the confidence-adjusted analogues with round-trip costs applied.
package equity

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"forex-dashboard/internal/domain"
)

// Default simulation parameters.
const (
	DefaultStartingBalance = 10000.0
	DefaultRiskPerTrade    = 0.005
	DefaultPoints          = 100
	DefaultHorizonDays     = 730
)

// Caps for the streak-triggered mean-reversion boost.
const (
	backtestBoostCap = 0.85
	liveBoostCap     = 0.75
	streakBoost      = 0.15
)

// Round-trip cost applied to the live curve only: wins shrink and losses
// grow by this fraction, modeling spread and slippage.
const liveCostFactor = 0.08

// ErrInvalidInput is returned when the pair record or parameters are out
// of range. These are programmer bugs and surface directly to the caller.
var ErrInvalidInput = errors.New("equity: invalid simulator input")

// Params configures one simulation. Zero values take the defaults; Seed
// nil draws from the clock, so repeatable curves require an explicit seed.
type Params struct {
	StartingBalance float64
	RiskPerTrade    float64
	Points          int
	HorizonDays     int
	Seed            *int64
}

// Simulator generates equity curves. The clock is injectable so tests
// produce stable date axes.
type Simulator struct {
	now func() time.Time
}

// NewSimulator creates a simulator using the system clock.
func NewSimulator() *Simulator {
	return &Simulator{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets a custom clock function for deterministic output.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

// Simulate produces the twin equity curves plus the confidence band for
// one pair. Every curve equals the starting balance exactly at bucket 0;
// trades and the band modulation apply from bucket 1 onward.
func (s *Simulator) Simulate(pair *domain.PairStats, conf domain.Confidence, params Params) ([]domain.EquityPoint, error) {
	p, err := fillDefaults(pair, params)
	if err != nil {
		return nil, err
	}

	seed := p.seedValue
	rng := rand.New(rand.NewSource(seed))

	n := p.Points
	points := make([]domain.EquityPoint, 0, n)

	// Bucket 0 is the starting state for all four curves.
	start := s.now().Truncate(24 * time.Hour)
	points = append(points, domain.EquityPoint{
		Date:           isoDate(start, 0, p.HorizonDays, n),
		BacktestEquity: p.StartingBalance,
		LiveEquity:     p.StartingBalance,
		UpperBand:      p.StartingBalance,
		LowerBand:      p.StartingBalance,
	})

	// Distribute total_trades across the trading buckets (1..n-1) with a
	// cyclical intensity that peaks four times over the horizon, carrying
	// fractional remainders forward.
	trades := distributeTrades(pair.TotalTrades, n-1)

	payoff := pair.AvgWin / pair.AbsAvgLoss
	btProb := pair.WinRate / 100
	liveProb := pair.WinRate * conf.WinRateAdjustment / 100

	bt := trajectory{equity: p.StartingBalance, peak: p.StartingBalance}
	live := trajectory{equity: p.StartingBalance, peak: p.StartingBalance}

	for i := 1; i < n; i++ {
		for t := 0; t < trades[i-1]; t++ {
			// Lockstep: one draw decides both trajectories, so the live
			// curve diverges from costs and probability only.
			u := rng.Float64()
			bt.trade(u, boosted(btProb, bt.lossStreak, pair.MaxConsecutiveLosses, backtestBoostCap),
				p.RiskPerTrade, payoff, 1, 1)
			live.trade(u, boosted(liveProb, live.lossStreak, pair.MaxConsecutiveLosses, liveBoostCap),
				p.RiskPerTrade, payoff, 1-liveCostFactor, 1+liveCostFactor)
		}

		progress := float64(i) / float64(n-1)
		v := 1 + 0.2*math.Sin(progress*6*math.Pi)

		points = append(points, domain.EquityPoint{
			Date:             isoDate(start, i, p.HorizonDays, n),
			BacktestEquity:   bt.equity,
			LiveEquity:       live.equity,
			UpperBand:        bt.equity * (1 + 0.15*v),
			LowerBand:        live.equity * (1 - 0.12*v),
			BacktestDrawdown: bt.drawdown(),
			LiveDrawdown:     live.drawdown(),
			WinStreak:        bt.winStreak,
			LossStreak:       bt.lossStreak,
		})
	}

	return points, nil
}

// Summarize condenses a simulated curve into its headline risk figures.
func Summarize(points []domain.EquityPoint, totalTrades int) domain.EquitySummary {
	if len(points) == 0 {
		return domain.EquitySummary{}
	}

	first := points[0]
	last := points[len(points)-1]

	summary := domain.EquitySummary{
		FinalBacktestEquity: last.BacktestEquity,
		FinalLiveEquity:     last.LiveEquity,
		TradesSimulated:     totalTrades,
	}
	if first.BacktestEquity > 0 {
		summary.BacktestReturnPct = (last.BacktestEquity/first.BacktestEquity - 1) * 100
		summary.LiveReturnPct = (last.LiveEquity/first.LiveEquity - 1) * 100
	}
	for _, pt := range points {
		if pt.BacktestDrawdown < summary.MaxBacktestDrawdown {
			summary.MaxBacktestDrawdown = pt.BacktestDrawdown
		}
		if pt.LiveDrawdown < summary.MaxLiveDrawdown {
			summary.MaxLiveDrawdown = pt.LiveDrawdown
		}
	}
	return summary
}

// trajectory tracks one simulated equity curve.
type trajectory struct {
	equity     float64
	peak       float64
	winStreak  int
	lossStreak int
}

// trade applies one Bernoulli trial. winScale/lossScale carry the live
// round-trip cost; the backtest trajectory passes 1 for both.
func (tr *trajectory) trade(u, winProb, risk, payoff, winScale, lossScale float64) {
	if u < winProb {
		tr.equity += tr.equity * risk * payoff * winScale
		tr.winStreak++
		tr.lossStreak = 0
	} else {
		tr.equity -= tr.equity * risk * lossScale
		tr.lossStreak++
		tr.winStreak = 0
	}
	if tr.equity > tr.peak {
		tr.peak = tr.equity
	}
}

func (tr *trajectory) drawdown() float64 {
	if tr.peak <= 0 {
		return 0
	}
	return (tr.equity - tr.peak) / tr.peak
}

// boosted applies the bounded mean-reversion rule: one loss short of the
// pair's historical worst streak, the win probability rises by 0.15 up to
// the trajectory's cap.
func boosted(prob float64, lossStreak, maxConsecutiveLosses int, limit float64) float64 {
	if maxConsecutiveLosses <= 0 || lossStreak < maxConsecutiveLosses-1 {
		return prob
	}
	b := prob + streakBoost
	if b > limit {
		return limit
	}
	return b
}

// distributeTrades spreads total trades across buckets with the cyclical
// intensity 0.5 + 0.5·sin(progress·4π), carrying fractional remainders so
// the bucket counts sum to total within rounding.
func distributeTrades(total, buckets int) []int {
	counts := make([]int, buckets)
	if total <= 0 || buckets <= 0 {
		return counts
	}

	weights := make([]float64, buckets)
	sum := 0.0
	for i := range weights {
		progress := 0.0
		if buckets > 1 {
			progress = float64(i) / float64(buckets-1)
		}
		weights[i] = 0.5 + 0.5*math.Sin(progress*4*math.Pi)
		sum += weights[i]
	}

	carry := 0.0
	for i, w := range weights {
		exact := float64(total)*w/sum + carry
		counts[i] = int(exact)
		carry = exact - float64(counts[i])
	}
	// Rounding leftover lands in the final bucket.
	if carry >= 0.5 {
		counts[buckets-1]++
	}
	return counts
}

// filled holds validated parameters plus the resolved seed.
type filled struct {
	Params
	seedValue int64
}

func fillDefaults(pair *domain.PairStats, params Params) (filled, error) {
	if pair == nil {
		return filled{}, fmt.Errorf("%w: nil pair", ErrInvalidInput)
	}
	if pair.TotalTrades <= 0 {
		return filled{}, fmt.Errorf("%w: %s has no trades", ErrInvalidInput, pair.PairID)
	}
	if pair.AbsAvgLoss <= 0 {
		return filled{}, fmt.Errorf("%w: %s has zero average loss", ErrInvalidInput, pair.PairID)
	}

	p := filled{Params: params}
	if p.StartingBalance == 0 {
		p.StartingBalance = DefaultStartingBalance
	}
	if p.RiskPerTrade == 0 {
		p.RiskPerTrade = DefaultRiskPerTrade
	}
	if p.Points == 0 {
		p.Points = DefaultPoints
	}
	if p.HorizonDays == 0 {
		p.HorizonDays = DefaultHorizonDays
	}

	if p.StartingBalance < 0 {
		return filled{}, fmt.Errorf("%w: starting balance %.2f", ErrInvalidInput, p.StartingBalance)
	}
	if p.RiskPerTrade <= 0 || p.RiskPerTrade >= 1 {
		return filled{}, fmt.Errorf("%w: risk per trade %.4f out of (0,1)", ErrInvalidInput, p.RiskPerTrade)
	}
	if p.Points < 2 {
		return filled{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidInput, p.Points)
	}
	if p.HorizonDays < 1 {
		return filled{}, fmt.Errorf("%w: horizon %d days", ErrInvalidInput, p.HorizonDays)
	}

	if params.Seed != nil {
		p.seedValue = *params.Seed
	} else {
		p.seedValue = time.Now().UnixNano()
	}
	return p, nil
}

// isoDate places bucket i on an evenly spaced date axis spanning the
// projection horizon.
func isoDate(start time.Time, bucket, horizonDays, points int) string {
	offset := 0
	if points > 1 {
		offset = bucket * horizonDays / (points - 1)
	}
	return start.AddDate(0, 0, offset).Format("2006-01-02")
}
