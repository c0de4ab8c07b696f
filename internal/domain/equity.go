package domain

// EquityPoint is one time bucket of a simulated equity curve. All four
// curve values equal the starting balance at bucket 0.
type EquityPoint struct {
	Date string // ISO YYYY-MM-DD

	BacktestEquity float64
	LiveEquity     float64
	UpperBand      float64
	LowerBand      float64

	// Rolling drawdowns relative to the running peak, <= 0.
	BacktestDrawdown float64
	LiveDrawdown     float64

	// Streak counters for the backtest trajectory at the end of the bucket.
	WinStreak  int
	LossStreak int
}

// EquitySummary condenses one simulated curve into the risk figures shown
// next to the chart.
type EquitySummary struct {
	FinalBacktestEquity float64
	FinalLiveEquity     float64
	MaxBacktestDrawdown float64 // <= 0
	MaxLiveDrawdown     float64 // <= 0
	BacktestReturnPct   float64
	LiveReturnPct       float64
	TradesSimulated     int
}
