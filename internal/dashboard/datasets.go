package dashboard

import (
	"errors"
	"fmt"
	"slices"

	"forex-dashboard/internal/charts"
)

// Chart dataset names the UI may request.
const (
	DatasetProfitFactorByPair    = "profit_factor_by_pair"
	DatasetTradesVsReturn        = "trades_vs_return"
	DatasetBacktestVsLiveWinRate = "backtest_vs_live_winrate"
	DatasetWinRateHistogram      = "winrate_histogram"
	DatasetMaxConsecutiveLosses  = "max_consecutive_losses"
	DatasetJPYVsNonJPYReturns    = "jpy_vs_nonjpy_returns"
	DatasetTierDistribution      = "tier_distribution"
)

// ErrUnknownDataset is returned for a dataset name outside the list above.
var ErrUnknownDataset = errors.New("unknown chart dataset")

// DatasetNames lists the supported datasets in display order.
var DatasetNames = []string{
	DatasetProfitFactorByPair,
	DatasetTradesVsReturn,
	DatasetBacktestVsLiveWinRate,
	DatasetWinRateHistogram,
	DatasetMaxConsecutiveLosses,
	DatasetJPYVsNonJPYReturns,
	DatasetTierDistribution,
}

// ChartDataset returns the named dataset as a slice of plain records
// ready for a generic bar/scatter/pie primitive. Unknown names error
// regardless of load state; before a successful load every known
// dataset is empty, matching the sentinel policy.
func (s *Service) ChartDataset(name string) (any, error) {
	if !slices.Contains(DatasetNames, name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}

	s.mu.RLock()
	model := s.model
	conf := s.conf
	s.mu.RUnlock()

	if model == nil || conf == nil {
		return nil, nil
	}

	switch name {
	case DatasetProfitFactorByPair:
		return charts.ProfitFactorBars(model.Pairs), nil
	case DatasetTradesVsReturn:
		return charts.TradesVsReturn(model.Pairs), nil
	case DatasetBacktestVsLiveWinRate:
		return charts.WinRateComparison(model.Pairs, *conf), nil
	case DatasetWinRateHistogram:
		return charts.WinRateHistogram(model.Pairs), nil
	case DatasetMaxConsecutiveLosses:
		return charts.ConsecutiveLossBars(model.Pairs), nil
	case DatasetJPYVsNonJPYReturns:
		return charts.GroupReturns(model.JPYPairs(), model.NonJPYPairs()), nil
	case DatasetTierDistribution:
		return charts.TierDistribution(model.Pairs), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
}
