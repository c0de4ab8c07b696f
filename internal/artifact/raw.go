package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Artifact document names. The loader resolves both relative to the
// configured source (directory, memory snapshot, or database table).
const (
	ComprehensiveFile = "comprehensive_test_results.json"
	ConfidenceFile    = "confidence_analysis.json"
)

// Comprehensive is the parsed comprehensive_test_results.json document.
type Comprehensive struct {
	OptimizationInfo OptimizationInfo `json:"optimization_info"`
	ProfitablePairs  PairMap          `json:"profitable_pairs"`
	SummaryStats     SummaryStats     `json:"summary_stats"`
}

// OptimizationInfo is the artifact's metadata block.
type OptimizationInfo struct {
	Timestamp        string `json:"timestamp"`
	StrategyVersion  string `json:"strategy_version"`
	TotalPairsTested int    `json:"total_pairs_tested"`
	TotalTrades      int    `json:"total_trades"`
	Methodology      string `json:"methodology"`
	SuccessRate      string `json:"success_rate"`
}

// SummaryStats is informational only; the normalizer recomputes both
// fields from the per-pair records.
type SummaryStats struct {
	BestReturn   string `json:"best_return"`
	TopPerformer string `json:"top_performer"`
}

// PairStats is one raw per-pair record. annual_return and win_rate ship
// as percent strings; avg_loss sign varies across artifact vintages.
type PairStats struct {
	AnnualReturn         string  `json:"annual_return"`
	WinRate              string  `json:"win_rate"`
	ProfitFactor         float64 `json:"profit_factor"`
	TotalTrades          int     `json:"total_trades"`
	Wins                 int     `json:"wins"`
	Losses               int     `json:"losses"`
	TotalPips            float64 `json:"total_pips"`
	GrossProfit          float64 `json:"gross_profit"`
	GrossLoss            float64 `json:"gross_loss"`
	AvgWin               float64 `json:"avg_win"`
	AvgLoss              float64 `json:"avg_loss"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`
	EMAConfig            string  `json:"ema_config"`
	Tier                 string  `json:"tier"`
}

// PairMap holds the profitable_pairs object with its key order preserved.
// encoding/json maps lose insertion order, and artifact order is
// display-meaningful, so the keys are re-read from the token stream.
type PairMap struct {
	Order []string
	ByID  map[string]*PairStats
}

// UnmarshalJSON decodes the object while recording key order.
func (m *PairMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("profitable_pairs: expected object, got %v", tok)
	}

	m.Order = nil
	m.ByID = make(map[string]*PairStats)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("profitable_pairs: expected key, got %v", keyTok)
		}

		var stats PairStats
		if err := dec.Decode(&stats); err != nil {
			return fmt.Errorf("profitable_pairs[%s]: %w", key, err)
		}

		if _, exists := m.ByID[key]; !exists {
			m.Order = append(m.Order, key)
		}
		m.ByID[key] = &stats
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON re-emits the object in recorded order.
func (m PairMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.ByID[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Confidence is the parsed confidence_analysis.json document. Every block
// is optional; absent blocks fall back to documented defaults downstream.
type Confidence struct {
	RealisticProjections *RealisticProjections `json:"realistic_projections"`
	RealityAdjustments   *RealityAdjustments   `json:"reality_adjustments"`
}

// RealisticProjections wraps the live trading expectation ranges.
type RealisticProjections struct {
	LiveTradingExpectations *LiveTradingExpectations `json:"live_trading_expectations"`
}

// LiveTradingExpectations holds the projected live ranges.
type LiveTradingExpectations struct {
	WinRateRange      *MinMax `json:"win_rate_range"`
	ProfitFactorRange *MinMax `json:"profit_factor_range"`
}

// MinMax is a closed interval as it appears in the artifact.
type MinMax struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RealityAdjustments holds the degradation factors and expectations.
type RealityAdjustments struct {
	DegradationFactors    []DegradationFactor    `json:"degradation_factors"`
	RealisticExpectations *RealisticExpectations `json:"realistic_expectations"`
	TotalAdjustment       *float64               `json:"total_adjustment"`
	RealisticExpectation  string                 `json:"realistic_expectation"`
}

// DegradationFactor is one named live-vs-backtest degradation reason.
type DegradationFactor struct {
	Factor        string  `json:"factor"`
	ImpactPercent float64 `json:"impact_percent"`
	Reasoning     string  `json:"reasoning"`
}

// RealisticExpectations holds explicit live expectations when present.
type RealisticExpectations struct {
	WinRate      *float64 `json:"win_rate"`
	ProfitFactor *float64 `json:"profit_factor"`
}

// ParseComprehensive parses and validates the comprehensive document.
// Schema violations return ErrMalformed.
func ParseComprehensive(data []byte) (*Comprehensive, error) {
	var doc Comprehensive
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, ComprehensiveFile, err)
	}

	if doc.OptimizationInfo.Timestamp == "" {
		return nil, fmt.Errorf("%w: %s: optimization_info.timestamp is required", ErrMalformed, ComprehensiveFile)
	}
	if doc.OptimizationInfo.TotalPairsTested <= 0 {
		return nil, fmt.Errorf("%w: %s: optimization_info.total_pairs_tested must be positive", ErrMalformed, ComprehensiveFile)
	}
	if len(doc.ProfitablePairs.Order) == 0 {
		return nil, fmt.Errorf("%w: %s: profitable_pairs is empty", ErrMalformed, ComprehensiveFile)
	}

	return &doc, nil
}

// ParseConfidence parses the confidence document. Only JSON-level failures
// are malformed; missing blocks are legal and handled by fallbacks.
func ParseConfidence(data []byte) (*Confidence, error) {
	var doc Confidence
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, ConfidenceFile, err)
	}
	return &doc, nil
}

// ParsePercent converts a percent string like "68.0%" to its numeric
// value. A bare number without the suffix is accepted.
func ParsePercent(s string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if trimmed == "" {
		return 0, fmt.Errorf("empty percent value %q", s)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return v, nil
}
