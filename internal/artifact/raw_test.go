package artifact

import (
	"errors"
	"testing"
)

const validComprehensive = `{
	"optimization_info": {
		"timestamp": "2024-06-01T00:00:00Z",
		"strategy_version": "EMA_CROSSOVER_V2",
		"total_pairs_tested": 25,
		"total_trades": 4821,
		"methodology": "walk-forward optimization, 2 years M15 data",
		"success_rate": "40.0%"
	},
	"profitable_pairs": {
		"USD_JPY": {
			"annual_return": "31.2%",
			"win_rate": "63.4%",
			"profit_factor": 4.14,
			"total_trades": 492,
			"wins": 312,
			"losses": 180,
			"avg_win": 28.4,
			"avg_loss": -11.2,
			"max_consecutive_losses": 4,
			"ema_config": "9/21",
			"tier": "HIGHLY_PROFITABLE"
		},
		"EUR_USD": {
			"annual_return": "22.1%",
			"win_rate": "58.0%",
			"profit_factor": 3.62,
			"total_trades": 455,
			"wins": 264,
			"losses": 191,
			"avg_win": 25.1,
			"avg_loss": 13.9,
			"max_consecutive_losses": 5,
			"ema_config": "12/26",
			"tier": "PROFITABLE"
		}
	},
	"summary_stats": {
		"best_return": "31.2%",
		"top_performer": "USD_JPY"
	}
}`

func TestParseComprehensive_Valid(t *testing.T) {
	doc, err := ParseComprehensive([]byte(validComprehensive))
	if err != nil {
		t.Fatalf("ParseComprehensive failed: %v", err)
	}

	if doc.OptimizationInfo.TotalPairsTested != 25 {
		t.Errorf("TotalPairsTested = %d, want 25", doc.OptimizationInfo.TotalPairsTested)
	}
	if len(doc.ProfitablePairs.Order) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(doc.ProfitablePairs.Order))
	}
	usdJPY := doc.ProfitablePairs.ByID["USD_JPY"]
	if usdJPY == nil || usdJPY.ProfitFactor != 4.14 {
		t.Errorf("USD_JPY not parsed: %+v", usdJPY)
	}
}

func TestParseComprehensive_KeyOrderPreserved(t *testing.T) {
	// JSON object order is not alphabetical here; it must survive parsing.
	doc, err := ParseComprehensive([]byte(validComprehensive))
	if err != nil {
		t.Fatalf("ParseComprehensive failed: %v", err)
	}

	want := []string{"USD_JPY", "EUR_USD"}
	for i, id := range want {
		if doc.ProfitablePairs.Order[i] != id {
			t.Errorf("Order[%d] = %s, want %s", i, doc.ProfitablePairs.Order[i], id)
		}
	}
}

func TestParseComprehensive_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json`},
		{"missing timestamp", `{"optimization_info":{"total_pairs_tested":5},"profitable_pairs":{"EUR_USD":{"total_trades":10,"wins":6,"losses":4}}}`},
		{"zero pairs tested", `{"optimization_info":{"timestamp":"2024-06-01","total_pairs_tested":0},"profitable_pairs":{"EUR_USD":{"total_trades":10,"wins":6,"losses":4}}}`},
		{"empty pairs", `{"optimization_info":{"timestamp":"2024-06-01","total_pairs_tested":5},"profitable_pairs":{}}`},
	}

	for _, c := range cases {
		_, err := ParseComprehensive([]byte(c.data))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", c.name, err)
		}
	}
}

func TestParseConfidence_MissingBlocksAreLegal(t *testing.T) {
	doc, err := ParseConfidence([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseConfidence failed: %v", err)
	}
	if doc.RealisticProjections != nil || doc.RealityAdjustments != nil {
		t.Error("absent blocks should parse as nil")
	}
}

func TestParseConfidence_Malformed(t *testing.T) {
	_, err := ParseConfidence([]byte(`{"reality_adjustments": [`))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestPairMap_DuplicateKeysLastWins(t *testing.T) {
	data := `{"EUR_USD": {"profit_factor": 1.0}, "EUR_USD": {"profit_factor": 2.0}}`

	var m PairMap
	if err := m.UnmarshalJSON([]byte(data)); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if len(m.Order) != 1 {
		t.Fatalf("duplicate key recorded twice: %v", m.Order)
	}
	if m.ByID["EUR_USD"].ProfitFactor != 2.0 {
		t.Errorf("last value should win, got %v", m.ByID["EUR_USD"].ProfitFactor)
	}
}

func TestPairMap_MarshalKeepsOrder(t *testing.T) {
	doc, err := ParseComprehensive([]byte(validComprehensive))
	if err != nil {
		t.Fatalf("ParseComprehensive failed: %v", err)
	}

	out, err := doc.ProfitablePairs.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	reparsed := PairMap{}
	if err := reparsed.UnmarshalJSON(out); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if len(reparsed.Order) != 2 || reparsed.Order[0] != "USD_JPY" || reparsed.Order[1] != "EUR_USD" {
		t.Errorf("order lost in round trip: %v", reparsed.Order)
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"68.0%", 68.0, false},
		{"68.0", 68.0, false},
		{" 31.2% ", 31.2, false},
		{"-5%", -5, false},
		{"", 0, true},
		{"%", 0, true},
		{"abc%", 0, true},
	}

	for _, c := range cases {
		got, err := ParsePercent(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePercent(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePercent(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
