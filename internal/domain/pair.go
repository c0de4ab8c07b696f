package domain

import "strings"

// PairID identifies a base/quote currency pair in AAA_BBB form,
// e.g. "EUR_USD" or "USD_JPY".
type PairID string

// Valid reports whether the pair id matches the AAA_BBB shape:
// three upper-case letters, underscore, three upper-case letters.
func (p PairID) Valid() bool {
	s := string(p)
	if len(s) != 7 || s[3] != '_' {
		return false
	}
	for i, c := range s {
		if i == 3 {
			continue
		}
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// IsJPY reports whether either side of the pair is the Japanese yen.
// JPY pairs are quoted in whole-pip increments of 0.01 and are grouped
// separately everywhere in the dashboard.
func (p PairID) IsJPY() bool {
	return strings.Contains(string(p), "JPY")
}

// Display returns the slash form used in chart labels, e.g. "EUR/USD".
func (p PairID) Display() string {
	return strings.Replace(string(p), "_", "/", 1)
}
