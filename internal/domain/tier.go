package domain

// Tier classifies a pair's profitability from its profit factor alone.
type Tier string

// Tier constants, ordered best to worst.
const (
	TierHighlyProfitable     Tier = "HIGHLY_PROFITABLE"
	TierProfitable           Tier = "PROFITABLE"
	TierMarginallyProfitable Tier = "MARGINALLY_PROFITABLE"
	TierUnprofitable         Tier = "UNPROFITABLE"
)

// Profit factor band boundaries. Lower bounds are inclusive.
const (
	TierGoldMinPF   = 4.0
	TierSilverMinPF = 3.5
	TierBronzeMinPF = 3.0
)

// ClassifyTier assigns a tier from profit factor. Pure; the tier field
// shipped in the artifact is informational only and is always recomputed
// through this function.
func ClassifyTier(profitFactor float64) Tier {
	switch {
	case profitFactor >= TierGoldMinPF:
		return TierHighlyProfitable
	case profitFactor >= TierSilverMinPF:
		return TierProfitable
	case profitFactor >= TierBronzeMinPF:
		return TierMarginallyProfitable
	default:
		return TierUnprofitable
	}
}

// Profitable reports whether the tier counts toward the success rate.
func (t Tier) Profitable() bool {
	return t != TierUnprofitable
}

// Icon returns the display glyph for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierHighlyProfitable:
		return "🥇"
	case TierProfitable:
		return "🥈"
	case TierMarginallyProfitable:
		return "🥉"
	default:
		return "—"
	}
}

// Label returns the short medal name used in headings and legends.
func (t Tier) Label() string {
	switch t {
	case TierHighlyProfitable:
		return "Gold"
	case TierProfitable:
		return "Silver"
	case TierMarginallyProfitable:
		return "Bronze"
	default:
		return "Unprofitable"
	}
}

// Color returns the palette hex color for the tier.
func (t Tier) Color() string {
	switch t {
	case TierHighlyProfitable:
		return "#fbbf24"
	case TierProfitable:
		return "#d1d5db"
	case TierMarginallyProfitable:
		return "#fb923c"
	default:
		return "#ef4444"
	}
}

// Tiers lists all tiers best to worst, for iteration in display order.
var Tiers = []Tier{
	TierHighlyProfitable,
	TierProfitable,
	TierMarginallyProfitable,
	TierUnprofitable,
}
