package dashboard

import "forex-dashboard/internal/domain"

// Group selects the JPY split.
type Group string

// Group constants.
const (
	GroupAll    Group = ""
	GroupJPY    Group = "jpy"
	GroupNonJPY Group = "non_jpy"
)

// Filter narrows the pair list. The zero value matches everything.
type Filter struct {
	Tiers     []domain.Tier // empty means all tiers
	Group     Group
	MinTrades int
}

func (f Filter) match(p *domain.PairStats) bool {
	if len(f.Tiers) > 0 {
		found := false
		for _, t := range f.Tiers {
			if p.Tier == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	switch f.Group {
	case GroupJPY:
		if !p.PairID.IsJPY() {
			return false
		}
	case GroupNonJPY:
		if p.PairID.IsJPY() {
			return false
		}
	}

	return p.TotalTrades >= f.MinTrades
}

// Pairs returns the pairs matching the filter, in artifact order, as
// copies. Empty before a successful load.
func (s *Service) Pairs(filter Filter) []*domain.PairStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.model == nil {
		return nil
	}

	var result []*domain.PairStats
	for _, p := range s.model.Pairs {
		if !filter.match(p) {
			continue
		}
		pairCopy := *p
		result = append(result, &pairCopy)
	}
	return result
}
