package tier

import (
	"github.com/floodlens/wptriage/internal/table"
)

// Tier is the priority bucket assigned to a waterpoint. It drives which
// anticipatory-action window a waterpoint is handled in.
type Tier int

const (
	Unknown Tier = iota
	Tier1
	Tier2
	Tier3
)

// String returns the label used in persisted CSV output.
func (t Tier) String() string {
	switch t {
	case Tier1:
		return "Tier 1"
	case Tier2:
		return "Tier 2"
	case Tier3:
		return "Tier 3"
	default:
		return "Unknown"
	}
}

// All lists the tiers in reporting order.
func All() []Tier { return []Tier{Tier1, Tier2, Tier3, Unknown} }

// Parse maps a persisted label back to a Tier. Unrecognized labels report ok=false.
func Parse(s string) (Tier, bool) {
	switch s {
	case "Tier 1":
		return Tier1, true
	case "Tier 2":
		return Tier2, true
	case "Tier 3":
		return Tier3, true
	case "Unknown":
		return Unknown, true
	}
	return Unknown, false
}

// Thresholds holds the population and installation-year cutoffs for tier
// assignment. Values are configurable; see DefaultThresholds for the
// OCHA Bangladesh AA framework defaults.
type Thresholds struct {
	PopTier1High float64 // served_population above this is always Tier 1
	PopTier1Med  float64 // above this plus old infrastructure is Tier 1
	PopTier2Low  float64 // at or above this (recent infrastructure) is Tier 2
	YearOld      int     // install_year before this counts as old infrastructure
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PopTier1High: 2500,
		PopTier1Med:  1500,
		PopTier2Low:  1000,
		YearOld:      2000,
	}
}

// Assign maps served population and install year to a priority tier.
// A nil population or year yields Unknown. The rules are evaluated in
// order, first match wins:
//
//	pop > PopTier1High                              -> Tier 1
//	pop > PopTier1Med && old                        -> Tier 1
//	PopTier2Low <= pop <= PopTier1High && !old      -> Tier 2
//	pop < PopTier1Med && old                        -> Tier 2
//	pop < PopTier2Low && !old                       -> Tier 3
//	otherwise                                       -> Tier 2
//
// The final fallback also catches boundary values the explicit rules leave
// uncovered (pop == PopTier1Med with old infrastructure).
func Assign(pop *float64, year *int, th Thresholds) Tier {
	if pop == nil || year == nil {
		return Unknown
	}
	p := *pop
	old := *year < th.YearOld

	if p > th.PopTier1High {
		return Tier1
	}
	if p > th.PopTier1Med && old {
		return Tier1
	}
	if th.PopTier2Low <= p && p <= th.PopTier1High && !old {
		return Tier2
	}
	if p < th.PopTier1Med && old {
		return Tier2
	}
	if p < th.PopTier2Low && !old {
		return Tier3
	}
	return Tier2
}

// AssignRaw coerces raw cell values and assigns a tier. Missing or
// unparsable values resolve to Unknown rather than an error.
func AssignRaw(popRaw, yearRaw string, th Thresholds) Tier {
	var pop *float64
	if v, ok := table.ParseFloat(popRaw); ok {
		pop = &v
	}
	var year *int
	if y, ok := table.ParseYear(yearRaw); ok {
		year = &y
	}
	return Assign(pop, year, th)
}
