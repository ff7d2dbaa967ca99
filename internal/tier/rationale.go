package tier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/floodlens/wptriage/internal/table"
)

// Rationale produces a human-readable explanation for an assigned tier.
// For Unknown it enumerates which inputs could not be read; otherwise it
// composes the tier label, served population and an infrastructure-age note
// with the recommended action. It never fails: an unexpected conversion
// problem yields a fixed error message instead.
func Rationale(t Tier, popRaw, yearRaw string, th Thresholds) string {
	if t == Unknown {
		var missing []string
		if _, ok := table.ParseFloat(popRaw); !ok {
			missing = append(missing, "served_population")
		}
		if _, ok := table.ParseFloat(yearRaw); !ok {
			missing = append(missing, "install_year")
		}
		return "Cannot assign tier - missing data: " + strings.Join(missing, ", ")
	}

	popF, okPop := table.ParseFloat(popRaw)
	year, okYear := table.ParseYear(yearRaw)
	if !okPop || !okYear {
		// Should not happen once a tier is assigned, but a bad rationale
		// must never abort the classification pass.
		return "Cannot generate rationale - data conversion error"
	}
	pop := int(popF)
	old := year < th.YearOld

	ageNote := fmt.Sprintf("installed %d (relatively recent)", year)
	if old {
		ageNote = fmt.Sprintf("installed %d (old infrastructure, parts may be hard to source)", year)
	}

	switch t {
	case Tier1:
		if popF > th.PopTier1High {
			return fmt.Sprintf("Tier 1: Serves %s people - above %s threshold. Requires pre-season rehabilitation (%s).",
				groupThousands(pop), groupThousands(int(th.PopTier1High)), ageNote)
		}
		return fmt.Sprintf("Tier 1: Serves %s people with %s. Old infrastructure and moderate-high population require pre-season action.",
			groupThousands(pop), ageNote)
	case Tier2:
		if th.PopTier2Low <= popF && popF <= th.PopTier1High && !old {
			return fmt.Sprintf("Tier 2: Serves %s people (%s). Accessible enough for AA window intervention - pre-position supplies.",
				groupThousands(pop), ageNote)
		}
		return fmt.Sprintf("Tier 2: Serves %s people with %s. Lower population but old infrastructure warrants AA window monitoring.",
			groupThousands(pop), ageNote)
	case Tier3:
		return fmt.Sprintf("Tier 3: Serves %s people (%s). Monitor during season and include in post-flood recovery planning.",
			groupThousands(pop), ageNote)
	}
	return ""
}

// groupThousands renders n with comma thousands separators, e.g. 12345 -> "12,345".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
