// Package report computes and renders summary statistics over a
// joined+classified waterpoint table. It only reads the table; rendering is
// available as sectioned text or JSON.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/floodlens/wptriage/internal/table"
	"github.com/floodlens/wptriage/internal/tier"
)

// Options selects the columns the summary is computed over. Group and
// cross-tab sections are skipped when their column is absent from the table.
type Options struct {
	TierColumn       string
	PopulationColumn string
	GroupBy          string
	CrossTab         string
}

// DefaultOptions returns the column names the pipeline writes.
func DefaultOptions() Options {
	return Options{
		TierColumn:       "priority_tier",
		PopulationColumn: "served_population",
		GroupBy:          "clean_adm2",
		CrossTab:         "flood_risk",
	}
}

// TierCount is one bucket of the overall tier distribution.
type TierCount struct {
	Tier    string  `json:"tier"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// GroupCounts holds per-tier counts for one group key.
type GroupCounts struct {
	Key    string         `json:"key"`
	Size   int            `json:"size"`
	Counts map[string]int `json:"counts"`
}

// CrossTab is a contingency table of one categorical column against tiers.
type CrossTab struct {
	Column string         `json:"column"`
	Rows   []CrossTabRow  `json:"rows"`
	Totals map[string]int `json:"totals"`
}

type CrossTabRow struct {
	Value  string         `json:"value"`
	Counts map[string]int `json:"counts"`
}

// PopStat summarizes served population for one tier over parseable values.
type PopStat struct {
	Tier  string  `json:"tier"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
}

// Summary is the full reporting payload for one table.
type Summary struct {
	Source      string        `json:"source,omitempty"`
	Rows        int           `json:"rows"`
	Tiers       []TierCount   `json:"tiers"`
	GroupColumn string        `json:"group_column,omitempty"`
	Groups      []GroupCounts `json:"groups,omitempty"`
	CrossTab    *CrossTab     `json:"crosstab,omitempty"`
	PopStats    []PopStat     `json:"population_by_tier,omitempty"`
}

// Build computes the summary. It fails only when the tier column itself is
// missing; optional sections degrade to absence instead.
func Build(t *table.Table, opt Options) (*Summary, error) {
	tierIdx := t.ColumnIndex(opt.TierColumn)
	if tierIdx < 0 {
		return nil, fmt.Errorf("column %q not found in %s", opt.TierColumn, t.Name)
	}

	s := &Summary{Source: t.Name, Rows: len(t.Rows)}

	// Tier labels per row; unrecognized labels count as Unknown.
	labels := make([]string, len(t.Rows))
	counts := map[string]int{}
	for i, row := range t.Rows {
		tr, _ := tier.Parse(strings.TrimSpace(row[tierIdx]))
		labels[i] = tr.String()
		counts[labels[i]]++
	}
	for _, tr := range tier.All() {
		c := counts[tr.String()]
		pct := 0.0
		if s.Rows > 0 {
			pct = float64(c) * 100.0 / float64(s.Rows)
		}
		s.Tiers = append(s.Tiers, TierCount{Tier: tr.String(), Count: c, Percent: pct})
	}

	// Per-group tier counts.
	if gIdx := t.ColumnIndex(opt.GroupBy); gIdx >= 0 && opt.GroupBy != "" {
		s.GroupColumn = strings.TrimSpace(t.Header[gIdx])
		byKey := map[string]*GroupCounts{}
		for i, row := range t.Rows {
			key := strings.TrimSpace(row[gIdx])
			g := byKey[key]
			if g == nil {
				g = &GroupCounts{Key: key, Counts: map[string]int{}}
				byKey[key] = g
			}
			g.Size++
			g.Counts[labels[i]]++
		}
		keys := make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.Groups = append(s.Groups, *byKey[k])
		}
	}

	// Cross-tabulation against a categorical column.
	if cIdx := t.ColumnIndex(opt.CrossTab); cIdx >= 0 && opt.CrossTab != "" {
		ct := &CrossTab{Column: strings.TrimSpace(t.Header[cIdx]), Totals: map[string]int{}}
		byVal := map[string]map[string]int{}
		for i, row := range t.Rows {
			val := strings.TrimSpace(row[cIdx])
			m := byVal[val]
			if m == nil {
				m = map[string]int{}
				byVal[val] = m
			}
			m[labels[i]]++
			ct.Totals[labels[i]]++
		}
		vals := make([]string, 0, len(byVal))
		for v := range byVal {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		for _, v := range vals {
			ct.Rows = append(ct.Rows, CrossTabRow{Value: v, Counts: byVal[v]})
		}
		s.CrossTab = ct
	}

	// Population stats per tier, over parseable values only. Unknown is
	// excluded: its rows have no usable population by definition.
	if pIdx := t.ColumnIndex(opt.PopulationColumn); pIdx >= 0 {
		for _, tr := range []tier.Tier{tier.Tier1, tier.Tier2, tier.Tier3} {
			var st PopStat
			var sum float64
			for i, row := range t.Rows {
				if labels[i] != tr.String() {
					continue
				}
				v, ok := table.ParseFloat(row[pIdx])
				if !ok {
					continue
				}
				if st.Count == 0 || v < st.Min {
					st.Min = v
				}
				if st.Count == 0 || v > st.Max {
					st.Max = v
				}
				sum += v
				st.Count++
			}
			if st.Count == 0 {
				continue
			}
			st.Tier = tr.String()
			st.Mean = sum / float64(st.Count)
			s.PopStats = append(s.PopStats, st)
		}
	}

	return s, nil
}

// Render formats the summary as sectioned text for console output.
func (s *Summary) Render() string {
	var b strings.Builder
	b.WriteString("[PRIORITISATION SUMMARY]\n")
	if s.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	for _, tc := range s.Tiers {
		b.WriteString(fmt.Sprintf("  %-10s: %4d (%.1f%%)\n", tc.Tier, tc.Count, tc.Percent))
	}

	if len(s.Groups) > 0 {
		b.WriteString(fmt.Sprintf("\n[BY %s]\n", strings.ToUpper(s.GroupColumn)))
		for _, g := range s.Groups {
			key := g.Key
			if key == "" {
				key = "(blank)"
			}
			b.WriteString(fmt.Sprintf("  %s: Tier1=%d, Tier2=%d, Tier3=%d, Unknown=%d\n",
				key, g.Counts["Tier 1"], g.Counts["Tier 2"], g.Counts["Tier 3"], g.Counts["Unknown"]))
		}
	}

	if s.CrossTab != nil {
		b.WriteString(fmt.Sprintf("\n[%s BY PRIORITY TIER]\n", strings.ToUpper(s.CrossTab.Column)))
		b.WriteString(fmt.Sprintf("  %-20s %7s %7s %7s %7s\n", s.CrossTab.Column, "Tier 1", "Tier 2", "Tier 3", "Unknown"))
		for _, row := range s.CrossTab.Rows {
			val := row.Value
			if val == "" {
				val = "(blank)"
			}
			b.WriteString(fmt.Sprintf("  %-20s %7d %7d %7d %7d\n",
				val, row.Counts["Tier 1"], row.Counts["Tier 2"], row.Counts["Tier 3"], row.Counts["Unknown"]))
		}
	}

	if len(s.PopStats) > 0 {
		b.WriteString("\n[SERVED POPULATION BY TIER]\n")
		for _, st := range s.PopStats {
			b.WriteString(fmt.Sprintf("  %s: min=%d, avg=%d, max=%d\n",
				st.Tier, int(st.Min), int(st.Mean), int(st.Max)))
		}
	}
	return b.String()
}
