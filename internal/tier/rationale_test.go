package tier

import (
	"strings"
	"testing"
)

func TestRationaleUnknownListsMissingFields(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		pop, year string
		want      string
	}{
		{"", "2010", "Cannot assign tier - missing data: served_population"},
		{"1200", "", "Cannot assign tier - missing data: install_year"},
		{"", "", "Cannot assign tier - missing data: served_population, install_year"},
		{"n/a", "oops", "Cannot assign tier - missing data: served_population, install_year"},
	}
	for _, tc := range cases {
		got := Rationale(Unknown, tc.pop, tc.year, th)
		if got != tc.want {
			t.Errorf("Rationale(Unknown, %q, %q) = %q, want %q", tc.pop, tc.year, got, tc.want)
		}
	}
}

func TestRationalePerTier(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name      string
		tier      Tier
		pop, year string
		contains  []string
	}{
		{
			"tier1 high population", Tier1, "3000", "2010",
			[]string{"Tier 1: Serves 3,000 people - above 2,500 threshold", "pre-season rehabilitation", "installed 2010 (relatively recent)"},
		},
		{
			"tier1 moderate and old", Tier1, "1800", "1995",
			[]string{"Tier 1: Serves 1,800 people", "old infrastructure, parts may be hard to source", "pre-season action"},
		},
		{
			"tier2 recent infra", Tier2, "1200", "2015",
			[]string{"Tier 2: Serves 1,200 people", "AA window intervention - pre-position supplies"},
		},
		{
			"tier2 old infra", Tier2, "800", "1998",
			[]string{"Tier 2: Serves 800 people", "AA window monitoring"},
		},
		{
			"tier3", Tier3, "500", "2020",
			[]string{"Tier 3: Serves 500 people", "post-flood recovery planning"},
		},
	}
	for _, tc := range cases {
		got := Rationale(tc.tier, tc.pop, tc.year, th)
		for _, want := range tc.contains {
			if !strings.Contains(got, want) {
				t.Errorf("%s: rationale %q missing %q", tc.name, got, want)
			}
		}
	}
}

func TestRationaleConversionErrorNeverFails(t *testing.T) {
	th := DefaultThresholds()
	got := Rationale(Tier1, "not-a-number", "2010", th)
	if got != "Cannot generate rationale - data conversion error" {
		t.Fatalf("rationale = %q", got)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		12345:   "12,345",
		1234567: "1,234,567",
		-1234:   "-1,234",
	}
	for n, want := range cases {
		if got := groupThousands(n); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", n, got, want)
		}
	}
}
