package table

import "testing"

func TestParseFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3000", 3000, true},
		{"  3000 ", 3000, true},
		{"2001.9", 2001.9, true},
		{"-15", -15, true},
		{"1,234", 1234, true},
		{"12,345,678.5", 12345678.5, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"n/a", 0, false},
		{"12ab", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
		{"1,23", 0, false}, // not a grouped-thousands pattern
	}
	for _, tc := range cases {
		got, ok := ParseFloat(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseFloat(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseYearTruncates(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2001.9", 2001, true},
		{"1999", 1999, true},
		{"1999.0", 1999, true},
		{"", 0, false},
		{"unknown", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseYear(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseYear(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
