package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var groupedThousands = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseFloat coerces a raw cell to a finite float64. Empty cells, non-numeric
// strings, NaN and infinities all report ok=false; callers treat those the
// same as a missing value.
func ParseFloat(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	if raw == "" {
		return 0, false
	}
	if groupedThousands.MatchString(raw) {
		raw = strings.ReplaceAll(raw, ",", "")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseYear coerces a raw cell to an integer year via float truncation,
// so "2001.9" yields 2001.
func ParseYear(s string) (int, bool) {
	f, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}
	return int(f), true
}
