package table

import (
	"fmt"
	"strings"
)

// LeftJoin combines primary with the named columns of secondary on key,
// preserving every primary row in order. Duplicate keys in secondary fan the
// matching primary row out once per match; primary rows without a match keep
// empty cells for the joined columns. Configured columns absent from
// secondary's schema are skipped silently. Empty key cells never match.
func LeftJoin(primary, secondary *Table, key string, columns []string) (*Table, error) {
	pk := primary.ColumnIndex(key)
	if pk < 0 {
		return nil, fmt.Errorf("join key %q not found in %s", key, primary.Name)
	}
	sk := secondary.ColumnIndex(key)
	if sk < 0 {
		return nil, fmt.Errorf("join key %q not found in %s", key, secondary.Name)
	}

	// Select the subset of configured columns secondary actually has.
	var selIdx []int
	var selNames []string
	seen := map[int]bool{sk: true}
	for _, name := range columns {
		idx := secondary.ColumnIndex(name)
		if idx < 0 || seen[idx] {
			continue
		}
		seen[idx] = true
		selIdx = append(selIdx, idx)
		selNames = append(selNames, strings.TrimSpace(secondary.Header[idx]))
	}

	// Key -> secondary row indices, in order of appearance.
	index := make(map[string][]int, len(secondary.Rows))
	for i, row := range secondary.Rows {
		k := strings.TrimSpace(row[sk])
		if k == "" {
			continue
		}
		index[k] = append(index[k], i)
	}

	out := &Table{
		Name:   primary.Name,
		Header: append(append([]string(nil), primary.Header...), selNames...),
	}
	for _, prow := range primary.Rows {
		k := strings.TrimSpace(prow[pk])
		matches := index[k]
		if k == "" || len(matches) == 0 {
			row := make([]string, 0, len(out.Header))
			row = append(row, prow...)
			row = append(row, make([]string, len(selIdx))...)
			out.Rows = append(out.Rows, row)
			continue
		}
		for _, si := range matches {
			srow := secondary.Rows[si]
			row := make([]string, 0, len(out.Header))
			row = append(row, prow...)
			for _, idx := range selIdx {
				row = append(row, srow[idx])
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
