package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := writeFixture(t, "wp.csv", []string{
		"wpdx_id,served_population,install_year",
		"WP1,3000,2010",
		"WP2,1200",           // short row
		"WP3,800,1998,extra", // long row
	})
	tab, err := ReadCSV(path, 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tab.Name != "wp.csv" {
		t.Fatalf("name = %q", tab.Name)
	}
	if len(tab.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tab.Rows))
	}
	for i, row := range tab.Rows {
		if len(row) != 3 {
			t.Fatalf("row %d has %d cells, want 3", i, len(row))
		}
	}
	if tab.Rows[1][2] != "" {
		t.Fatalf("short row not padded: %#v", tab.Rows[1])
	}
}

func TestReadCSVSniffsTSV(t *testing.T) {
	path := writeFixture(t, "wp.tsv", []string{
		"wpdx_id\tserved_population",
		"WP1\t3000",
	})
	tab, err := ReadCSV(path, 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tab.Header) != 2 || tab.Header[1] != "served_population" {
		t.Fatalf("header = %#v", tab.Header)
	}
	if tab.Rows[0][1] != "3000" {
		t.Fatalf("row = %#v", tab.Rows[0])
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.csv", nil)
	if _, err := ReadCSV(path, 0); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tab := &Table{
		Header: []string{"wpdx_id", "note"},
		Rows: [][]string{
			{"WP1", "has, comma"},
			{"WP2", ""},
		},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(tab, path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(path, 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got.Rows) != 2 || got.Rows[0][1] != "has, comma" {
		t.Fatalf("round trip rows = %#v", got.Rows)
	}
}

func TestColumnIndexTrimsNames(t *testing.T) {
	tab := &Table{Header: []string{" wpdx_id ", "flood_risk"}}
	if idx := tab.ColumnIndex("wpdx_id"); idx != 0 {
		t.Fatalf("index = %d, want 0", idx)
	}
	if tab.HasColumn("missing") {
		t.Fatalf("HasColumn reported a missing column")
	}
}

func TestSetColumnOverwritesOrAppends(t *testing.T) {
	tab := &Table{
		Header: []string{"wpdx_id", "priority_tier"},
		Rows:   [][]string{{"WP1", "Tier 1"}, {"WP2", "Tier 3"}},
	}
	if err := tab.SetColumn("priority_tier", []string{"Tier 2", "Tier 2"}); err != nil {
		t.Fatalf("SetColumn overwrite: %v", err)
	}
	if len(tab.Header) != 2 || tab.Rows[0][1] != "Tier 2" {
		t.Fatalf("overwrite failed: %#v", tab.Rows)
	}
	if err := tab.SetColumn("tier_rationale", []string{"a", "b"}); err != nil {
		t.Fatalf("SetColumn append: %v", err)
	}
	if len(tab.Header) != 3 || tab.Rows[1][2] != "b" {
		t.Fatalf("append failed: %#v", tab.Rows)
	}
	if err := tab.SetColumn("bad", []string{"only-one"}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}
