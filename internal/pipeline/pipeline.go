// Package pipeline orchestrates one prioritisation run: load both tables,
// join, classify every row, aggregate and persist the enriched table.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/floodlens/wptriage/internal/report"
	"github.com/floodlens/wptriage/internal/table"
	"github.com/floodlens/wptriage/internal/tier"
)

// Derived column names written by the classification pass.
const (
	TierColumn      = "priority_tier"
	RationaleColumn = "tier_rationale"
)

// Options configures a run. Zero-value column names are filled from the
// standard WPdx+ schema.
type Options struct {
	ResultsPath string
	SourcePath  string
	OutputPath  string

	JoinKey     string
	JoinColumns []string // source columns to carry through the join

	PopulationColumn string // defaults to served_population
	YearColumn       string // defaults to install_year

	Thresholds tier.Thresholds
	Report     report.Options
	Delimiter  rune

	// Log receives progress lines; nil discards them.
	Log io.Writer
}

// Result captures what a run produced.
type Result struct {
	RunID      string          `json:"run_id"`
	OutputPath string          `json:"output_path"`
	Fallback   bool            `json:"fallback"`
	Rows       int             `json:"rows"`
	Matched    int             `json:"matched"`
	Summary    *report.Summary `json:"summary"`
}

// Run executes the full pipeline. Missing or unparsable priority values never
// fail the run: those rows resolve to the Unknown tier. A failed write to
// OutputPath is retried once against a timestamp-suffixed fallback path.
func Run(opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = io.Discard
	}
	if opts.PopulationColumn == "" {
		opts.PopulationColumn = "served_population"
	}
	if opts.YearColumn == "" {
		opts.YearColumn = "install_year"
	}

	fmt.Fprintf(log, "Loading classified results from: %s\n", opts.ResultsPath)
	results, err := table.ReadCSV(opts.ResultsPath, opts.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	fmt.Fprintf(log, "Loaded %d classified waterpoints.\n", len(results.Rows))

	fmt.Fprintf(log, "Loading original source data from: %s\n", opts.SourcePath)
	source, err := table.ReadCSV(opts.SourcePath, opts.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}
	fmt.Fprintf(log, "Loaded %d waterpoints from source.\n", len(source.Rows))

	fmt.Fprintf(log, "Joining on '%s'...\n", opts.JoinKey)
	joined, err := table.LeftJoin(results, source, opts.JoinKey, opts.JoinColumns)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}
	fmt.Fprintf(log, "After join: %d waterpoints.\n", len(joined.Rows))

	matched := countMatched(joined, opts.PopulationColumn)
	fmt.Fprintf(log, "Matched to source data: %d/%d waterpoints.\n", matched, len(joined.Rows))

	fmt.Fprintln(log, "Applying tier classification...")
	if err := classify(joined, opts); err != nil {
		return nil, err
	}

	summary, err := report.Build(joined, opts.Report)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	outPath, fallback, err := persist(joined, opts.OutputPath, log)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:      uuid.NewString(),
		OutputPath: outPath,
		Fallback:   fallback,
		Rows:       len(joined.Rows),
		Matched:    matched,
		Summary:    summary,
	}, nil
}

// classify appends (or overwrites) the tier and rationale columns. The pass
// is deterministic, so re-running it over its own output is a no-op.
func classify(t *table.Table, opts Options) error {
	popIdx := t.ColumnIndex(opts.PopulationColumn)
	yearIdx := t.ColumnIndex(opts.YearColumn)

	tiers := make([]string, len(t.Rows))
	rationales := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		popRaw := cell(row, popIdx)
		yearRaw := cell(row, yearIdx)
		tr := tier.AssignRaw(popRaw, yearRaw, opts.Thresholds)
		tiers[i] = tr.String()
		rationales[i] = tier.Rationale(tr, popRaw, yearRaw, opts.Thresholds)
	}
	if err := t.SetColumn(TierColumn, tiers); err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	if err := t.SetColumn(RationaleColumn, rationales); err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func countMatched(t *table.Table, popColumn string) int {
	idx := t.ColumnIndex(popColumn)
	if idx < 0 {
		return 0
	}
	n := 0
	for _, row := range t.Rows {
		if strings.TrimSpace(row[idx]) != "" {
			n++
		}
	}
	return n
}

func persist(t *table.Table, path string, log io.Writer) (string, bool, error) {
	err := table.WriteCSV(t, path)
	if err == nil {
		return path, false, nil
	}
	fmt.Fprintf(log, "⚠ Could not save to %s: %v\n", path, err)
	backup := fallbackPath(path, time.Now())
	if err := table.WriteCSV(t, backup); err != nil {
		return "", false, fmt.Errorf("write output (fallback %s): %w", backup, err)
	}
	fmt.Fprintf(log, "✓ Saved to backup: %s\n", backup)
	return backup, true, nil
}

// fallbackPath derives the timestamp-suffixed destination used when the
// intended output cannot be written, e.g. out.csv -> out_20250101_120000.csv.
func fallbackPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".csv"
	}
	return base + "_" + now.Format("20060102_150405") + ext
}
