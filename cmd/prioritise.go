package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floodlens/wptriage/internal/pipeline"
	"github.com/floodlens/wptriage/internal/report"
	"github.com/floodlens/wptriage/internal/utils"
)

var (
	priResults   string
	priSource    string
	priOutput    string
	priJoinKey   string
	priGroupBy   string
	priCrossTab  string
	priDelimiter string
	priJSONPath  string
)

var prioritiseCmd = &cobra.Command{
	Use:   "prioritise",
	Short: "Join, classify and persist waterpoint priority tiers",
	Long: `Loads the classified flood-risk results and the original WPdx+ source data,
left-joins them on the configured key, assigns a priority tier and rationale
to every waterpoint and writes the enriched table as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		delim, err := parseDelimiter(priDelimiter)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			ResultsPath: firstNonEmpty(priResults, c.ResultsFile),
			SourcePath:  firstNonEmpty(priSource, c.SourceFile),
			OutputPath:  firstNonEmpty(priOutput, c.OutputFile),
			JoinKey:     firstNonEmpty(priJoinKey, c.JoinKey),
			JoinColumns: c.JoinColumns(),
			Thresholds:  c.Thresholds(),
			Delimiter:   delim,
			Log:         cmd.OutOrStdout(),
		}
		ropt := report.DefaultOptions()
		ropt.GroupBy = firstNonEmpty(priGroupBy, c.GroupBy)
		ropt.CrossTab = firstNonEmpty(priCrossTab, c.CrossTab)
		opts.Report = ropt

		res, err := pipeline.Run(opts)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), res.Summary.Render())

		if priJSONPath != "" {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			if err := os.WriteFile(priJSONPath, b, 0o644); err != nil {
				return fmt.Errorf("write json summary: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote JSON summary to %s\n", priJSONPath)
		}
		if debug {
			fmt.Fprintf(cmd.OutOrStdout(), "Run ID: %s\n", res.RunID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Done! Results saved to: %s\n", res.OutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prioritiseCmd)
	prioritiseCmd.Flags().StringVarP(&priResults, "results", "r", "", "classified results CSV (default from config)")
	prioritiseCmd.Flags().StringVarP(&priSource, "source", "s", "", "original WPdx+ CSV (default from config)")
	prioritiseCmd.Flags().StringVarP(&priOutput, "output", "o", "", "output CSV (default from config)")
	prioritiseCmd.Flags().StringVar(&priJoinKey, "join-key", "", "join key column (default from config)")
	prioritiseCmd.Flags().StringVar(&priGroupBy, "group-by", "", "column for per-group tier counts (default from config)")
	prioritiseCmd.Flags().StringVar(&priCrossTab, "crosstab", "", "categorical column to cross-tabulate against tiers (default from config)")
	prioritiseCmd.Flags().StringVar(&priDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	prioritiseCmd.Flags().StringVar(&priJSONPath, "json", "", "optional path to write the run summary as JSON")
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	}
	return 0, fmt.Errorf("unsupported --delimiter: %s", s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
