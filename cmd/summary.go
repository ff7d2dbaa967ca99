package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floodlens/wptriage/internal/report"
	"github.com/floodlens/wptriage/internal/table"
	"github.com/floodlens/wptriage/internal/utils"
)

var (
	sumGroupBy   string
	sumCrossTab  string
	sumDelimiter string
	sumJSONPath  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Aggregate an already-prioritised CSV",
	Long: `Recomputes the tier distribution, per-group counts, cross-tabulation and
population statistics over a previously prioritised CSV. Tiers are taken from
the persisted priority_tier column, not re-derived.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		delim, err := parseDelimiter(sumDelimiter)
		if err != nil {
			return err
		}
		t, err := table.ReadCSV(args[0], delim)
		if err != nil {
			return err
		}

		opt := report.DefaultOptions()
		opt.GroupBy = firstNonEmpty(sumGroupBy, c.GroupBy)
		opt.CrossTab = firstNonEmpty(sumCrossTab, c.CrossTab)
		s, err := report.Build(t, opt)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), s.Render())
		if sumJSONPath != "" {
			b, err := utils.PrettyJSON(s)
			if err != nil {
				return err
			}
			if err := os.WriteFile(sumJSONPath, b, 0o644); err != nil {
				return fmt.Errorf("write json summary: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote JSON summary to %s\n", sumJSONPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumGroupBy, "group-by", "", "column for per-group tier counts (default from config)")
	summaryCmd.Flags().StringVar(&sumCrossTab, "crosstab", "", "categorical column to cross-tabulate against tiers (default from config)")
	summaryCmd.Flags().StringVar(&sumDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	summaryCmd.Flags().StringVar(&sumJSONPath, "json", "", "optional path to write the summary as JSON")
}
