package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/floodlens/wptriage/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set WPTriage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "results_file: %s\n", c.ResultsFile)
		fmt.Fprintf(out, "source_file: %s\n", c.SourceFile)
		fmt.Fprintf(out, "output_file: %s\n", c.OutputFile)
		fmt.Fprintf(out, "join_key: %s\n", c.JoinKey)
		fmt.Fprintf(out, "priority_vars: %s\n", strings.Join(c.PriorityVars, ", "))
		fmt.Fprintf(out, "context_vars: %s\n", strings.Join(c.ContextVars, ", "))
		fmt.Fprintf(out, "pop_tier1_high: %.0f\n", c.PopTier1High)
		fmt.Fprintf(out, "pop_tier1_med: %.0f\n", c.PopTier1Med)
		fmt.Fprintf(out, "pop_tier2_low: %.0f\n", c.PopTier2Low)
		fmt.Fprintf(out, "year_old: %d\n", c.YearOld)
		fmt.Fprintf(out, "group_by: %s\n", c.GroupBy)
		fmt.Fprintf(out, "crosstab: %s\n", c.CrossTab)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		switch key {
		case "results_file":
			c.ResultsFile = val
		case "source_file":
			c.SourceFile = val
		case "output_file":
			c.OutputFile = val
		case "join_key":
			c.JoinKey = val
		case "group_by":
			c.GroupBy = val
		case "crosstab":
			c.CrossTab = val
		case "pop_tier1_high", "pop_tier1_med", "pop_tier2_low":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid threshold for %s: %v", key, val)
			}
			switch key {
			case "pop_tier1_high":
				c.PopTier1High = f
			case "pop_tier1_med":
				c.PopTier1Med = f
			case "pop_tier2_low":
				c.PopTier2Low = f
			}
		case "year_old":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for year_old: %v", val)
			}
			c.YearOld = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
