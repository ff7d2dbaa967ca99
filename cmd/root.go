package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/floodlens/wptriage/internal/config"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool
	// Threshold flags (override config if set)
	flagTier1High float64
	flagTier1Med  float64
	flagTier2Low  float64
	flagOldYear   int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "wptriage",
	Short: "WPTriage CLI: prioritise waterpoints for flood anticipatory action",
	Long: `WPTriage joins classified waterpoint flood-risk results with the original
WPdx+ source data and assigns each waterpoint a priority tier (1, 2, 3 or
Unknown) from served population and infrastructure age, following the OCHA
Bangladesh Anticipatory Action Framework for Monsoon Floods.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.wptriage/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().Float64Var(&flagTier1High, "tier1-high", 0, "population above which a waterpoint is always Tier 1 (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagTier1Med, "tier1-med", 0, "population above which old infrastructure is Tier 1 (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagTier2Low, "tier2-low", 0, "population at or above which recent infrastructure is Tier 2 (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagOldYear, "old-year", 0, "install year before which infrastructure counts as old (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("tier1-high") && flagTier1High > 0 {
		cfg.PopTier1High = flagTier1High
	}
	if f.Changed("tier1-med") && flagTier1Med > 0 {
		cfg.PopTier1Med = flagTier1Med
	}
	if f.Changed("tier2-low") && flagTier2Low > 0 {
		cfg.PopTier2Low = flagTier2Low
	}
	if f.Changed("old-year") && flagOldYear > 0 {
		cfg.YearOld = flagOldYear
	}
}

// ensureConfig returns the loaded config, loading it on demand for code paths
// that run before cobra.OnInitialize (e.g. direct test invocations).
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		loadConfig()
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}
