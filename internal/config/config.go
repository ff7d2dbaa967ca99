package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/floodlens/wptriage/internal/tier"
)

// Global configuration structure.
type Global struct {
	ResultsFile string `mapstructure:"results_file" yaml:"results_file"`
	SourceFile  string `mapstructure:"source_file" yaml:"source_file"`
	OutputFile  string `mapstructure:"output_file" yaml:"output_file"`

	// Join key between results and source data.
	JoinKey string `mapstructure:"join_key" yaml:"join_key"`
	// Variables needed from source data for prioritisation.
	PriorityVars []string `mapstructure:"priority_vars" yaml:"priority_vars"`
	// Additional context columns carried through the join.
	ContextVars []string `mapstructure:"context_vars" yaml:"context_vars"`

	// Tier thresholds.
	PopTier1High float64 `mapstructure:"pop_tier1_high" yaml:"pop_tier1_high"`
	PopTier1Med  float64 `mapstructure:"pop_tier1_med" yaml:"pop_tier1_med"`
	PopTier2Low  float64 `mapstructure:"pop_tier2_low" yaml:"pop_tier2_low"`
	YearOld      int     `mapstructure:"year_old" yaml:"year_old"`

	// Reporting columns.
	GroupBy  string `mapstructure:"group_by" yaml:"group_by"`
	CrossTab string `mapstructure:"crosstab" yaml:"crosstab"`
}

// Thresholds converts the configured cutoffs into classifier thresholds.
func (c *Global) Thresholds() tier.Thresholds {
	return tier.Thresholds{
		PopTier1High: c.PopTier1High,
		PopTier1Med:  c.PopTier1Med,
		PopTier2Low:  c.PopTier2Low,
		YearOld:      c.YearOld,
	}
}

// JoinColumns returns the configured columns pulled in from the source table:
// priority variables first, then context variables.
func (c *Global) JoinColumns() []string {
	cols := make([]string, 0, len(c.PriorityVars)+len(c.ContextVars))
	cols = append(cols, c.PriorityVars...)
	cols = append(cols, c.ContextVars...)
	return cols
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.wptriage/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".wptriage")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WPTRIAGE")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("results_file", "waterpoint_flood_vulnerability_bangladesh.csv")
	v.SetDefault("source_file", "eqje-vguj.csv")
	v.SetDefault("output_file", "waterpoint_prioritised_bangladesh.csv")
	v.SetDefault("join_key", "wpdx_id")
	v.SetDefault("priority_vars", []string{"served_population", "install_year"})
	v.SetDefault("context_vars", []string{
		"water_source_clean",
		"water_tech_clean",
		"status_clean",
		"local_population",
		"distance_to_primary",
		"clean_adm1",
		"clean_adm2",
		"clean_adm3",
		"subjective_quality",
		"facility_type",
		"is_urban",
	})
	v.SetDefault("pop_tier1_high", 2500)
	v.SetDefault("pop_tier1_med", 1500)
	v.SetDefault("pop_tier2_low", 1000)
	v.SetDefault("year_old", 2000)
	v.SetDefault("group_by", "clean_adm2")
	v.SetDefault("crosstab", "flood_risk")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".wptriage")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
