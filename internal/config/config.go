package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// OutputDir is where calculate writes CSV exports and run records when
	// no --output flag is given.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// Delimiter forces a CSV delimiter: "," | ";" | "tab". Empty sniffs by
	// file extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// FloorSentinel replaces non-positive final concentrations. The lab's
	// reporting policy decides between 1 and 0; never mix within a study.
	FloorSentinel float64 `mapstructure:"floor_sentinel" yaml:"floor_sentinel"`
	// IncludeQC reports qc samples in the final concentration table.
	IncludeQC bool `mapstructure:"include_qc" yaml:"include_qc"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.msquant/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".msquant")
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
	v.SetEnvPrefix("MSQUANT")
	v.AutomaticEnv()

	v.SetDefault("output_dir", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("floor_sentinel", 1.0)
	v.SetDefault("include_qc", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".msquant")
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
