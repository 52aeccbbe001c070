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
	// SchemaPath points at the canonical schema CSV. Empty means the
	// built-in company schema.
	SchemaPath string `mapstructure:"schema_path" yaml:"schema_path"`
	// StorePath is the promoted aliases/fix-rules document.
	StorePath string `mapstructure:"store_path" yaml:"store_path"`
	// DefaultRegion drives phone country-code prefixing and postal
	// formatting conventions (us, ca, in, gb, au). Empty disables both.
	DefaultRegion string `mapstructure:"default_region" yaml:"default_region"`
	// OutputDir is where cleaned tables and reports land by default.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// MaxRows caps how many data rows are processed per run; 0 = unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
	// SampleValues is how many example cell values commands print per column.
	SampleValues int `mapstructure:"sample_values" yaml:"sample_values"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.datamend/config.yaml, creating the directory if
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
		dir := filepath.Join(home, ".datamend")
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
	v.SetEnvPrefix("DATAMEND")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("schema_path", "")
	v.SetDefault("default_region", "us")
	v.SetDefault("output_dir", "")
	v.SetDefault("max_rows", 100000)
	v.SetDefault("sample_values", 3)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".datamend")
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
	// Resolve store_path default: ~/.datamend/promoted_fixes.json
	if c.StorePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.StorePath = filepath.Join(home, ".datamend", "promoted_fixes.json")
	}
	return &c, nil
}
