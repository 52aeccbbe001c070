package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/datamend/datamend-cli/internal/config"
	"github.com/datamend/datamend-cli/internal/promote"
	"github.com/datamend/datamend-cli/internal/schema"
)

var (
	// Global flags (wired to config in loadConfig)
	cfgFile    string
	debug      bool
	flagSchema string
	flagStore  string
	flagRegion string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "datamend",
	Short: "datamend: map messy CSV headers onto a canonical schema and clean the data",
	Long: `datamend maps arbitrary, inconsistently named CSV columns onto a fixed
canonical schema, normalizes the cell values per field category, and proposes
targeted fixes for the defects that remain. Confirmed header aliases and fix
rules are promoted to a local store and applied automatically on future runs.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datamend/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSchema, "schema", "", "canonical schema CSV (overrides config; empty = built-in schema)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "promotion store path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "default region for phone/postal conventions (overrides config)")
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
	if f.Changed("schema") {
		cfg.SchemaPath = flagSchema
	}
	if f.Changed("store") && flagStore != "" {
		cfg.StorePath = flagStore
	}
	if f.Changed("region") {
		cfg.DefaultRegion = flagRegion
	}
}

// loadRegistry resolves the canonical schema: the configured CSV if set,
// otherwise the built-in company schema. Schema errors are fatal.
func loadRegistry() (*schema.Registry, error) {
	path := ""
	if cfg != nil {
		path = cfg.SchemaPath
	}
	if path == "" {
		return schema.Default(), nil
	}
	return schema.Load(path)
}

// openStore loads the promotion store, downgrading corrupt persisted state
// to an empty store with a warning. Startup never fails on bad state.
func openStore() *promote.Store {
	path := ""
	if cfg != nil {
		path = cfg.StorePath
	}
	s, err := promote.Open(path)
	if err != nil {
		var re *promote.ReadError
		if errors.As(err, &re) {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v; continuing with an empty store\n", re)
		} else {
			fmt.Fprintf(os.Stderr, "⚠ Warning: promotion store unavailable: %v\n", err)
		}
	}
	return s
}

func region() string {
	if cfg != nil {
		return cfg.DefaultRegion
	}
	return ""
}

func maxRows() int {
	if cfg != nil {
		return cfg.MaxRows
	}
	return 0
}
