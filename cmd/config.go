package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/datamend/datamend-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage datamend configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("configuration unavailable")
		}
		schemaPath := cfg.SchemaPath
		if schemaPath == "" {
			schemaPath = "(built-in)"
		}
		outputDir := cfg.OutputDir
		if outputDir == "" {
			outputDir = "(alongside input)"
		}
		fmt.Println("Effective configuration:")
		fmt.Printf("  schema_path:    %s\n", schemaPath)
		fmt.Printf("  store_path:     %s\n", cfg.StorePath)
		fmt.Printf("  default_region: %s\n", cfg.DefaultRegion)
		fmt.Printf("  output_dir:     %s\n", outputDir)
		fmt.Printf("  max_rows:       %d\n", cfg.MaxRows)
		fmt.Printf("  sample_values:  %d\n", cfg.SampleValues)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			cfg = &cfgpkg.Global{}
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		target := cfgFile
		if target == "" {
			target = "~/.datamend/config.yaml"
		}
		fmt.Printf("✓ Wrote configuration to %s\n", target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
