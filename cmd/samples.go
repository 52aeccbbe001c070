package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/datamend/datamend-cli/internal/schema"
)

var samplesDir string

var initSamplesCmd = &cobra.Command{
	Use:   "init-samples",
	Short: "Write the built-in schema and sample input files for experimentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := schema.WriteSamples(samplesDir)
		if err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
		sort.Strings(written)
		fmt.Printf("✓ Wrote %d sample files:\n", len(written))
		for _, p := range written {
			fmt.Println("  " + p)
		}
		fmt.Println("\nTry: datamend map " + samplesDir + "/sample_messy.csv")
		return nil
	},
}

func init() {
	initSamplesCmd.Flags().StringVarP(&samplesDir, "dir", "d", "samples", "directory to write sample files into")
	rootCmd.AddCommand(initSamplesCmd)
}
