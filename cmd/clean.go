package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datamend/datamend-cli/internal/utils"
)

var (
	cleanOutput     string
	cleanReportPath string
	cleanOverrides  []string
	cleanPromote    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input.csv>",
	Short: "Map, clean and validate a CSV against the canonical schema",
	Long: `clean runs the full pipeline on one input file: header mapping, per-column
value normalization, promoted fix rules, and quality metrics. The cleaned
table is written as CSV; pass --report for the machine-readable run report
the review surface consumes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		overrides, err := parseOverrides(cleanOverrides)
		if err != nil {
			return err
		}
		report, cleaned, err := runPipeline(input, overrides)
		if err != nil {
			return err
		}

		if cleanPromote && len(overrides) > 0 {
			store := openStore()
			for raw, field := range overrides {
				if field != "" {
					store.PromoteAlias(raw, field)
				}
			}
			if err := store.Save(); err != nil {
				fmt.Printf("⚠ Warning: %v (aliases kept for this session only)\n", err)
			} else {
				fmt.Printf("✓ Promoted %d header alias(es)\n", len(overrides))
			}
		}

		outPath := cleanOutput
		if outPath == "" {
			base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			dir := filepath.Dir(input)
			if cfg != nil && cfg.OutputDir != "" {
				dir = cfg.OutputDir
				if err := utils.EnsureDir(dir); err != nil {
					return err
				}
			}
			outPath = filepath.Join(dir, "cleaned_"+base+".csv")
		}
		if err := cleaned.Write(outPath); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote cleaned table to %s (%d rows)\n", outPath, cleaned.NumRows())

		for _, c := range report.Columns {
			fmt.Printf("  %-20s complete %5.1f%% -> %5.1f%%   valid %5.1f%% -> %5.1f%%\n",
				c.Field,
				c.Before.Completeness*100, c.After.Completeness*100,
				c.Before.Validity*100, c.After.Validity*100)
		}
		if n := len(report.Suggestions); n > 0 {
			fmt.Printf("%d issue(s) remain; run 'datamend suggest %s' to review fixes\n", n, input)
		}

		if cleanReportPath != "" {
			b, err := utils.PrettyJSON(report)
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(cleanReportPath, b); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("✓ Wrote run report to %s\n", cleanReportPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "path for the cleaned CSV (default: cleaned_<name>.csv)")
	cleanCmd.Flags().StringVar(&cleanReportPath, "report", "", "optional path for the JSON run report")
	cleanCmd.Flags().StringArrayVar(&cleanOverrides, "map", nil, "mapping override raw-header=canonical-field (repeatable; empty field unmaps)")
	cleanCmd.Flags().BoolVar(&cleanPromote, "promote-aliases", false, "persist --map overrides as promoted aliases")
}
