package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datamend/datamend-cli/internal/utils"
)

var (
	suggestJSON      bool
	suggestOverrides []string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <input.csv>",
	Short: "Propose targeted fixes for defects cleaning could not resolve",
	Long: `suggest runs the pipeline and prints heuristic fix proposals for cells that
are still invalid or incomplete: email domain typos, missing phone country
codes, reinterpretable dates, malformed URLs and postal formatting. Accepted
fixes can be made permanent with 'datamend promote fix'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := parseOverrides(suggestOverrides)
		if err != nil {
			return err
		}
		report, _, err := runPipeline(args[0], overrides)
		if err != nil {
			return err
		}
		if suggestJSON {
			b, err := utils.PrettyJSON(report.Suggestions)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		if len(report.Suggestions) == 0 {
			fmt.Println("✓ No issues found")
			return nil
		}
		fmt.Printf("%d suggested fix(es):\n", len(report.Suggestions))
		for _, s := range report.Suggestions {
			fmt.Printf("  %s\n", s)
		}
		fmt.Println("\nPromote an accepted fix with:")
		fmt.Println("  datamend promote fix <field> <rule-type> <original> <replacement>")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "emit suggestions as JSON")
	suggestCmd.Flags().StringArrayVar(&suggestOverrides, "map", nil, "mapping override raw-header=canonical-field (repeatable)")
}
