package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datamend/datamend-cli/internal/mapping"
	"github.com/datamend/datamend-cli/internal/table"
	"github.com/datamend/datamend-cli/internal/utils"
)

var mapJSON bool

var mapCmd = &cobra.Command{
	Use:   "map <input.csv>",
	Short: "Resolve input headers against the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		store := openStore()

		t, err := table.Read(args[0], table.Options{MaxRows: 1})
		if err != nil {
			return err
		}
		res := mapping.NewResolver(reg, store).Resolve(t.Headers)

		if mapJSON {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		for _, a := range res.Assignments {
			field := a.Field
			if field == "" {
				field = "(unmapped)"
			}
			fmt.Printf("%-30s -> %-20s %.2f  %s\n", a.RawHeader, field, a.Confidence, a.Method)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().BoolVar(&mapJSON, "json", false, "emit assignments as JSON")
}
