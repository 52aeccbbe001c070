package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datamend/datamend-cli/internal/utils"
)

var schemaJSON bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the canonical schema in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		if schemaJSON {
			type field struct {
				Name     string `json:"name"`
				Category string `json:"category"`
				Required bool   `json:"required"`
			}
			out := make([]field, 0, reg.Len())
			for _, f := range reg.Fields() {
				out = append(out, field{Name: f.Name, Category: string(f.Category), Required: f.Required})
			}
			b, err := utils.PrettyJSON(out)
			if err != nil {
				return err
			}
			os.Stdout.Write(append(b, '\n'))
			return nil
		}
		source := "built-in"
		if cfg != nil && cfg.SchemaPath != "" {
			source = cfg.SchemaPath
		}
		fmt.Printf("Canonical schema (%s), %d fields:\n", source, reg.Len())
		for _, f := range reg.Fields() {
			req := ""
			if f.Required {
				req = "required"
			}
			fmt.Printf("  %-20s %-12s %s\n", f.Name, f.Category, req)
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(schemaCmd)
}
