package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Persist confirmed aliases and fix rules for future runs",
}

var promoteAliasCmd = &cobra.Command{
	Use:   "alias <raw-header> <canonical-field>",
	Short: "Record that a raw header maps to a canonical field",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, field := args[0], args[1]
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		if _, ok := reg.Lookup(field); !ok {
			return fmt.Errorf("unknown canonical field %q", field)
		}
		store := openStore()
		store.PromoteAlias(raw, field)
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Promoted alias %q -> %s\n", raw, field)
		return nil
	},
}

var promoteFixCmd = &cobra.Command{
	Use:   "fix <field> <rule-type> <original> <replacement>",
	Short: "Record a value correction to apply automatically",
	Long: `promote fix records an accepted correction so future cleaning runs apply it
before any heuristic suggestion is generated. <original> may be an exact
value or a glob pattern; re-promoting the same (field, rule-type, original)
key overwrites the previous replacement.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, ruleType, original, replacement := args[0], args[1], args[2], args[3]
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		if _, ok := reg.Lookup(field); !ok {
			return fmt.Errorf("unknown canonical field %q", field)
		}
		store := openStore()
		store.PromoteFix(field, ruleType, original, replacement)
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Promoted fix rule for %s: %q -> %q (%s)\n", field, original, replacement, ruleType)
		return nil
	},
}

var promoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show promoted aliases and fix rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		aliases, rules := store.Len()
		if aliases == 0 && rules == 0 {
			fmt.Println("No promotions recorded")
			return nil
		}
		if aliases > 0 {
			fmt.Printf("Header aliases (%d):\n", aliases)
			for raw, field := range store.Aliases() {
				fmt.Printf("  %-30s -> %s\n", raw, field)
			}
		}
		if rules > 0 {
			fmt.Printf("Fix rules (%d):\n", rules)
			for _, r := range store.Rules("") {
				fmt.Printf("  %-20s %-22s %q -> %q\n", r.Field, r.RuleType, r.Original, r.Replacement)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
	promoteCmd.AddCommand(promoteAliasCmd)
	promoteCmd.AddCommand(promoteFixCmd)
	promoteCmd.AddCommand(promoteListCmd)
}
