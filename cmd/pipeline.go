package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/datamend/datamend-cli/internal/cleaning"
	"github.com/datamend/datamend-cli/internal/mapping"
	"github.com/datamend/datamend-cli/internal/promote"
	"github.com/datamend/datamend-cli/internal/schema"
	"github.com/datamend/datamend-cli/internal/suggest"
	"github.com/datamend/datamend-cli/internal/table"
)

// columnReport is the per-column slice of a run report surfaced to the
// presentation layer.
type columnReport struct {
	Field    string           `json:"field"`
	Category schema.Category  `json:"category"`
	Before   cleaning.Quality `json:"before"`
	After    cleaning.Quality `json:"after"`
	RulesHit int              `json:"promoted_rules_applied,omitempty"`
}

// runReport is the machine-readable outcome of one mapping+cleaning pass.
type runReport struct {
	RunID       string               `json:"run_id"`
	Input       string               `json:"input"`
	Rows        int                  `json:"rows"`
	Mapping     mapping.Result       `json:"mapping"`
	Columns     []columnReport       `json:"columns"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
}

// runPipeline executes the full flow on one input file: resolve headers,
// apply user overrides, project mapped columns (merging duplicates), clean
// per column, apply promoted fix rules, and collect fix suggestions.
// The returned table holds mapped canonical columns in schema order followed
// by unmapped input columns passed through untouched.
func runPipeline(path string, overrides map[string]string) (*runReport, *table.Table, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, nil, err
	}
	store := openStore()

	t, err := table.Read(path, table.Options{MaxRows: maxRows()})
	if err != nil {
		return nil, nil, err
	}

	resolver := mapping.NewResolver(reg, store)
	res := resolver.Resolve(t.Headers)
	if err := applyOverrides(&res, reg, overrides); err != nil {
		return nil, nil, err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}

	// Column layout: mapped canonical fields in schema order, then
	// unmapped input headers in input order.
	sources := map[string][]int{}
	for i, a := range res.Assignments {
		if a.Field != "" {
			sources[a.Field] = append(sources[a.Field], i)
		}
	}
	var columns []string
	for _, f := range reg.Fields() {
		if len(sources[f.Name]) > 0 {
			columns = append(columns, f.Name)
		}
	}
	for i, a := range res.Assignments {
		if a.Field == "" {
			name := a.RawHeader
			sources[name] = append(sources[name], i)
			columns = append(columns, name)
		}
	}
	out := t.Project(columns, sources)

	report := &runReport{
		RunID:   uuid.NewString(),
		Input:   path,
		Rows:    t.NumRows(),
		Mapping: res,
	}

	engine := suggest.New(store, region())
	opts := cleaning.Options{Region: region()}
	for ci, name := range columns {
		field, ok := reg.Lookup(name)
		if !ok {
			continue // unmapped passthrough column
		}
		cleaned := cleaning.Clean(out.Column(ci), field, opts)
		hits := applyPromotedRules(&cleaned, field, store, opts)
		if err := out.SetColumn(ci, cleaned.Values()); err != nil {
			return nil, nil, err
		}
		report.Columns = append(report.Columns, columnReport{
			Field:    field.Name,
			Category: field.Category,
			Before:   cleaned.Before,
			After:    cleaned.After,
			RulesHit: hits,
		})
		report.Suggestions = append(report.Suggestions, engine.Suggest(&cleaned)...)
	}
	return report, out, nil
}

// applyOverrides rewrites assignments according to explicit user choices
// ("raw=field", or "raw=" to unmap). Overridden assignments carry full
// confidence and are eligible for promotion.
func applyOverrides(res *mapping.Result, reg *schema.Registry, overrides map[string]string) error {
	for raw, field := range overrides {
		if field != "" {
			if _, ok := reg.Lookup(field); !ok {
				return fmt.Errorf("override %q=%q: unknown canonical field", raw, field)
			}
		}
		found := false
		for i := range res.Assignments {
			if res.Assignments[i].RawHeader != raw {
				continue
			}
			found = true
			if field == "" {
				res.Assignments[i] = mapping.Assignment{RawHeader: raw, Method: mapping.MethodNone}
			} else {
				res.Assignments[i] = mapping.Assignment{
					RawHeader:  raw,
					Field:      field,
					Confidence: 1.0,
					Method:     mapping.MethodPromotedAlias,
				}
			}
		}
		if !found {
			return fmt.Errorf("override %q: no such input header", raw)
		}
	}
	return nil
}

// applyPromotedRules rewrites cells matched by user-accepted fix rules and
// revalidates them. Returns the number of cells rewritten.
func applyPromotedRules(res *cleaning.Result, field schema.Field, store *promote.Store, opts cleaning.Options) int {
	if store == nil || len(store.Rules(field.Name)) == 0 {
		return 0
	}
	hits := 0
	for i := range res.Cells {
		c := &res.Cells[i]
		if c.Missing {
			continue
		}
		rule, ok := store.MatchRule(field.Name, c.Value)
		if !ok {
			rule, ok = store.MatchRule(field.Name, c.Original)
		}
		if !ok || rule.Replacement == c.Value {
			continue
		}
		c.Value = rule.Replacement
		c.Filled = false
		c.Invalid = !cleaning.Validate(c.Value, field, opts)
		hits++
	}
	if hits > 0 {
		res.RecomputeAfter()
	}
	return hits
}

// parseOverrides turns repeated "raw=field" flag values into a map.
func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		eq := strings.Index(p, "=")
		if eq <= 0 {
			return nil, fmt.Errorf("invalid --map %q (want raw-header=canonical-field)", p)
		}
		out[p[:eq]] = strings.TrimSpace(p[eq+1:])
	}
	return out, nil
}
