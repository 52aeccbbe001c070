package cleaning

import (
	"strings"

	"github.com/datamend/datamend-cli/internal/schema"
)

// Options configures a cleaning pass. Region drives phone country-code
// prefixing; everything else is fixed per category.
type Options struct {
	Region string
}

// Cell is the per-row outcome for one column position. Exactly one cell per
// input row, in input order; rows are never dropped.
type Cell struct {
	Original string `json:"original"`
	Value    string `json:"value"`
	Missing  bool   `json:"missing,omitempty"` // input was empty
	Filled   bool   `json:"filled,omitempty"`  // placeholder substituted
	Invalid  bool   `json:"invalid,omitempty"` // fails the category format check
}

// Quality summarizes a column: completeness is the non-missing share of all
// rows, validity the format-passing share of non-missing values. Filled
// placeholders count as present but never as valid.
type Quality struct {
	Completeness float64 `json:"completeness"`
	Validity     float64 `json:"validity"`
}

// Result is one cleaned column with before/after metrics and full per-row
// traceability for the suggestion tier.
type Result struct {
	Field  schema.Field `json:"-"`
	Cells  []Cell       `json:"cells"`
	Before Quality      `json:"before"`
	After  Quality      `json:"after"`
}

// Values returns the cleaned column in row order.
func (r *Result) Values() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Value
	}
	return out
}

// Clean normalizes one column for its canonical field. It is a pure
// function of its inputs: no promotion-store state, no side effects, and no
// per-cell failure ever aborts the column.
func Clean(values []string, field schema.Field, opt Options) Result {
	rl := ruleFor(field.Category)
	res := Result{Field: field, Cells: make([]Cell, len(values))}

	for i, raw := range values {
		cell := Cell{Original: raw}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			cell.Missing = true
			switch field.Category {
			case schema.Numeric, schema.Currency:
				cell.Value = "0"
				cell.Filled = true
			case schema.Text:
				cell.Value = "Unknown"
				cell.Filled = true
			default:
				cell.Value = ""
			}
			res.Cells[i] = cell
			continue
		}

		cleaned := rl.transform(trimmed, opt)
		if field.Category == schema.Numeric || field.Category == schema.Currency {
			if !rl.validate(cleaned, opt) {
				// unparseable numeric: substitute zero, keep the defect visible
				cell.Value = "0"
				cell.Filled = true
				cell.Invalid = true
				res.Cells[i] = cell
				continue
			}
		}
		cell.Value = cleaned
		cell.Invalid = !rl.validate(cleaned, opt)
		res.Cells[i] = cell
	}

	res.Before = qualityBefore(values, rl, opt)
	res.After = qualityAfter(res.Cells)
	return res
}

// RecomputeAfter refreshes the after-cleaning metrics, for callers that
// rewrite cells (promoted fix rules, accepted suggestions).
func (r *Result) RecomputeAfter() {
	r.After = qualityAfter(r.Cells)
}

// Validate reports whether a value passes the format check for the field's
// category. Used when promoted fix rules rewrite already-cleaned cells.
func Validate(value string, field schema.Field, opt Options) bool {
	return ruleFor(field.Category).validate(value, opt)
}

func qualityBefore(values []string, rl rule, opt Options) Quality {
	total := len(values)
	nonMissing, valid := 0, 0
	for _, v := range values {
		t := strings.TrimSpace(v)
		if t == "" {
			continue
		}
		nonMissing++
		if rl.validate(t, opt) {
			valid++
		}
	}
	return Quality{
		Completeness: ratio(nonMissing, total),
		Validity:     ratio(valid, nonMissing),
	}
}

func qualityAfter(cells []Cell) Quality {
	total := len(cells)
	nonMissing, valid := 0, 0
	for _, c := range cells {
		if c.Value == "" {
			continue
		}
		nonMissing++
		if !c.Invalid && !c.Filled {
			valid++
		}
	}
	return Quality{
		Completeness: ratio(nonMissing, total),
		Validity:     ratio(valid, nonMissing),
	}
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
