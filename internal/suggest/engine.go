package suggest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datamend/datamend-cli/internal/cleaning"
	"github.com/datamend/datamend-cli/internal/mapping"
	"github.com/datamend/datamend-cli/internal/promote"
	"github.com/datamend/datamend-cli/internal/schema"
)

// Reason classifies why a fix is being proposed.
type Reason string

const (
	ReasonDomainTypo         Reason = "domain_typo"
	ReasonMissingCountryCode Reason = "missing_country_code"
	ReasonInvalidDate        Reason = "invalid_date"
	ReasonMalformedURL       Reason = "malformed_url"
	ReasonPostalFormat       Reason = "postal_format"
)

// Suggestion is one targeted correction for a single cell. The ID lets an
// accept/reject surface reference it without positional coupling.
type Suggestion struct {
	ID         string  `json:"id"`
	RowIndex   int     `json:"row_index"`
	Field      string  `json:"field"`
	Original   string  `json:"original_value"`
	Suggested  string  `json:"suggested_value"`
	Reason     Reason  `json:"reason_code"`
	Confidence float64 `json:"confidence"`
}

// Engine proposes heuristic fixes for defects the deterministic cleaning
// tier could not resolve. Promoted rules from the store always win over
// heuristics.
type Engine struct {
	store  *promote.Store
	region string
}

// New builds an engine. A nil store disables the promoted-rule shortcut.
func New(store *promote.Store, region string) *Engine {
	return &Engine{store: store, region: region}
}

// Suggest walks a cleaned column and returns targeted fixes for cells that
// are still defective. Email, phone, date, url and postal columns are also
// scanned for defects the shape check cannot see (typo domains, missing
// country codes, formatting conventions).
func (e *Engine) Suggest(res *cleaning.Result) []Suggestion {
	var out []Suggestion
	field := res.Field
	for i, cell := range res.Cells {
		if cell.Missing {
			continue
		}
		if s, ok := e.promotedFix(field.Name, i, cell); ok {
			out = append(out, s)
			continue
		}
		var suggested string
		var reason Reason
		var conf float64
		switch field.Category {
		case schema.Email:
			suggested, conf = fixEmailDomain(cell.Value)
			reason = ReasonDomainTypo
		case schema.Phone:
			suggested, conf = e.fixPhone(cell.Value)
			reason = ReasonMissingCountryCode
		case schema.Date:
			if cell.Invalid {
				suggested, conf = fixDate(cell.Value)
				reason = ReasonInvalidDate
			}
		case schema.URL:
			if cell.Invalid {
				suggested, conf = fixURL(cell.Value)
				reason = ReasonMalformedURL
			}
		case schema.PostalCode:
			suggested, conf = e.fixPostal(cell.Value)
			reason = ReasonPostalFormat
		}
		if suggested == "" || suggested == cell.Value {
			continue
		}
		out = append(out, Suggestion{
			ID:         uuid.NewString(),
			RowIndex:   i,
			Field:      field.Name,
			Original:   cell.Value,
			Suggested:  suggested,
			Reason:     reason,
			Confidence: conf,
		})
	}
	return out
}

// promotedFix short-circuits heuristics when a user-accepted rule matches
// the cell value exactly or as a pattern.
func (e *Engine) promotedFix(field string, row int, cell cleaning.Cell) (Suggestion, bool) {
	if e.store == nil {
		return Suggestion{}, false
	}
	rule, ok := e.store.MatchRule(field, cell.Value)
	if !ok {
		rule, ok = e.store.MatchRule(field, cell.Original)
	}
	if !ok || rule.Replacement == cell.Value {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:         uuid.NewString(),
		RowIndex:   row,
		Field:      field,
		Original:   cell.Value,
		Suggested:  rule.Replacement,
		Reason:     Reason(rule.RuleType),
		Confidence: 1.0,
	}, true
}

// knownDomains are provider domains treated as correct; values already here
// are never "corrected".
var knownDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "icloud.com", "aol.com",
}

// domainTypos are misspellings common enough to fix without scoring.
var domainTypos = map[string]string{
	"gamil.com":   "gmail.com",
	"gmial.com":   "gmail.com",
	"gmai.com":    "gmail.com",
	"yahooo.com":  "yahoo.com",
	"yaho.com":    "yahoo.com",
	"hotmial.com": "hotmail.com",
	"hotmil.com":  "hotmail.com",
	"outlok.com":  "outlook.com",
}

const domainSimThreshold = 0.7

func fixEmailDomain(v string) (string, float64) {
	at := strings.LastIndex(v, "@")
	if at < 1 || at == len(v)-1 {
		return "", 0
	}
	local, domain := v[:at], v[at+1:]
	for _, known := range knownDomains {
		if domain == known {
			return "", 0
		}
	}
	if fixed, ok := domainTypos[domain]; ok {
		return local + "@" + fixed, 0.95
	}
	best, bestSim := "", 0.0
	for _, known := range knownDomains {
		if sim := mapping.Similarity(domain, known); sim > bestSim {
			best, bestSim = known, sim
		}
	}
	if bestSim < domainSimThreshold {
		return "", 0
	}
	return local + "@" + best, bestSim
}

// fixPhone proposes the configured region prefix for values that look like
// a bare national number.
func (e *Engine) fixPhone(v string) (string, float64) {
	if strings.HasPrefix(v, "+") {
		return "", 0
	}
	cc := cleaning.RegionPrefix(e.region)
	if cc == "" {
		return "", 0
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return "", 0
		}
	}
	if len(v) != cleaning.NationalDigits(e.region) {
		return "", 0
	}
	return "+" + cc + v, 0.9
}

// fixDate reinterprets the numeric components of an unparseable date,
// trying swapped day/month orders. Only calendrically valid
// reinterpretations are proposed.
func fixDate(v string) (string, float64) {
	parts := strings.FieldsFunc(v, func(r rune) bool {
		return r == '/' || r == '-' || r == '.' || r == ' '
	})
	if len(parts) != 3 {
		return "", 0
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", 0
		}
		nums[i] = n
	}
	// candidate orderings: year-month-day, year-day-month, day-month-year,
	// month-day-year
	orders := [][3]int{{0, 1, 2}, {0, 2, 1}, {2, 1, 0}, {2, 0, 1}}
	for _, o := range orders {
		y, m, d := nums[o[0]], nums[o[1]], nums[o[2]]
		if y < 100 {
			y += 2000
		}
		if y < 1000 || y > 9999 {
			continue
		}
		if iso, ok := calendarValid(y, m, d); ok {
			return iso, 0.6
		}
	}
	return "", 0
}

func calendarValid(y, m, d int) (string, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// fixURL completes values that resemble a URL but miss a scheme or TLD.
func fixURL(v string) (string, float64) {
	s := strings.TrimSpace(v)
	if s == "" {
		return "", 0
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "https://" + s, 0.5
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	if host != "" && !strings.Contains(host, ".") && !strings.Contains(host, "/") {
		return s + ".com", 0.5
	}
	return "", 0
}

// fixPostal re-inserts region-conventional separators when the stripped form
// has the expected length for the configured region.
func (e *Engine) fixPostal(v string) (string, float64) {
	switch strings.ToLower(e.region) {
	case "us":
		if len(v) == 9 && allDigits(v) {
			return v[:5] + "-" + v[5:], 0.85
		}
	case "gb", "uk":
		if (len(v) >= 5 && len(v) <= 7) && hasLetter(v) {
			return v[:len(v)-3] + " " + v[len(v)-3:], 0.85
		}
	case "ca":
		if len(v) == 6 && hasLetter(v) {
			return v[:3] + " " + v[3:], 0.85
		}
	}
	return "", 0
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// Apply replaces every occurrence of each accepted suggestion's original
// value within its field column, mirroring how promoted rules are applied.
func Apply(values []string, suggestions []Suggestion) []string {
	out := make([]string, len(values))
	copy(out, values)
	for _, s := range suggestions {
		for i, v := range out {
			if v == s.Original {
				out[i] = s.Suggested
			}
		}
	}
	return out
}

// String renders a one-line human summary.
func (s Suggestion) String() string {
	return fmt.Sprintf("row %d %s: %q -> %q (%s, %.2f)", s.RowIndex, s.Field, s.Original, s.Suggested, s.Reason, s.Confidence)
}
