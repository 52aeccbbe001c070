package cleaning

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/datamend/datamend-cli/internal/schema"
)

// rule pairs the deterministic transform with the format check for one
// category. Transforms never fail: a value that cannot be normalized comes
// back unchanged and the validator flags it.
type rule struct {
	transform func(string, Options) string
	validate  func(string, Options) bool
}

var rules = map[schema.Category]rule{
	schema.Phone:      {cleanPhone, validPhone},
	schema.Email:      {cleanEmail, validEmail},
	schema.TaxID:      {cleanTaxID, validTaxID},
	schema.Date:       {cleanDate, validDate},
	schema.Currency:   {cleanNumber, validNumber},
	schema.Numeric:    {cleanNumber, validNumber},
	schema.PostalCode: {cleanPostal, validPostal},
	schema.URL:        {cleanURL, validURL},
	schema.Text:       {cleanText, validText},
}

func ruleFor(c schema.Category) rule {
	if r, ok := rules[c]; ok {
		return r
	}
	return rules[schema.Text]
}

// RegionPrefix maps a configured default region to its phone calling code.
func RegionPrefix(region string) string {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case "us", "ca":
		return "1"
	case "in":
		return "91"
	case "gb", "uk":
		return "44"
	case "au":
		return "61"
	}
	return ""
}

// NationalDigits is the expected national-number length per region, used by
// the suggestion tier to recognize numbers that merely lack a country code.
func NationalDigits(region string) int {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case "us", "ca", "in", "gb", "uk":
		return 10
	case "au":
		return 9
	}
	return 0
}

var nonDigit = regexp.MustCompile(`\D`)

func cleanPhone(v string, opt Options) string {
	s := strings.TrimSpace(v)
	plus := strings.HasPrefix(s, "+")
	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return s
	}
	if plus {
		return "+" + digits
	}
	if cc := RegionPrefix(opt.Region); cc != "" {
		return "+" + cc + digits
	}
	return digits
}

func validPhone(v string, _ Options) bool {
	s := strings.TrimPrefix(v, "+")
	if s == "" || nonDigit.MatchString(s) {
		return false
	}
	return len(s) >= 7 && len(s) <= 15
}

var spaceRun = regexp.MustCompile(`\s+`)

func cleanEmail(v string, _ Options) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(v)), "")
}

var emailRe = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

func validEmail(v string, _ Options) bool {
	return emailRe.MatchString(v)
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

func cleanTaxID(v string, _ Options) string {
	return strings.ToUpper(nonAlnum.ReplaceAllString(strings.TrimSpace(v), ""))
}

var taxIDRe = regexp.MustCompile(`^[A-Z0-9]{8,15}$`)

func validTaxID(v string, _ Options) bool {
	return taxIDRe.MatchString(v)
}

// dateLayouts is the ordered list of accepted input forms. First parse wins;
// ISO forms lead so cleaning is idempotent on already-normalized values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

func cleanDate(v string, _ Options) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

func validDate(v string, _ Options) bool {
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

var currencySymbols = strings.NewReplacer("$", "", "€", "", "₹", "", "£", "", "¥", "")

func cleanNumber(v string, _ Options) string {
	s := strings.TrimSpace(currencySymbols.Replace(v))
	f, ok := parseNumeric(s)
	if !ok {
		return strings.TrimSpace(v)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validNumber(v string, _ Options) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func cleanPostal(v string, _ Options) string {
	return strings.ToUpper(nonAlnum.ReplaceAllString(strings.TrimSpace(v), ""))
}

var postalRe = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

func validPostal(v string, _ Options) bool {
	return postalRe.MatchString(v)
}

func cleanURL(v string, _ Options) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return s
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "https://" + s
	}
	return s
}

var urlRe = regexp.MustCompile(`^https?://[^\s]+\.[^\s]+$`)

func validURL(v string, _ Options) bool {
	return urlRe.MatchString(v)
}

var titleCaser = cases.Title(language.English)

func cleanText(v string, _ Options) string {
	return titleCaser.String(spaceRun.ReplaceAllString(strings.TrimSpace(v), " "))
}

func validText(v string, _ Options) bool {
	return strings.TrimSpace(v) != ""
}
