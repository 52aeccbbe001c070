package cleaning

import (
	"strconv"
	"strings"
)

// parseNumeric parses a numeric string with locale-tolerant separator
// handling: "2,500,000", "1.234,56", "1 000.5" and "2500000.50" all parse.
// Detection is per value: when both ',' and '.' appear the later one is the
// decimal separator; a lone separator followed by exactly three digits is
// treated as a thousands separator.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, " ", " ")
	if raw == "" {
		return 0, false
	}

	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	var dec rune // 0 means every separator is grouping
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec = ','
		} else {
			dec = '.'
		}
	case cpos >= 0:
		if isDecimal(raw, ",", cpos) {
			dec = ','
		}
	case dpos >= 0:
		if isDecimal(raw, ".", dpos) {
			dec = '.'
		}
	}

	for _, sep := range []string{",", ".", " "} {
		if dec == 0 || rune(sep[0]) != dec {
			raw = strings.ReplaceAll(raw, sep, "")
		}
	}
	if dec != 0 && dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// isDecimal decides whether a lone separator kind acts as the decimal point
// rather than digit grouping.
func isDecimal(raw, sep string, last int) bool {
	if strings.Count(raw, sep) > 1 {
		return false // repeated separator is always grouping
	}
	return len(raw)-last-1 != 3 // "2,500" style grouping has three trailing digits
}
