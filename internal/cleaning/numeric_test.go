package cleaning

import "testing"

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2500000", 2500000, true},
		{"2,500,000", 2500000, true},
		{"2500000.50", 2500000.50, true},
		{"2.500", 2500, true},   // lone dot with three trailing digits groups
		{"2.50", 2.50, true},    // two trailing digits is a decimal
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"1 000.5", 1000.5, true},
		{"1,5", 1.5, true},
		{"0.5", 0.5, true},
		{"-42", -42, true},
		{"", 0, false},
		{"Unknown", 0, false},
		{"12.34.56,78", 123456.78, true}, // repeated dots group, comma is decimal
	}
	for _, c := range cases {
		got, ok := parseNumeric(c.in)
		if ok != c.ok {
			t.Errorf("parseNumeric(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("parseNumeric(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
