package cleaning

import "testing"

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		in     string
		region string
		want   string
	}{
		{"(555) 123-4567", "us", "+15551234567"},
		{"555 987 6543", "us", "+15559876543"},
		{"+44 20 7946 0958", "us", "+442079460958"}, // explicit prefix wins over region
		{"98765 43210", "in", "+919876543210"},
		{"(555) 123-4567", "", "5551234567"}, // no region, no prefix
		{"ext only", "us", "ext only"},       // no digits, unchanged
	}
	for _, c := range cases {
		if got := cleanPhone(c.in, Options{Region: c.region}); got != c.want {
			t.Errorf("cleanPhone(%q, %q) = %q, want %q", c.in, c.region, got, c.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"+15551234567", true},
		{"5551234", true},            // seven digits is the floor
		{"123456", false},            // six is below it
		{"+1234567890123456", false}, // sixteen digits exceeds the cap
		{"+", false},
		{"555-1234", false}, // separators must already be stripped
	}
	for _, c := range cases {
		if got := validPhone(c.in, Options{}); got != c.want {
			t.Errorf("validPhone(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCleanEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"INFO@MESSY.COM", "info@messy.com"},
		{"  user @ example.com ", "user@example.com"},
		{"already@clean.com", "already@clean.com"},
	}
	for _, c := range cases {
		if got := cleanEmail(c.in, Options{}); got != c.want {
			t.Errorf("cleanEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if validEmail("incomplete@", Options{}) {
		t.Error("validEmail accepted an address without a domain")
	}
	if !validEmail("a.b+tag@example.co", Options{}) {
		t.Error("validEmail rejected a well-formed address")
	}
}

func TestCleanDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2020-12-01", "2020-12-01"}, // idempotent on normalized form
		{"2015/03/20", "2015-03-20"},
		{"Jan 2015", "2015-01-01"},
		{"January 2, 2006", "2006-01-02"},
		{"01-01-2020", "2020-01-01"},
		{"2019", "2019-01-01"},
		{"2025/13/45", "2025/13/45"}, // unparseable stays as-is
	}
	for _, c := range cases {
		if got := cleanDate(c.in, Options{}); got != c.want {
			t.Errorf("cleanDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if validDate("2025/13/45", Options{}) {
		t.Error("validDate accepted an impossible date")
	}
	if !validDate("2020-12-01", Options{}) {
		t.Error("validDate rejected a normalized date")
	}
}

func TestCleanNumber(t *testing.T) {
	cases := []struct{ in, want string }{
		{"$2,500,000", "2500000"},
		{"€1.234,56", "1234.56"},
		{"₹50", "50"},
		{"2500000.50", "2500000.5"},
		{"Unknown", "Unknown"}, // unparseable comes back unchanged
	}
	for _, c := range cases {
		if got := cleanNumber(c.in, Options{}); got != c.want {
			t.Errorf("cleanNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanPostal(t *testing.T) {
	cases := []struct{ in, want string }{
		{"400-001", "400001"},
		{"560 001", "560001"},
		{"m5v 3a8", "M5V3A8"},
	}
	for _, c := range cases {
		if got := cleanPostal(c.in, Options{}); got != c.want {
			t.Errorf("cleanPostal(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if validPostal("12", Options{}) {
		t.Error("validPostal accepted a two-character code")
	}
	if !validPostal("600001", Options{}) {
		t.Error("validPostal rejected a plain six-digit code")
	}
}

func TestCleanURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"messy.com", "https://messy.com"},
		{"www.chaotic.net", "https://www.chaotic.net"},
		{"https://clean.com", "https://clean.com"},
		{"http://old.example.org", "http://old.example.org"},
	}
	for _, c := range cases {
		if got := cleanURL(c.in, Options{}); got != c.want {
			t.Errorf("cleanURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if validURL("https://broken", Options{}) {
		t.Error("validURL accepted a host without a dot")
	}
	if !validURL("https://clean.com", Options{}) {
		t.Error("validURL rejected a well-formed URL")
	}
}

func TestCleanText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"mumbai", "Mumbai"},
		{"BANGALORE", "Bangalore"},
		{"  broken   city  ", "Broken City"},
	}
	for _, c := range cases {
		if got := cleanText(c.in, Options{}); got != c.want {
			t.Errorf("cleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanTaxID(t *testing.T) {
	if got := cleanTaxID("gst-222 333 444", Options{}); got != "GST222333444" {
		t.Errorf("cleanTaxID = %q, want GST222333444", got)
	}
	if validTaxID("AB12345", Options{}) {
		t.Error("validTaxID accepted a seven-character id")
	}
	if !validTaxID("GST222333444", Options{}) {
		t.Error("validTaxID rejected a twelve-character id")
	}
}

func TestRegionPrefix(t *testing.T) {
	cases := []struct{ region, want string }{
		{"us", "1"}, {"CA", "1"}, {"in", "91"}, {"gb", "44"}, {"uk", "44"}, {"au", "61"}, {"zz", ""}, {"", ""},
	}
	for _, c := range cases {
		if got := RegionPrefix(c.region); got != c.want {
			t.Errorf("RegionPrefix(%q) = %q, want %q", c.region, got, c.want)
		}
	}
}
