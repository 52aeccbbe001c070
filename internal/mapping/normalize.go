package mapping

import (
	"strings"
	"unicode"
)

// Candidate is the derived form of one input header. Never mutated after
// creation.
type Candidate struct {
	Raw        string
	Normalized string
	Tokens     []string
}

// NewCandidate normalizes a raw header for comparison: lowercase,
// punctuation to spaces, whitespace runs collapsed.
func NewCandidate(raw string) Candidate {
	n := Normalize(raw)
	return Candidate{Raw: raw, Normalized: n, Tokens: strings.Fields(n)}
}

// Normalize lowercases s and replaces every non-alphanumeric rune with a
// space, collapsing runs. "Tel No." and "tel_no" both normalize to "tel no".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// jaccard computes token-set overlap similarity between two token slices.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	union := len(set)
	inter := 0
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
