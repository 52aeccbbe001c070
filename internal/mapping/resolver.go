package mapping

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/datamend/datamend-cli/internal/promote"
	"github.com/datamend/datamend-cli/internal/schema"
)

// Method records which tier of the mapping cascade produced an assignment.
type Method string

const (
	MethodExact         Method = "exact"
	MethodPromotedAlias Method = "promoted_alias"
	MethodCommonAlias   Method = "common_alias"
	MethodTokenOverlap  Method = "token_overlap"
	MethodFuzzy         Method = "fuzzy"
	MethodNone          Method = "none"
)

// Confidence bands per tier. The token and fuzzy floors and ranges are
// contractual; both mappings are monotone in the raw similarity.
const (
	tokenFloor = 0.5
	fuzzyFloor = 0.4
)

// Assignment is the resolved mapping for one input header. Field is empty
// when the header is unmapped; unmapped headers are preserved, never dropped.
type Assignment struct {
	RawHeader  string  `json:"raw_header"`
	Field      string  `json:"canonical_field,omitempty"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
}

// Result is one resolution pass: exactly one assignment per input header,
// in input order, plus non-fatal warnings (ambiguous ties, required fields
// left unmapped).
type Result struct {
	Assignments []Assignment `json:"assignments"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// Resolver maps arbitrary input headers onto a canonical schema. It
// consults the registry, the built-in alias table, and the promoted aliases
// of an explicitly passed promotion store.
type Resolver struct {
	registry *schema.Registry
	promoted map[string]string // normalized alias -> canonical field
	// precomputed per-field comparison forms
	fieldNorm   map[string]string
	fieldTokens map[string][]string
}

// NewResolver builds a resolver over the registry and promotion store.
// A nil store means no promoted aliases.
func NewResolver(reg *schema.Registry, store *promote.Store) *Resolver {
	r := &Resolver{
		registry:    reg,
		promoted:    map[string]string{},
		fieldNorm:   map[string]string{},
		fieldTokens: map[string][]string{},
	}
	if store != nil {
		for raw, field := range store.Aliases() {
			if _, ok := reg.Lookup(field); !ok {
				continue // stale alias for a field this schema lacks
			}
			r.promoted[Normalize(raw)] = field
		}
	}
	for _, f := range reg.Fields() {
		n := Normalize(f.Name)
		cand := NewCandidate(f.Name)
		tokens := append([]string{}, cand.Tokens...)
		tokens = append(tokens, schema.Synonyms(f.Name)...)
		r.fieldNorm[f.Name] = n
		r.fieldTokens[f.Name] = tokens
	}
	return r
}

// Resolve maps every input header to its best canonical field. At most one
// header claims a given field per pass: on conflict the highest-confidence
// assignment keeps the field and the losers are re-resolved through the
// token and fuzzy tiers with the claimed fields excluded.
func (r *Resolver) Resolve(headers []string) Result {
	res := Result{Assignments: make([]Assignment, len(headers))}
	cands := make([]Candidate, len(headers))
	for i, h := range headers {
		cands[i] = NewCandidate(h)
		res.Assignments[i] = r.resolveOne(cands[i], nil)
	}

	r.dedupe(&res, cands)

	for _, f := range r.registry.Fields() {
		if !f.Required {
			continue
		}
		mapped := false
		for _, a := range res.Assignments {
			if a.Field == f.Name {
				mapped = true
				break
			}
		}
		if !mapped {
			res.Warnings = append(res.Warnings, fmt.Sprintf("required field %q received no mapping", f.Name))
		}
	}
	return res
}

// resolveOne runs the full cascade for one header. exclude lists canonical
// fields already claimed; when non-nil only the token and fuzzy tiers run,
// which is the re-resolution path for demoted headers.
func (r *Resolver) resolveOne(c Candidate, exclude map[string]bool) Assignment {
	if exclude == nil {
		// 1. Exact: normalized header equals a canonical field name.
		for _, f := range r.registry.Fields() {
			if c.Normalized == r.fieldNorm[f.Name] {
				return Assignment{RawHeader: c.Raw, Field: f.Name, Confidence: 1.0, Method: MethodExact}
			}
		}
		// 2. Promoted alias: user-confirmed in a previous session.
		if field, ok := r.promoted[c.Normalized]; ok {
			return Assignment{RawHeader: c.Raw, Field: field, Confidence: 1.0, Method: MethodPromotedAlias}
		}
		// 3. Common alias: built-in domain knowledge.
		if field, ok := schema.CommonAlias(c.Normalized); ok {
			if _, known := r.registry.Lookup(field); known {
				return Assignment{RawHeader: c.Raw, Field: field, Confidence: 0.95, Method: MethodCommonAlias}
			}
		}
	}
	// 4. Token overlap.
	if a, ok := r.tokenOverlap(c, exclude); ok {
		return a
	}
	// 5. Fuzzy edit distance.
	if a, ok := r.fuzzy(c, exclude); ok {
		return a
	}
	return Assignment{RawHeader: c.Raw, Method: MethodNone}
}

func (r *Resolver) tokenOverlap(c Candidate, exclude map[string]bool) (Assignment, bool) {
	best, bestScore := "", 0.0
	for _, f := range r.registry.Fields() {
		if exclude[f.Name] {
			continue
		}
		j := jaccard(c.Tokens, r.fieldTokens[f.Name])
		if j < tokenFloor {
			continue
		}
		if j > bestScore || (j == bestScore && shorterName(f.Name, best)) {
			best, bestScore = f.Name, j
		}
	}
	if best == "" {
		return Assignment{}, false
	}
	conf := 0.80 + (bestScore-tokenFloor)*0.3
	return Assignment{RawHeader: c.Raw, Field: best, Confidence: conf, Method: MethodTokenOverlap}, true
}

func (r *Resolver) fuzzy(c Candidate, exclude map[string]bool) (Assignment, bool) {
	best, bestScore := "", 0.0
	for _, f := range r.registry.Fields() {
		if exclude[f.Name] {
			continue
		}
		s := Similarity(c.Normalized, r.fieldNorm[f.Name])
		if s < fuzzyFloor {
			continue
		}
		if s > bestScore || (s == bestScore && shorterName(f.Name, best)) {
			best, bestScore = f.Name, s
		}
	}
	if best == "" {
		return Assignment{}, false
	}
	conf := 0.60 + (bestScore-fuzzyFloor)*0.25
	return Assignment{RawHeader: c.Raw, Field: best, Confidence: conf, Method: MethodFuzzy}, true
}

// Similarity is edit-distance similarity normalized to [0,1]. It is the
// shared fuzzy measure of the mapping cascade and the email-domain
// correction heuristic.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

func shorterName(a, b string) bool {
	if b == "" {
		return true
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// dedupe enforces the one-header-per-field rule. Losers re-run the token
// and fuzzy tiers with every claimed field excluded; equal-confidence ties
// keep the earlier input header and are reported as warnings.
func (r *Resolver) dedupe(res *Result, cands []Candidate) {
	claimed := map[string]int{} // field -> winning header index
	queue := make([]int, len(res.Assignments))
	for i := range queue {
		queue[i] = i
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		a := res.Assignments[i]
		if a.Field == "" {
			continue
		}
		prev, taken := claimed[a.Field]
		if !taken {
			claimed[a.Field] = i
			continue
		}
		if prev == i {
			continue
		}
		loser := i
		b := res.Assignments[prev]
		switch {
		case a.Confidence > b.Confidence:
			claimed[a.Field] = i
			loser = prev
		case a.Confidence == b.Confidence:
			// deterministic tie-break: earlier input header wins
			first, second := prev, i
			if i < prev {
				first, second = i, prev
				claimed[a.Field] = i
			}
			loser = second
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"headers %q and %q tie for field %q at confidence %.2f; keeping %q",
				cands[first].Raw, cands[second].Raw, a.Field, a.Confidence, cands[first].Raw))
		}
		exclude := make(map[string]bool, len(claimed))
		for f := range claimed {
			exclude[f] = true
		}
		res.Assignments[loser] = r.resolveOne(cands[loser], exclude)
		queue = append(queue, loser)
	}
}
