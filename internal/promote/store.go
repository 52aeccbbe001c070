package promote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/datamend/datamend-cli/internal/utils"
)

// FixRule is a user-confirmed value correction, applied automatically on
// later runs before any heuristic suggestion is generated.
type FixRule struct {
	Field       string `json:"field"`
	RuleType    string `json:"rule_type"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// document is the persisted store shape. The two-section layout round-trips
// exactly: header aliases keyed by the raw header text, fix rules as an
// ordered list.
type document struct {
	HeaderAliases map[string]string `json:"header_aliases"`
	FixRules      []FixRule         `json:"fix_rules"`
}

// Store holds promoted header aliases and fix rules, persisted as a single
// JSON document. It is explicitly passed to the components that consult it;
// there is no ambient singleton.
type Store struct {
	path    string
	aliases map[string]string
	rules   []FixRule
}

// ReadError indicates persisted state was unreadable or corrupt. It is
// recoverable: Open still returns a usable empty store alongside it, and the
// caller is expected to warn and continue.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read promotion store %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError indicates persisted state could not be saved. In-memory state
// remains usable for the current session.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write promotion store %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// NewMemory returns an unpersisted store, for tests and ad-hoc use.
func NewMemory() *Store {
	return &Store{aliases: map[string]string{}}
}

// Open loads the store at the given path. A missing file yields an empty
// store with no error; a corrupt or unreadable file yields an empty store
// plus a *ReadError so startup never fails on bad persisted state.
func Open(storePath string) (*Store, error) {
	s := &Store{path: storePath, aliases: map[string]string{}}
	b, err := os.ReadFile(storePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, &ReadError{Path: storePath, Err: err}
	}
	if len(b) == 0 {
		return s, nil
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return s, &ReadError{Path: storePath, Err: err}
	}
	if doc.HeaderAliases != nil {
		s.aliases = doc.HeaderAliases
	}
	s.rules = doc.FixRules
	return s, nil
}

// Save persists the store with a write-to-temp-then-rename so an interrupted
// write never leaves a half-written document.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	if err := utils.EnsureDir(filepath.Dir(s.path)); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	b, err := utils.PrettyJSON(document{HeaderAliases: s.aliases, FixRules: s.rules})
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := utils.SafeWriteFile(s.path, b); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// PromoteAlias records a user-confirmed header alias, keyed by the raw
// header text. Re-promoting an identical entry overwrites, never duplicates.
func (s *Store) PromoteAlias(rawHeader, canonicalField string) {
	s.aliases[rawHeader] = canonicalField
}

// PromoteFix records a user-accepted fix rule, keyed by
// (field, rule_type, original). Idempotent under re-promotion.
func (s *Store) PromoteFix(field, ruleType, original, replacement string) {
	for i, r := range s.rules {
		if r.Field == field && r.RuleType == ruleType && r.Original == original {
			s.rules[i].Replacement = replacement
			return
		}
	}
	s.rules = append(s.rules, FixRule{Field: field, RuleType: ruleType, Original: original, Replacement: replacement})
}

// Aliases returns the promoted alias table keyed by raw header text.
func (s *Store) Aliases() map[string]string {
	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	return out
}

// Rules returns all fix rules, optionally filtered by field.
func (s *Store) Rules(field string) []FixRule {
	if field == "" {
		out := make([]FixRule, len(s.rules))
		copy(out, s.rules)
		return out
	}
	var out []FixRule
	for _, r := range s.rules {
		if r.Field == field {
			out = append(out, r)
		}
	}
	return out
}

// MatchRule returns the first rule for field whose original matches value,
// either exactly or as a glob pattern. Promoted rules short-circuit
// heuristic suggestion generation.
func (s *Store) MatchRule(field, value string) (FixRule, bool) {
	for _, r := range s.rules {
		if r.Field != field {
			continue
		}
		if r.Original == value {
			return r, true
		}
		if ok, _ := path.Match(r.Original, value); ok {
			return r, true
		}
	}
	return FixRule{}, false
}

// Len reports alias and rule counts, for status output.
func (s *Store) Len() (aliases, rules int) {
	return len(s.aliases), len(s.rules)
}
