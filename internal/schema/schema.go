package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Category classifies a canonical field for cleaning and validation purposes.
// The set is closed: every field in a registry carries exactly one of these.
type Category string

const (
	Text       Category = "text"
	Email      Category = "email"
	Phone      Category = "phone"
	Date       Category = "date"
	Currency   Category = "currency"
	PostalCode Category = "postal_code"
	URL        Category = "url"
	TaxID      Category = "tax_id"
	Numeric    Category = "numeric"
)

// ParseCategory validates a category string from a schema file.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Text, Email, Phone, Date, Currency, PostalCode, URL, TaxID, Numeric:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Field is one column of the canonical target schema.
type Field struct {
	Name     string
	Category Category
	Required bool
}

// Registry is the loaded canonical schema. Immutable after load.
type Registry struct {
	fields []Field
	byName map[string]Field
}

// LoadError indicates the canonical schema could not be loaded. It is fatal:
// no partial schema is ever returned alongside it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load schema %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a canonical schema definition from a CSV file with the header
// row "name,category,required".
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameIdx, ok := col["name"]
	if !ok {
		// older schema exports use canonical_name
		nameIdx, ok = col["canonical_name"]
	}
	if !ok {
		return nil, &LoadError{Path: path, Err: errors.New(`missing "name" column`)}
	}
	catIdx, hasCat := col["category"]
	reqIdx, hasReq := col["required"]

	var fields []Field
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", line, err)}
		}
		name := strings.TrimSpace(rec[nameIdx])
		if name == "" {
			continue
		}
		fld := Field{Name: name, Category: Text}
		if hasCat && catIdx < len(rec) {
			c, err := ParseCategory(rec[catIdx])
			if err != nil {
				return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", line, err)}
			}
			fld.Category = c
		}
		if hasReq && reqIdx < len(rec) {
			fld.Required = parseBool(rec[reqIdx])
		}
		fields = append(fields, fld)
	}
	if len(fields) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("schema contains no fields")}
	}
	reg, err := NewRegistry(fields)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return reg, nil
}

// NewRegistry builds a registry from fields, enforcing unique names.
func NewRegistry(fields []Field) (*Registry, error) {
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, dup := byName[f.Name]; dup {
			return nil, fmt.Errorf("duplicate canonical field %q", f.Name)
		}
		byName[f.Name] = f
	}
	return &Registry{fields: fields, byName: byName}, nil
}

// Fields returns the canonical fields in schema order.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns the canonical field names in schema order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field with the given canonical name.
func (r *Registry) Lookup(name string) (Field, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Len reports the number of canonical fields.
func (r *Registry) Len() int { return len(r.fields) }

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// Default returns the built-in company registry used when no schema file is
// configured.
func Default() *Registry {
	reg, err := NewRegistry([]Field{
		{Name: "company_name", Category: Text, Required: true},
		{Name: "tax_id", Category: TaxID, Required: false},
		{Name: "email", Category: Email, Required: true},
		{Name: "phone", Category: Phone, Required: false},
		{Name: "address", Category: Text, Required: false},
		{Name: "city", Category: Text, Required: false},
		{Name: "state", Category: Text, Required: false},
		{Name: "postal_code", Category: PostalCode, Required: false},
		{Name: "country", Category: Text, Required: false},
		{Name: "website", Category: URL, Required: false},
		{Name: "industry", Category: Text, Required: false},
		{Name: "employees", Category: Numeric, Required: false},
		{Name: "revenue", Category: Currency, Required: false},
		{Name: "date_established", Category: Date, Required: false},
		{Name: "contact_person", Category: Text, Required: false},
	})
	if err != nil {
		panic(err) // built-in fields are unique by construction
	}
	return reg
}
