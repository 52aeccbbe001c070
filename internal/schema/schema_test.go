package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSchema(t, "name,category,required\n"+
		"company_name,text,true\n"+
		"email,email,yes\n"+
		"revenue,currency,false\n")

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("Len = %d, want 3", reg.Len())
	}
	f, ok := reg.Lookup("email")
	if !ok {
		t.Fatal("email not found")
	}
	if f.Category != Email || !f.Required {
		t.Errorf("email = %+v, want email category, required", f)
	}
	if names := reg.Names(); names[0] != "company_name" || names[2] != "revenue" {
		t.Errorf("Names = %v, want schema order preserved", names)
	}
}

func TestLoadLegacyNameColumn(t *testing.T) {
	path := writeSchema(t, "canonical_name,category\nphone,phone\n")
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := reg.Lookup("phone"); !ok {
		t.Error("phone not found via canonical_name header")
	}
}

func TestLoadDefaultsToText(t *testing.T) {
	path := writeSchema(t, "name\nnotes\n")
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f, _ := reg.Lookup("notes")
	if f.Category != Text || f.Required {
		t.Errorf("notes = %+v, want optional text", f)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown category", "name,category\nphone,telephone\n"},
		{"duplicate field", "name,category\nemail,email\nemail,email\n"},
		{"missing name column", "field,category\nemail,email\n"},
		{"no fields", "name,category\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeSchema(t, c.content)
			_, err := Load(path)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %v, want *LoadError", err)
			}
			if le.Path != path {
				t.Errorf("LoadError.Path = %q, want %q", le.Path, path)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory(" Postal_Code "); err != nil || c != PostalCode {
		t.Errorf("ParseCategory = %v, %v", c, err)
	}
	if _, err := ParseCategory("integer"); err == nil {
		t.Error("ParseCategory accepted an unknown category")
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	if reg.Len() != 15 {
		t.Fatalf("Len = %d, want 15", reg.Len())
	}
	for _, name := range []string{"company_name", "email"} {
		f, ok := reg.Lookup(name)
		if !ok || !f.Required {
			t.Errorf("field %q missing or not required: %+v", name, f)
		}
	}
	if f, _ := reg.Lookup("revenue"); f.Category != Currency {
		t.Errorf("revenue category = %q, want currency", f.Category)
	}
}

func TestCommonAlias(t *testing.T) {
	cases := []struct {
		normalized string
		want       string
	}{
		{"tel no", "phone"},
		{"zip", "postal_code"},
		{"comp name", "company_name"},
		{"annual rev", "revenue"},
		{"founded", "date_established"},
	}
	for _, c := range cases {
		got, ok := CommonAlias(c.normalized)
		if !ok || got != c.want {
			t.Errorf("CommonAlias(%q) = %q, %v; want %q", c.normalized, got, ok, c.want)
		}
	}
	if _, ok := CommonAlias("no such header"); ok {
		t.Error("CommonAlias matched an unknown header")
	}
}

func TestWriteSamplesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteSamples(dir)
	if err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	if len(written) != 4 {
		t.Fatalf("wrote %d files, want 4", len(written))
	}

	reg, err := Load(filepath.Join(dir, SchemaFileName))
	if err != nil {
		t.Fatalf("reloading written schema: %v", err)
	}
	if reg.Len() != Default().Len() {
		t.Errorf("reloaded schema has %d fields, want %d", reg.Len(), Default().Len())
	}
	for _, f := range Default().Fields() {
		got, ok := reg.Lookup(f.Name)
		if !ok || got != f {
			t.Errorf("field %q = %+v, want %+v", f.Name, got, f)
		}
	}
}
