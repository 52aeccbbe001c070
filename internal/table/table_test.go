package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeFile(t, "in.csv", "Name, Email,Phone\n"+
		"Acme,info@acme.com,555\n"+
		"Short,short@x.com\n"+ // ragged row gets padded
		"\"Quoted, Inc\",q@q.com,556\n")

	got, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := &Table{
		Headers: []string{"Name", "Email", "Phone"},
		Rows: [][]string{
			{"Acme", "info@acme.com", "555"},
			{"Short", "short@x.com", ""},
			{"Quoted, Inc", "q@q.com", "556"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTSV(t *testing.T) {
	path := writeFile(t, "in.tsv", "a\tb\n1\t2\n")
	got, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Headers) != 2 || got.Rows[0][1] != "2" {
		t.Errorf("tsv not sniffed: %+v", got)
	}
}

func TestReadMaxRows(t *testing.T) {
	path := writeFile(t, "in.csv", "h\n1\n2\n3\n")
	got, err := Read(path, Options{MaxRows: 2})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2", got.NumRows())
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := writeFile(t, "in.csv", "")
	if _, err := Read(path, Options{}); err == nil {
		t.Error("Read accepted an empty file")
	}
}

func TestColumnRoundTrip(t *testing.T) {
	tbl := &Table{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"1", "x"}, {"2", "y"}},
	}
	if diff := cmp.Diff([]string{"x", "y"}, tbl.Column(1)); diff != "" {
		t.Errorf("column mismatch (-want +got):\n%s", diff)
	}
	if err := tbl.SetColumn(1, []string{"X", "Y"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if tbl.Rows[0][1] != "X" || tbl.Rows[1][1] != "Y" {
		t.Errorf("rows after SetColumn: %v", tbl.Rows)
	}
	if err := tbl.SetColumn(0, []string{"too", "many", "values"}); err == nil {
		t.Error("SetColumn accepted a mismatched length")
	}
}

func TestProjectMergesDuplicateSources(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Email", "E-mail", "Junk"},
		Rows: [][]string{
			{"a@x.com", "", "z"},
			{"", " b@y.com ", "z"},
			{"both@x.com", "other@y.com", "z"},
		},
	}
	got := tbl.Project([]string{"email"}, map[string][]int{"email": {0, 1}})

	want := &Table{
		Headers: []string{"email"},
		Rows:    [][]string{{"a@x.com"}, {"b@y.com"}, {"both@x.com"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "cleaned.csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	tbl := &Table{
		Headers: []string{"name", "note"},
		Rows:    [][]string{{"Acme", "has, comma"}},
	}
	if err := tbl.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "name,note\nAcme,\"has, comma\"\n"
	if string(b) != want {
		t.Errorf("written csv = %q, want %q", string(b), want)
	}

	// round-trip through Read
	got, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.EqualFold(got.Rows[0][1], "has, comma") {
		t.Errorf("round-trip row = %v", got.Rows[0])
	}
}
