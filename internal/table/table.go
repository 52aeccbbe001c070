package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datamend/datamend-cli/internal/utils"
)

// Table is an in-memory tabular dataset: one header row plus row-major data.
// Row order is semantically meaningful and preserved through every
// transformation; rows are never dropped, only values substituted.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Options controls how tabular input is read.
type Options struct {
	// Delimiter for CSV. If 0, sniffed from the file extension.
	Delimiter rune
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
}

// Read loads a CSV/TSV file into a Table. Ragged rows are padded to the
// header width so every row has one cell per header.
func Read(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read table: %s is empty", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &Table{Headers: make([]string, len(header))}
	for i, h := range header {
		t.Headers[i] = strings.TrimSpace(h)
	}

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+2, err)
		}
		row := make([]string, len(t.Headers))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
		if opt.MaxRows > 0 && len(t.Rows) >= opt.MaxRows {
			break
		}
	}
	return t, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// NumRows reports the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// Column returns the values of column i in row order.
func (t *Table) Column(i int) []string {
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// SetColumn replaces the values of column i. The length of values must
// match the row count.
func (t *Table) SetColumn(i int, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("set column %d: %d values for %d rows", i, len(values), len(t.Rows))
	}
	for r := range t.Rows {
		t.Rows[r][i] = values[r]
	}
	return nil
}

// Project builds a new table containing one column per requested header
// assignment, in the given order. When several source columns feed the same
// output column, values are merged row-wise with the first non-empty value
// winning (duplicate-mapped headers).
func (t *Table) Project(columns []string, sources map[string][]int) *Table {
	out := &Table{Headers: columns, Rows: make([][]string, len(t.Rows))}
	for r := range t.Rows {
		out.Rows[r] = make([]string, len(columns))
	}
	for ci, name := range columns {
		for _, src := range sources[name] {
			for r, row := range t.Rows {
				if out.Rows[r][ci] != "" || src >= len(row) {
					continue
				}
				out.Rows[r][ci] = strings.TrimSpace(row[src])
			}
		}
	}
	return out
}

// Write serializes the table as CSV to path using an atomic replace.
func (t *Table) Write(path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
