// Package export writes derived tables to disk as CSV or Arrow IPC files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Column is one named column; exactly one of Floats and Strings is set.
type Column struct {
	Name    string
	Floats  []float64
	Strings []string
}

// Len is the number of values in the column.
func (c Column) Len() int {
	if c.Strings != nil {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// Table is a named set of equal-length columns.
type Table struct {
	Name    string
	Columns []Column
}

// Rows is the table height.
func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("export: table %q has no columns", t.Name)
	}
	n := t.Rows()
	for _, c := range t.Columns {
		if c.Len() != n {
			return fmt.Errorf("export: table %q column %q has %d rows, want %d", t.Name, c.Name, c.Len(), n)
		}
	}
	return nil
}

// Format selects the file encoding.
type Format string

const (
	CSV   Format = "csv"
	Arrow Format = "arrow"
)

// ParseFormat accepts "csv" or "arrow".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, Arrow:
		return f, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Write stores t as dir/<name>.<format> and returns the path.
func Write(dir string, t Table, f Format) (string, error) {
	if err := t.validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, t.Name+"."+string(f))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	switch f {
	case Arrow:
		err = writeArrow(out, t)
	default:
		err = writeCSV(out, t)
	}
	if err != nil {
		out.Close()
		return "", fmt.Errorf("export: %s: %w", path, err)
	}
	return path, out.Close()
}
