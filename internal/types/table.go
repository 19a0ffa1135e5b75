package types

import (
	"fmt"
)

// Table is an ordered set of string rows with a positional header.
// Records returns the header as row 0 followed by the data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

func NewTable(header []string) Table {
	return Table{Header: append([]string(nil), header...)}
}

// Append adds a data row. It does not copy the slice.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, row)
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Column returns the header position of name, or -1.
func (t Table) Column(name string) int {
	for i, column := range t.Header {
		if column == name {
			return i
		}
	}
	return -1
}

func (t Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	records = append(records, t.Rows...)
	return records
}

// Validate reports the first data row whose width differs from the header.
func (t Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(t.Header))
		}
	}
	return nil
}

// Sheet is a Table bound to a workbook sheet name.
type Sheet struct {
	Name  string
	Table Table
}
