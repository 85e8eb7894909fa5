package table

import (
	"fmt"
	"strconv"
)

// A Table is one GTFS file held in memory: ordered rows of string
// cells under a fixed header. Cells are kept verbatim so extension
// columns and numeric-looking IDs survive a load/filter/save round
// trip untouched.
type Table struct {
	Name    string
	Columns []string

	rows  [][]string
	index map[string]int
}

func New(name string, columns []string) *Table {
	index := map[string]int{}
	for i, c := range columns {
		index[c] = i
	}
	return &Table{
		Name:    name,
		Columns: columns,
		index:   index,
	}
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) HasColumn(name string) bool {
	_, found := t.index[name]
	return found
}

// Appends a row. The row must match the header width.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, header has %d", len(row), len(t.Columns))
	}
	t.rows = append(t.rows, row)
	return nil
}

// Inserts a row before all existing rows.
func (t *Table) Prepend(row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, header has %d", len(row), len(t.Columns))
	}
	t.rows = append([][]string{row}, t.rows...)
	return nil
}

// Returns the cell at row i, or "" if the column doesn't exist.
func (t *Table) Value(i int, column string) string {
	c, found := t.index[column]
	if !found {
		return ""
	}
	return t.rows[i][c]
}

func (t *Table) Float(i int, column string) (float64, error) {
	s := t.Value(i, column)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: parsing %s value '%s'", t.Name, i, column, s)
	}
	return f, nil
}

func (t *Table) Int(i int, column string) (int, error) {
	s := t.Value(i, column)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: parsing %s value '%s'", t.Name, i, column, s)
	}
	return n, nil
}

func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Returns the set of all values in a column. Missing column yields an
// empty set.
func (t *Table) ValueSet(column string) map[string]bool {
	set := map[string]bool{}
	c, found := t.index[column]
	if !found {
		return set
	}
	for _, row := range t.rows {
		set[row[c]] = true
	}
	return set
}

// Drops, in place, every row for which keep returns false. Row order
// is preserved.
func (t *Table) Retain(keep func(i int) bool) {
	kept := t.rows[:0]
	for i, row := range t.rows {
		if keep(i) {
			kept = append(kept, row)
		}
	}
	t.rows = kept
}

// Keeps only rows whose cell in the given column is a member of ids.
// A missing column drops nothing.
func (t *Table) RetainByKey(column string, ids map[string]bool) {
	if !t.HasColumn(column) {
		return
	}
	t.Retain(func(i int) bool {
		return ids[t.Value(i, column)]
	})
}
