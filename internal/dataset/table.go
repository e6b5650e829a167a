// Package dataset provides the in-memory Table type exchanged between all
// pipeline components, plus CSV input/output for single files and whole
// directories.
//
// A Table is column-oriented: an ordered list of named columns over string
// cells, with every row the same width, and an explicit row index carried
// alongside the cells. The index starts at 0..N-1 when a table is read from
// a file and is preserved through column operations, so concatenation can
// either keep each source table's labels or renumber from zero.
package dataset

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownColumn is returned when a column name is not present in a table.
var ErrUnknownColumn = errors.New("unknown column")

// Table is an in-memory column-oriented dataset.
type Table struct {
	cols  []string
	rows  [][]string
	index []int
}

// New builds a Table from a header and rows. Every row must have exactly
// one cell per column. The row index is initialized to 0..len(rows)-1.
func New(cols []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(cols))
		}
	}
	t := &Table{
		cols:  slices.Clone(cols),
		rows:  make([][]string, len(rows)),
		index: make([]int, len(rows)),
	}
	for i, row := range rows {
		t.rows[i] = slices.Clone(row)
		t.index[i] = i
	}
	return t, nil
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	return slices.Clone(t.cols)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Shape returns (rows, columns), pandas-style.
func (t *Table) Shape() (int, int) { return len(t.rows), len(t.cols) }

// Index returns the row labels.
func (t *Table) Index() []int {
	return slices.Clone(t.index)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.cols, name)
}

// Column returns the cell values of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	pos := slices.Index(t.cols, name)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[pos]
	}
	return out, nil
}

// Row returns the cells of row i.
func (t *Table) Row(i int) []string {
	return slices.Clone(t.rows[i])
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	out := &Table{
		cols:  slices.Clone(t.cols),
		rows:  make([][]string, len(t.rows)),
		index: slices.Clone(t.index),
	}
	for i, row := range t.rows {
		out.rows[i] = slices.Clone(row)
	}
	return out
}

// Drop removes the named column in place. It reports whether the column
// was present; dropping an absent column is a no-op.
func (t *Table) Drop(name string) bool {
	pos := slices.Index(t.cols, name)
	if pos < 0 {
		return false
	}
	t.cols = slices.Delete(t.cols, pos, pos+1)
	for i, row := range t.rows {
		t.rows[i] = slices.Delete(row, pos, pos+1)
	}
	return true
}

// Rename applies a simultaneous old-name to new-name mapping to the
// column headers, touching only columns that exist under the old name.
// It returns the applied pairs in column order.
func (t *Table) Rename(mapping map[string]string) [][2]string {
	var applied [][2]string
	for i, c := range t.cols {
		if newName, ok := mapping[c]; ok {
			t.cols[i] = newName
			applied = append(applied, [2]string{c, newName})
		}
	}
	return applied
}

// Select returns a new table restricted and reordered to exactly the
// named columns. Every name must be present. The row index is preserved.
func (t *Table) Select(names []string) (*Table, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		pos := slices.Index(t.cols, name)
		if pos < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		positions[i] = pos
	}
	out := &Table{
		cols:  slices.Clone(names),
		rows:  make([][]string, len(t.rows)),
		index: slices.Clone(t.index),
	}
	for i, row := range t.rows {
		sel := make([]string, len(positions))
		for j, pos := range positions {
			sel[j] = row[pos]
		}
		out.rows[i] = sel
	}
	return out, nil
}

// Head returns the first n rows (fewer if the table is shorter).
func (t *Table) Head(n int) *Table {
	return t.slice(0, min(max(0, n), len(t.rows)))
}

// Tail returns the last n rows (fewer if the table is shorter).
func (t *Table) Tail(n int) *Table {
	return t.slice(max(0, len(t.rows)-max(0, n)), len(t.rows))
}

func (t *Table) slice(from, to int) *Table {
	out := &Table{
		cols:  slices.Clone(t.cols),
		rows:  make([][]string, 0, to-from),
		index: slices.Clone(t.index[from:to]),
	}
	for _, row := range t.rows[from:to] {
		out.rows = append(out.rows, slices.Clone(row))
	}
	return out
}

// concat appends other's rows to t in place, aligning columns by name.
// Columns missing from one side are filled with empty cells; new columns
// are appended in other's order. Row labels from other are kept as-is.
func (t *Table) concat(other *Table) {
	for _, c := range other.cols {
		if !t.HasColumn(c) {
			t.cols = append(t.cols, c)
			for i := range t.rows {
				t.rows[i] = append(t.rows[i], "")
			}
		}
	}
	positions := make([]int, len(t.cols))
	for i, c := range t.cols {
		positions[i] = slices.Index(other.cols, c)
	}
	for r, row := range other.rows {
		merged := make([]string, len(t.cols))
		for i, pos := range positions {
			if pos >= 0 {
				merged[i] = row[pos]
			}
		}
		t.rows = append(t.rows, merged)
		t.index = append(t.index, other.index[r])
	}
}

// ResetIndex renumbers the row labels to 0..N-1.
func (t *Table) ResetIndex() {
	for i := range t.index {
		t.index[i] = i
	}
}
