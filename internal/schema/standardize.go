// Package schema transforms a raw table into the configured target schema:
// drop unwanted columns, rename legacy headers, validate that every target
// column is reachable, then restrict and reorder to exactly the target list.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"datastd/internal/dataset"
)

// MissingColumnsError reports target columns that are neither present in
// the source table nor produced by the rename mapping.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Report lists the transformations Standardize actually applied, so the
// caller can log them. Standardize itself has no side effects.
type Report struct {
	// Dropped holds the drop-list columns that were present and removed.
	Dropped []string

	// Renamed holds the applied {old, new} header pairs in column order.
	Renamed [][2]string
}

// Standardize produces a table whose column sequence is exactly target.
// The input table is not modified. Steps, in order:
//
//  1. Drop every column in drop that is present (absent ones are ignored).
//  2. Rename headers per rename, applied simultaneously to the columns
//     that existed under the old name.
//  3. Fail with MissingColumnsError if any target column is still absent.
//     This is the single validation gate, evaluated only after drop and
//     rename, so a target column may be satisfied by renaming.
//  4. Select and reorder to exactly target, discarding extra columns.
func Standardize(t *dataset.Table, drop []string, rename map[string]string, target []string) (*dataset.Table, Report, error) {
	var report Report

	work := t.Copy()
	for _, col := range drop {
		if work.Drop(col) {
			report.Dropped = append(report.Dropped, col)
		}
	}
	report.Renamed = work.Rename(rename)

	var missing []string
	for _, col := range target {
		if !work.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, report, &MissingColumnsError{Columns: missing}
	}

	out, err := work.Select(target)
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}
