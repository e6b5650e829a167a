package dataset

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
)

// ColumnTypes infers a scalar type for each column, in column order.
// Types are "int", "float", "bool" or "string"; empty cells are ignored
// during inference and a fully empty column is "string".
func (t *Table) ColumnTypes() []string {
	types := make([]string, len(t.cols))
	for i := range t.cols {
		types[i] = t.inferColumnType(i)
	}
	return types
}

func (t *Table) inferColumnType(col int) string {
	isInt, isFloat, isBool := true, true, true
	seen := false
	for _, row := range t.rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			switch strings.ToLower(v) {
			case "true", "false":
			default:
				isBool = false
			}
		}
	}
	switch {
	case !seen:
		return "string"
	case isInt:
		return "int"
	case isFloat:
		return "float"
	case isBool:
		return "bool"
	default:
		return "string"
	}
}

// String renders the table with its row labels, one line per row.
func (t *Table) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\n", strings.Join(t.cols, "\t"))
	for i, row := range t.rows {
		fmt.Fprintf(w, "%d\t%s\n", t.index[i], strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// Describe computes count, mean, std, min and max for every numeric
// ("int" or "float") column, returning them as a table with a leading
// "stat" column. A table without numeric columns yields an empty result.
func (t *Table) Describe() *Table {
	var numeric []int
	types := t.ColumnTypes()
	for i, typ := range types {
		if typ == "int" || typ == "float" {
			numeric = append(numeric, i)
		}
	}

	cols := make([]string, 0, len(numeric)+1)
	cols = append(cols, "stat")
	for _, pos := range numeric {
		cols = append(cols, t.cols[pos])
	}

	byCol := make(map[int][5]float64, len(numeric))
	for _, pos := range numeric {
		byCol[pos] = columnStats(t, pos)
	}

	stats := []string{"count", "mean", "std", "min", "max"}
	rows := make([][]string, len(stats))
	for i, stat := range stats {
		row := make([]string, 0, len(cols))
		row = append(row, stat)
		for _, pos := range numeric {
			row = append(row, formatStat(byCol[pos][i]))
		}
		rows[i] = row
	}

	out, _ := New(cols, rows)
	return out
}

// columnStats returns count, mean, std, min, max for one column, skipping
// cells that do not parse as numbers.
func columnStats(t *Table, col int) [5]float64 {
	var vals []float64
	for _, row := range t.rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	n := float64(len(vals))
	if n == 0 {
		return [5]float64{}
	}
	sum, sumSq := 0.0, 0.0
	minV, maxV := vals[0], vals[0]
	for _, v := range vals {
		sum += v
		sumSq += v * v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	mean := sum / n
	variance := (sumSq / n) - (mean * mean)
	if variance < 0 {
		variance = 0
	}
	return [5]float64{n, mean, math.Sqrt(variance), minV, maxV}
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Preview writes a cosmetic inspection of the table: shape, column names,
// inferred types, head and tail. A nil table or show=false writes nothing.
func Preview(w io.Writer, t *Table, show bool, rows int) {
	if t == nil || !show {
		return
	}
	nRows, nCols := t.Shape()
	fmt.Fprintf(w, "Shape: (%d, %d)\n", nRows, nCols)
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(t.Columns(), ", "))
	types := t.ColumnTypes()
	fmt.Fprintln(w, "Types:")
	for i, c := range t.Columns() {
		fmt.Fprintf(w, "  %s: %s\n", c, types[i])
	}
	fmt.Fprintf(w, "Head:\n%s\n", t.Head(rows))
	fmt.Fprintf(w, "Tail:\n%s\n", t.Tail(rows))
}
