package sheetinspect

import (
	"fmt"
	"time"
)

// Table is a sheet loaded into memory. Every row has exactly len(Columns)
// cells; a nil cell is empty.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]interface{}
}

// NewTable squares up rows against the header. Columns present in the data
// but missing from the header are named "Unnamed: N".
func NewTable(sheet string, header []string, rows [][]interface{}) *Table {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([]string, width)
	copy(columns, header)
	for idx := len(header); idx < width; idx++ {
		columns[idx] = unnamedColumn(idx)
	}

	body := make([][]interface{}, len(rows))
	for r, row := range rows {
		values := make([]interface{}, width)
		copy(values, row)
		body[r] = values
	}

	return &Table{
		Sheet:   sheet,
		Columns: dedupeNames(columns),
		Rows:    body,
	}
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) [][]interface{} {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Tail returns up to n trailing rows.
func (t *Table) Tail(n int) [][]interface{} {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[len(t.Rows)-n:]
}

// Column returns the position of the column with exactly this name.
func (t *Table) Column(name string) (int, bool) {
	for idx, c := range t.Columns {
		if c == name {
			return idx, true
		}
	}
	return -1, false
}

// Unique lists the distinct non-empty values of a column in first-seen order.
func (t *Table) Unique(col int) []interface{} {
	return t.distinct(col, false)
}

// UniqueWithEmpty is Unique with nil kept as a value of its own, at the
// position it is first seen.
func (t *Table) UniqueWithEmpty(col int) []interface{} {
	return t.distinct(col, true)
}

func (t *Table) distinct(col int, keepEmpty bool) []interface{} {
	seen := make(map[interface{}]struct{})
	out := make([]interface{}, 0)
	for _, row := range t.Rows {
		v := row[col]
		if v == nil && !keepEmpty {
			continue
		}
		key := uniqueKey(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (t *Table) NUnique(col int) int {
	return len(t.Unique(col))
}

// DTypes infers one type per column, in column order.
func (t *Table) DTypes() []string {
	out := make([]string, len(t.Columns))
	for col := range t.Columns {
		out[col] = t.InferType(col)
	}
	return out
}

// InferType returns the dtype of one column.
func (t *Table) InferType(col int) string {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if k := valueKind(row[col]); k != "" {
			counts[k]++
		}
	}
	return predominantType(counts)
}

// Float64s collects the numeric cells of a column.
func (t *Table) Float64s(col int) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		switch v := row[col].(type) {
		case int64:
			out = append(out, float64(v))
		case float64:
			out = append(out, v)
		}
	}
	return out
}

// uniqueKey makes int64(3) and float64(3) collide the way a numeric column
// treats them, and compares times by instant.
func uniqueKey(v interface{}) interface{} {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case time.Time:
		return x.UnixNano()
	default:
		return v
	}
}

func unnamedColumn(idx int) string {
	return fmt.Sprintf("Unnamed: %d", idx)
}

func dedupeNames(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for _, n := range names {
		used[n] = true
	}
	counts := make(map[string]int, len(names))
	seen := make(map[string]bool, len(names))
	for idx, n := range names {
		if !seen[n] {
			seen[n] = true
			out[idx] = n
			continue
		}
		for {
			counts[n]++
			candidate := fmt.Sprintf("%s.%d", n, counts[n])
			if !used[candidate] {
				used[candidate] = true
				out[idx] = candidate
				break
			}
		}
	}
	return out
}

// headerNames turns the first sheet row into column names.
func headerNames(row []interface{}) []string {
	names := make([]string, len(row))
	for idx, v := range row {
		s := formatValue(v)
		if s == "" {
			s = unnamedColumn(idx)
		}
		names[idx] = s
	}
	return names
}
