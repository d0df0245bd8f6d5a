package sheetinspect

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

const (
	HeadRows      = 10
	TailRows      = 5
	UniqueSamples = 10
)

// IDColumns are checked in order; the first one present gets a distinct-value
// report.
var IDColumns = []string{"Animal", "ID"}

type ColumnType struct {
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"data_type" yaml:"data_type"`
}

type DistinctReport struct {
	Column string   `json:"column" yaml:"column"`
	Count  int      `json:"count" yaml:"count"`
	First  []string `json:"first" yaml:"first"`
}

type NumericSummary struct {
	Column string  `json:"column" yaml:"column"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
	Max    float64 `json:"max" yaml:"max"`
}

// Report is everything printed for one successfully loaded file.
type Report struct {
	File     string     `json:"file" yaml:"file"`
	Sheet    string     `json:"sheet" yaml:"sheet"`
	Columns  []string   `json:"columns" yaml:"columns"`
	RowCount int        `json:"row_count" yaml:"row_count"`
	Head     [][]string `json:"head" yaml:"head"`
	Tail     [][]string `json:"tail" yaml:"tail"`
	// TailStart is the row index of Tail[0].
	TailStart int              `json:"tail_start" yaml:"tail_start"`
	Types     []ColumnType     `json:"types" yaml:"types"`
	Distinct  *DistinctReport  `json:"distinct,omitempty" yaml:"distinct,omitempty"`
	Numeric   []NumericSummary `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

func BuildReport(file string, t *Table) (*Report, error) {
	tail := t.Tail(TailRows)
	r := &Report{
		File:      file,
		Sheet:     t.Sheet,
		Columns:   t.Columns,
		RowCount:  t.RowCount(),
		Head:      formatRows(t.Head(HeadRows)),
		Tail:      formatRows(tail),
		TailStart: t.RowCount() - len(tail),
		Types:     make([]ColumnType, len(t.Columns)),
	}

	dtypes := t.DTypes()
	for idx, name := range t.Columns {
		r.Types[idx] = ColumnType{Name: name, DataType: dtypes[idx]}
	}

	r.Distinct = buildDistinct(t)

	for idx, name := range t.Columns {
		if dtypes[idx] != TypeInt && dtypes[idx] != TypeFloat {
			continue
		}
		summary, ok, err := summarize(name, t.Float64s(idx))
		if err != nil {
			return nil, fmt.Errorf("summarizing column %s: %w", name, err)
		}
		if ok {
			r.Numeric = append(r.Numeric, summary)
		}
	}
	return r, nil
}

func buildDistinct(t *Table) *DistinctReport {
	for _, name := range IDColumns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		// The count skips empty cells; the sample lists them as NaN.
		sample := t.UniqueWithEmpty(col)
		n := min(len(sample), UniqueSamples)
		first := make([]string, n)
		for idx, v := range sample[:n] {
			if v == nil {
				first[idx] = "NaN"
				continue
			}
			first[idx] = formatValue(v)
		}
		return &DistinctReport{
			Column: name,
			Count:  t.NUnique(col),
			First:  first,
		}
	}
	return nil
}

func summarize(name string, data []float64) (NumericSummary, bool, error) {
	if len(data) == 0 {
		return NumericSummary{}, false, nil
	}
	s := NumericSummary{Column: name, Count: len(data)}

	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, false, err
	}
	if len(data) > 1 {
		// Sample deviation, matching what describe() prints.
		if s.Std, err = stats.StandardDeviationSample(data); err != nil {
			return s, false, err
		}
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, false, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, false, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, false, err
	}
	return s, true, nil
}

func formatRows(rows [][]interface{}) [][]string {
	out := make([][]string, len(rows))
	for r, row := range rows {
		values := make([]string, len(row))
		for c, v := range row {
			values[c] = formatValue(v)
		}
		out[r] = values
	}
	return out
}
