package sheetinspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	toon "github.com/mateuszkardas/toon-go"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatTOON     Format = "toon"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatTOON, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (use text, markdown, toon, json or yaml)", s)
	}
}

// Render writes the report in the requested format.
func (r *Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, r.Text())
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown())
		return err
	case FormatTOON:
		out, err := r.TOON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Text is the console report.
func (r *Report) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 SPREADSHEET STRUCTURE: %s\n", r.File)
	fmt.Fprintf(&b, "Sheet: %s\n", r.Sheet)
	fmt.Fprintf(&b, "Columns: %s\n", quoteList(r.Columns))
	fmt.Fprintf(&b, "Rows: %d\n", r.RowCount)

	fmt.Fprintf(&b, "\n--- FIRST %d ROWS ---\n", HeadRows)
	b.WriteString(rowBlock(r.Columns, r.Head, 0))

	fmt.Fprintf(&b, "\n--- LAST %d ROWS ---\n", TailRows)
	b.WriteString(rowBlock(r.Columns, r.Tail, r.TailStart))

	b.WriteString("\n--- ADDITIONAL INFO ---\n")
	b.WriteString("Data types:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 4, ' ', 0)
	for _, c := range r.Types {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.DataType)
	}
	tw.Flush()

	if r.Distinct != nil {
		fmt.Fprintf(&b, "\nUnique values in %s: %d\n", r.Distinct.Column, r.Distinct.Count)
		fmt.Fprintf(&b, "First values: %s\n", quoteList(r.Distinct.First))
	}

	if len(r.Numeric) > 0 {
		b.WriteString("\nNumeric summary:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprint(tw, "\tcount\tmean\tstd\tmin\tmedian\tmax\t\n")
		for _, s := range r.Numeric {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
				s.Column, s.Count, fmtStat(s.Mean), fmtStat(s.Std), fmtStat(s.Min), fmtStat(s.Median), fmtStat(s.Max))
		}
		tw.Flush()
	}

	return b.String()
}

// rowBlock lays rows out as a right-aligned grid with a leading row index.
func rowBlock(columns []string, rows [][]string, start int) string {
	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString("Empty table\n")
		fmt.Fprintf(&b, "Columns: %s\n", quoteList(columns))
		return b.String()
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := make([]string, 0, len(columns)+1)
	header = append(header, "")
	header = append(header, columns...)
	fmt.Fprint(tw, strings.Join(header, "\t")+"\t\n")
	for r, row := range rows {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, fmt.Sprintf("%d", start+r))
		for _, v := range row {
			if v == "" {
				v = "NaN"
			}
			cells = append(cells, strings.ReplaceAll(v, "\n", " "))
		}
		fmt.Fprint(tw, strings.Join(cells, "\t")+"\t\n")
	}
	tw.Flush()
	return b.String()
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for idx, v := range values {
		quoted[idx] = fmt.Sprintf("'%s'", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func fmtStat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Spreadsheet Inspect Report\n\n")
	b.WriteString(fmt.Sprintf("- File: %s\n", escapeMarkdownCell(r.File)))
	b.WriteString(fmt.Sprintf("- Sheet: %s\n", escapeMarkdownCell(r.Sheet)))
	b.WriteString(fmt.Sprintf("- Rows: %d\n", r.RowCount))
	b.WriteString(fmt.Sprintf("- Columns: %d\n", len(r.Columns)))

	b.WriteString("\n## Columns\n\n")
	b.WriteString("| # | Name | Type |\n")
	b.WriteString("| ---: | --- | --- |\n")
	for idx, c := range r.Types {
		b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", idx+1, escapeMarkdownCell(c.Name), c.DataType))
	}

	b.WriteString(fmt.Sprintf("\n## First %d Rows\n\n", HeadRows))
	writeMarkdownRows(&b, r.Columns, r.Head)

	b.WriteString(fmt.Sprintf("\n## Last %d Rows\n\n", TailRows))
	writeMarkdownRows(&b, r.Columns, r.Tail)

	if r.Distinct != nil {
		b.WriteString(fmt.Sprintf("\n## Distinct %s\n\n", escapeMarkdownCell(r.Distinct.Column)))
		b.WriteString(fmt.Sprintf("- Count: %d\n", r.Distinct.Count))
		b.WriteString(fmt.Sprintf("- First: %s\n", escapeMarkdownCell(strings.Join(r.Distinct.First, ", "))))
	}

	if len(r.Numeric) > 0 {
		b.WriteString("\n## Numeric Summary\n\n")
		b.WriteString("| Column | Count | Mean | Std | Min | Median | Max |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: |\n")
		for _, s := range r.Numeric {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s |\n",
				escapeMarkdownCell(s.Column), s.Count, fmtStat(s.Mean), fmtStat(s.Std), fmtStat(s.Min), fmtStat(s.Median), fmtStat(s.Max)))
		}
	}

	return b.String()
}

func writeMarkdownRows(b *strings.Builder, headers []string, rows [][]string) {
	if len(rows) == 0 {
		b.WriteString("_No rows found._\n")
		return
	}

	b.WriteString("| ")
	for hIdx, h := range headers {
		if hIdx > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(escapeMarkdownCell(h))
	}
	b.WriteString(" |\n")

	b.WriteString("| ")
	for hIdx := range headers {
		if hIdx > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")

	for _, row := range rows {
		b.WriteString("| ")
		for cIdx, cell := range row {
			if cIdx > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(escapeMarkdownCell(cell))
		}
		b.WriteString(" |\n")
	}
}

func escapeMarkdownCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}

// TOON renders a compact payload: one uniform record per column and per
// sampled row, which TOON encodes as tables.
func (r *Report) TOON() (string, error) {
	return toon.Marshal(r.toonPayload(), nil)
}

func (r *Report) toonPayload() map[string]interface{} {
	columns := make([]map[string]interface{}, 0, len(r.Types))
	for idx, c := range r.Types {
		columns = append(columns, map[string]interface{}{
			"column_idx": idx + 1,
			"name":       c.Name,
			"data_type":  c.DataType,
		})
	}

	payload := map[string]interface{}{
		"file":      r.File,
		"sheet":     r.Sheet,
		"row_count": r.RowCount,
		"columns":   columns,
		"head":      rowRecords(r.Columns, r.Head, 0),
		"tail":      rowRecords(r.Columns, r.Tail, r.TailStart),
	}
	if r.Distinct != nil {
		payload["distinct"] = map[string]interface{}{
			"column": r.Distinct.Column,
			"count":  r.Distinct.Count,
			"first":  strings.Join(r.Distinct.First, "|"),
		}
	}
	if len(r.Numeric) > 0 {
		numeric := make([]map[string]interface{}, 0, len(r.Numeric))
		for _, s := range r.Numeric {
			numeric = append(numeric, map[string]interface{}{
				"column": s.Column,
				"count":  s.Count,
				"mean":   s.Mean,
				"std":    s.Std,
				"min":    s.Min,
				"median": s.Median,
				"max":    s.Max,
			})
		}
		payload["numeric"] = numeric
	}
	return payload
}

// rowIndexKey carries the row index in TOON records. Its leading underscore
// keeps it apart from a sheet column called "row".
const rowIndexKey = "_row"

func rowRecords(columns []string, rows [][]string, start int) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for r, row := range rows {
		rec := make(map[string]interface{}, len(columns)+1)
		for c, name := range columns {
			if c < len(row) {
				rec[name] = row[c]
			}
		}
		rec[rowIndexKey] = start + r
		out = append(out, rec)
	}
	return out
}
