package sheetinspect

import (
	"fmt"
	"io"
	"log"
	"time"
)

// DefaultFile is the workbook inspected when no path is given.
const DefaultFile = "Planilla 9 ControledePesaje.xlsx"

type Config struct {
	File   string
	Sheet  string
	Format Format
	// Dir is scanned for similarly named files when loading fails.
	Dir string
	// Logger receives timing and progress lines. Nil disables them.
	Logger *log.Logger
}

// Run loads the workbook and prints its report to w. A load failure is not
// returned: it is printed together with the files in Dir that look like the
// intended workbook. Report and write errors come back.
func Run(w io.Writer, cfg Config) error {
	if cfg.File == "" {
		cfg.File = DefaultFile
	}

	start := time.Now()
	table, err := LoadFile(cfg.File, cfg.options()...)
	if err != nil {
		cfg.logf("[Inspector] load failed after %v: %v", time.Since(start), err)
		return printFailure(w, cfg.Dir, err)
	}
	cfg.logf("[Inspector] loaded %s (%d rows, %d columns) in %v",
		table.Sheet, table.RowCount(), len(table.Columns), time.Since(start))

	report, err := BuildReport(cfg.File, table)
	if err != nil {
		return err
	}
	return report.Render(w, cfg.Format)
}

func printFailure(w io.Writer, dir string, loadErr error) error {
	if _, err := fmt.Fprintf(w, "Error: %v\n", loadErr); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\nChecking file location..."); err != nil {
		return err
	}
	files, err := FindCandidates(dir)
	if err != nil {
		// The listing is a hint only; report it and carry on with no matches.
		fmt.Fprintf(w, "Could not list directory: %v\n", err)
	}
	_, err = fmt.Fprintf(w, "Files found: %s\n", quoteList(files))
	return err
}

func (c Config) options() []InspectorOption {
	opts := make([]InspectorOption, 0, 2)
	if c.Sheet != "" {
		opts = append(opts, WithSheet(c.Sheet))
	}
	if c.Logger != nil {
		opts = append(opts, WithProgressCallback(func(p ProgressInfo) {
			if p.Sheet != "" {
				c.Logger.Printf("[progress] %s | %s | %.1f%% (%d/%d)", p.Phase, p.Sheet, p.Percent, p.Current, p.Total)
				return
			}
			c.Logger.Printf("[progress] %s | %.1f%% (%d/%d)", p.Phase, p.Percent, p.Current, p.Total)
		}))
	}
	return opts
}

func (c Config) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
