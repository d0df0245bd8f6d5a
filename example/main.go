package main

import (
	"fmt"
	"log"
	"os"
	"time"

	sheetinspect "sheet-inspect"
)

func main() {
	start := time.Now()

	outPath := "out.md"
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to delete existing %s: %v", outPath, err)
	}

	path := sheetinspect.DefaultFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	ins, err := sheetinspect.New(
		path,
		sheetinspect.WithProgressCallback(func(p sheetinspect.ProgressInfo) {
			if p.Sheet != "" {
				fmt.Printf("[progress] %s | %s | %.1f%% (%d/%d)\n", p.Phase, p.Sheet, p.Percent, p.Current, p.Total)
				return
			}
			fmt.Printf("[progress] %s | %.1f%% (%d/%d)\n", p.Phase, p.Percent, p.Current, p.Total)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create inspector: %v", err)
	}
	fmt.Printf("Open file: %v\n", time.Since(start))

	start = time.Now()
	table, err := ins.Load()
	ins.Close()
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}
	fmt.Printf("Load(): %v\n", time.Since(start))
	fmt.Printf("Sheet %s: %d rows, %d cols\n", table.Sheet, table.RowCount(), len(table.Columns))

	report, err := sheetinspect.BuildReport(path, table)
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}
	if err := os.WriteFile(outPath, []byte(report.Markdown()), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}
	fmt.Printf("\nMarkdown output written to %s\n", outPath)
}
