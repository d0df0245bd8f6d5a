package sheetinspect

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to Sheet1 of a new workbook in a temp dir.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	return writeSheets(t, map[string][][]interface{}{"Sheet1": rows}, "Sheet1")
}

// writeSheets creates the sheets in the given order; the first name replaces
// the default Sheet1.
func writeSheets(t *testing.T, sheets map[string][][]interface{}, order ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for idx, name := range order {
		if idx == 0 {
			if name != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", name))
			}
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			row := row
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "Planilla 9 ControledePesaje.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func weighingRows(n int) [][]interface{} {
	rows := [][]interface{}{{"Animal", "Fecha", "Peso", "Lote"}}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rows = append(rows, []interface{}{
			[]string{"A-101", "A-102", "A-103"}[i%3],
			base.AddDate(0, 0, 7*i),
			350.5 + float64(i),
			i + 1,
		})
	}
	return rows
}
