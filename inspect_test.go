package sheetinspect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileReadsHeaderAndRows(t *testing.T) {
	path := writeWorkbook(t, weighingRows(12))

	table, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", table.Sheet)
	assert.Equal(t, []string{"Animal", "Fecha", "Peso", "Lote"}, table.Columns)
	assert.Equal(t, 12, table.RowCount())
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Columns))
	}

	col, ok := table.Column("Animal")
	require.True(t, ok)
	assert.Equal(t, 3, table.NUnique(col))
	assert.Equal(t, []interface{}{"A-101", "A-102", "A-103"}, table.Unique(col))
}

func TestLoadFileCellValues(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Animal", "Peso", "Vivo", "Fecha"},
		{"A-1", 410, true, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)},
		{"A-2", 398.25, false, time.Date(2024, 5, 24, 0, 0, 0, 0, time.UTC)},
	})

	table, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.RowCount())

	assert.Equal(t, "A-1", table.Rows[0][0])
	assert.Equal(t, int64(410), table.Rows[0][1])
	assert.Equal(t, 398.25, table.Rows[1][1])
	assert.Equal(t, true, table.Rows[0][2])
	assert.Equal(t, false, table.Rows[1][2])

	got, ok := table.Rows[0][3].(time.Time)
	require.True(t, ok, "expected a time.Time, got %T", table.Rows[0][3])
	assert.Equal(t, "2024-05-17", got.Format("2006-01-02"))
}

func TestLoadFileKeepsBlankCellPositions(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Animal", "Peso", "Obs"},
		{"A-1", nil, "ok"},
		{nil, 402},
	})

	table, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.RowCount())

	assert.Equal(t, []interface{}{"A-1", nil, "ok"}, table.Rows[0])
	assert.Equal(t, []interface{}{nil, int64(402), nil}, table.Rows[1])
}

func TestLoadFileReadsFirstSheetByDefault(t *testing.T) {
	path := writeSheets(t, map[string][][]interface{}{
		"Pesajes": {{"Animal"}, {"A-1"}},
		"Resumen": {{"Total"}, {1}, {2}},
	}, "Pesajes", "Resumen")

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Pesajes", table.Sheet)
	assert.Equal(t, []string{"Animal"}, table.Columns)

	table, err = LoadFile(path, WithSheet("Resumen"))
	require.NoError(t, err)
	assert.Equal(t, "Resumen", table.Sheet)
	assert.Equal(t, 2, table.RowCount())

	_, err = LoadFile(path, WithSheet("Nope"))
	assert.ErrorContains(t, err, "not found")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "failed to open excel file")
}

func TestLoadFileEmptySheet(t *testing.T) {
	path := writeWorkbook(t, nil)

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, table.RowCount())
	assert.Empty(t, table.Columns)
}

func TestLoadReportsProgress(t *testing.T) {
	path := writeWorkbook(t, weighingRows(3))

	var phases []string
	table, err := LoadFile(path, WithProgressCallback(func(p ProgressInfo) {
		phases = append(phases, p.Phase)
		assert.GreaterOrEqual(t, p.Percent, 0.0)
		assert.LessOrEqual(t, p.Percent, 100.0)
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, table.RowCount())
	require.NotEmpty(t, phases)
	assert.Equal(t, "load_rows", phases[0])
}

func TestInspectorCloseTwice(t *testing.T) {
	ins, err := New(writeWorkbook(t, weighingRows(1)))
	require.NoError(t, err)
	assert.NoError(t, ins.Close())
	assert.NoError(t, ins.Close())
}

func TestLoadFileKeepsWhitespaceAsWritten(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Animal ", " Peso"},
		{"A-1", 400},
		{" ", 410},
		{"A-1", 420},
	})

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Animal ", " Peso"}, table.Columns)
	assert.Equal(t, " ", table.Rows[1][0])

	_, ok := table.Column("Animal")
	assert.False(t, ok)
	col, ok := table.Column("Animal ")
	require.True(t, ok)
	assert.Equal(t, 2, table.NUnique(col))
	assert.Equal(t, TypeObject, table.InferType(col))

	r, err := BuildReport(path, table)
	require.NoError(t, err)
	assert.Nil(t, r.Distinct)
}

func TestLoadFileCountsWhitespaceCellAsValue(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Animal", "Peso"},
		{"A-1", 400},
		{" ", 410},
		{nil, 415},
		{"A-1", 420},
	})

	table, err := LoadFile(path)
	require.NoError(t, err)

	r, err := BuildReport(path, table)
	require.NoError(t, err)
	require.NotNil(t, r.Distinct)
	assert.Equal(t, 2, r.Distinct.Count)
	assert.Equal(t, []string{"A-1", " ", "NaN"}, r.Distinct.First)
}
