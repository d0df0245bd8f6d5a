package sheetinspect

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

type Inspector struct {
	filePath         string
	sheet            string
	file             *excelize.File
	xl               *xlsxreader.XlsxFileCloser
	progressCallback func(ProgressInfo)
	progressChan     chan<- ProgressInfo
}

type InspectorOption func(*Inspector)

type ProgressInfo struct {
	Phase   string  `json:"phase"`
	Sheet   string  `json:"sheet,omitempty"`
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// WithSheet reads the named sheet instead of the first one.
func WithSheet(name string) InspectorOption {
	return func(i *Inspector) {
		i.sheet = name
	}
}

func WithProgressCallback(fn func(ProgressInfo)) InspectorOption {
	return func(i *Inspector) {
		i.progressCallback = fn
	}
}

func WithProgressChannel(ch chan<- ProgressInfo) InspectorOption {
	return func(i *Inspector) {
		i.progressChan = ch
	}
}

func New(filePath string, opts ...InspectorOption) (*Inspector, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	xl, err := xlsxreader.OpenFile(filePath)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	ins := &Inspector{
		filePath: filePath,
		file:     f,
		xl:       xl,
	}

	for _, opt := range opts {
		opt(ins)
	}

	return ins, nil
}

// LoadFile opens path, reads the default sheet and releases the file before
// returning.
func LoadFile(filePath string, opts ...InspectorOption) (*Table, error) {
	ins, err := New(filePath, opts...)
	if err != nil {
		return nil, err
	}
	defer ins.Close()
	return ins.Load()
}

func (i *Inspector) Close() error {
	if i.file != nil {
		i.file.Close()
		i.file = nil
	}
	if i.xl != nil {
		i.xl.Close()
		i.xl = nil
	}
	return nil
}

// SheetName resolves the sheet Load reads: the WithSheet override, else the
// first sheet in workbook order whether visible or not.
func (i *Inspector) SheetName() (string, error) {
	sheets := i.file.GetSheetList()
	if i.sheet == "" {
		if len(sheets) == 0 {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == i.sheet {
			return s, nil
		}
	}
	return "", fmt.Errorf("worksheet %q not found", i.sheet)
}

// Load reads the whole sheet into memory. The first row supplies the column
// names; the remaining rows become the table body.
func (i *Inspector) Load() (*Table, error) {
	sheetName, err := i.SheetName()
	if err != nil {
		return nil, err
	}

	grid, err := i.readGrid(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	if len(grid) == 0 {
		return NewTable(sheetName, nil, nil), nil
	}
	return NewTable(sheetName, headerNames(grid[0]), grid[1:]), nil
}

func (i *Inspector) readGrid(sheetName string) ([][]interface{}, error) {
	total := i.estimateRows(sheetName)
	i.emitProgress("load_rows", sheetName, 0, total)

	rows := i.xl.ReadRows(sheetName)
	// Drain on early return so the reader goroutine can exit.
	defer func() {
		for range rows {
		}
	}()

	grid := make([][]interface{}, 0, max(total, 0))
	for row := range rows {
		if row.Error != nil {
			return nil, row.Error
		}
		// xlsxreader skips fully blank rows; keep their positions.
		for len(grid) < row.Index-1 {
			grid = append(grid, nil)
		}
		values := make([]interface{}, 0, len(row.Cells))
		for _, cell := range row.Cells {
			colIdx, err := excelize.ColumnNameToNumber(cell.Column)
			if err != nil {
				return nil, fmt.Errorf("bad cell reference %s%d: %w", cell.Column, cell.Row, err)
			}
			for len(values) < colIdx-1 {
				values = append(values, nil)
			}
			values = append(values, cellValue(cell))
		}
		grid = append(grid, values)
		if n := len(grid); n%100 == 0 || n == total {
			i.emitProgress("load_rows", sheetName, n, total)
		}
	}
	return grid, nil
}

// estimateRows uses the sheet dimension for progress totals. Zero means
// unknown.
func (i *Inspector) estimateRows(sheetName string) int {
	dim, err := i.file.GetSheetDimension(sheetName)
	if err != nil || dim == "" {
		return 0
	}
	refs := strings.Split(dim, ":")
	_, lastRow, err := excelize.CellNameToCoordinates(refs[len(refs)-1])
	if err != nil {
		return 0
	}
	return lastRow
}

func cellValue(cell xlsxreader.Cell) interface{} {
	if cell.Value == "" {
		return nil
	}
	// Text keeps its whitespace; only typed cells are trimmed for parsing.
	raw := strings.TrimSpace(cell.Value)
	switch cell.Type {
	case xlsxreader.TypeNumerical:
		if raw == "" {
			return cell.Value
		}
		return parseNumber(raw)
	case xlsxreader.TypeBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case xlsxreader.TypeDateTime:
		if t, ok := parseDateTime(raw); ok {
			return t
		}
	}
	return cell.Value
}

func parseNumber(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateTime(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	// Some writers leave the serial number in place.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (i *Inspector) emitProgress(phase, sheet string, current, total int) {
	if i.progressCallback == nil && i.progressChan == nil {
		return
	}
	pct := 0.0
	if total > 0 {
		pct = (float64(current) / float64(total)) * 100.0
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
	}
	info := ProgressInfo{
		Phase:   phase,
		Sheet:   sheet,
		Current: current,
		Total:   total,
		Percent: pct,
	}
	if i.progressCallback != nil {
		i.progressCallback(info)
	}
	if i.progressChan != nil {
		select {
		case i.progressChan <- info:
		default:
		}
	}
}
