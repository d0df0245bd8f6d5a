package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRootDefaults(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "Planilla 9 ControledePesaje.xlsx", cmd.Flags().Lookup("file").DefValue)
	assert.Equal(t, "text", cmd.Flags().Lookup("format").DefValue)
}

func TestRootInspectsFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"ID", "Peso"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"T-1", 420}))
	path := filepath.Join(t.TempDir(), "pesaje.xlsx")
	require.NoError(t, f.SaveAs(path))

	out, _, err := execute(t, "--file", path, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Spreadsheet Inspect Report")
	assert.Contains(t, out, "## Distinct ID")
}

func TestRootMissingFileIsNotAnError(t *testing.T) {
	out, _, err := execute(t, "--file", filepath.Join(t.TempDir(), "nope.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, out, "Error: file not found")
	assert.Contains(t, out, "Files found:")
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := execute(t, "-v", "--file", filepath.Join(t.TempDir(), "nope.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "[Inspector] load failed")
}

func TestRootRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	_, _, err := execute(t, "extra")
	assert.Error(t, err)
}
