package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inflammation/domain/core"
	"inflammation/domain/dataset"
	"inflammation/internal"
	"inflammation/internal/testkit"
	"inflammation/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	_ ports.DataSourcePort = (*CSVSource)(nil)
	_ ports.DataSourcePort = (*JSONSource)(nil)
	_ ports.DataSourcePort = (*XLSXSource)(nil)
)

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteFile(t, dir, "inflammation-01.csv", "0,1,2\n3, 4,5\n\n6,7,8\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}, table.Rows())
	assert.Equal(t, path, table.Source())
}

func TestLoadCSVParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"ragged", "1,2,3\n4,5\n", "inflammation.csv:2"},
		{"not a number", "1,2\n3,x\n", `invalid reading "x"`},
		{"empty", "", "no rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testkit.WriteFile(t, t.TempDir(), "inflammation.csv", tt.content)
			_, err := LoadCSV(path)
			require.Error(t, err)
			assert.True(t, core.IsParseError(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.False(t, core.IsParseError(err))
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteJSON(t, dir, "inflammation-01.json", [][]float64{{0, 1}, {2, 3}})

	table, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {2, 3}}, table.Rows())
}

func TestLoadJSONParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", `[{"observations": [1, 2]`, "malformed"},
		{"missing observations", `[{"observations": [1]}, {"readings": [2]}]`, "record 1 has no observations"},
		{"ragged records", `[{"observations": [1, 2]}, {"observations": [3]}]`, "record 1 has 1 observations, expected 2"},
		{"no records", `[]`, "no records"},
		{"non numeric", `[{"observations": ["a"]}]`, "malformed"},
		{"empty observations", `[{"observations": []}]`, "no days"},
		{"null observation", `[{"observations": [1, null, 3]}]`, "record 0 observation 1 is null"},
		{"trailing data", `[{"observations": [1, 2, 3]}] trailing`, "unexpected data after records"},
		{"second document", `[{"observations": [1]}] [{"observations": [2]}]`, "unexpected data after records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testkit.WriteFile(t, t.TempDir(), "inflammation.json", tt.content)
			_, err := LoadJSON(path)
			require.Error(t, err)
			assert.True(t, core.IsParseError(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "inflammation-01.xlsx", "Sheet1", [][]float64{{0, 1.5, 2}, {3, 4, 5}})

	table, err := LoadXLSX(path, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1.5, 2}, {3, 4, 5}}, table.Rows())
}

func TestLoadXLSXIgnoresNumberFormats(t *testing.T) {
	path := testkit.WriteXLSX(t, t.TempDir(), "inflammation-01.xlsx", "Sheet1", [][]float64{{0.123456, 1234567.5, 2}})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A1", "C1", style))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	table, err := LoadXLSX(path, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.123456, 1234567.5, 2}}, table.Rows())
}

func TestLoadXLSXMissingSheet(t *testing.T) {
	path := testkit.WriteXLSX(t, t.TempDir(), "inflammation-01.xlsx", "Sheet1", [][]float64{{1}})

	_, err := LoadXLSX(path, "Readings")
	require.Error(t, err)
	assert.True(t, core.IsParseError(err))
}

func TestDiscoveryNotFound(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteFile(t, dir, "notes.txt", "nothing here")
	testkit.WriteCSV(t, dir, "other.csv", [][]float64{{1}})

	sources := map[string]ports.DataSourcePort{
		"csv":  NewCSVSource(dir, internal.NopLogger()),
		"json": NewJSONSource(dir, internal.NopLogger()),
		"xlsx": NewXLSXSource(dir, internal.NopLogger()),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			_, err := src.LoadInflammationData()
			require.Error(t, err)
			assert.True(t, core.IsNotFoundError(err), "got %v", err)
		})
	}
}

func TestDiscoveryMissingDirectory(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent"), internal.NopLogger()).LoadInflammationData()
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestDiscoveryTakesDirectoryLiterally(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data[1]")
	require.NoError(t, os.Mkdir(dir, 0o755))
	testkit.WriteCSV(t, dir, "inflammation-01.csv", [][]float64{{1, 2}})

	seq, err := NewCSVSource(dir, internal.NopLogger()).LoadInflammationData()
	require.NoError(t, err)

	tables, err := dataset.Collect(seq)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []float64{1, 2}, tables[0].Row(0))
}

func TestDiscoveryWarnsOnSkippedMatches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "inflammation-00.csv"), 0o755))
	testkit.WriteCSV(t, dir, "inflammation-01.csv", [][]float64{{1}})

	var logs bytes.Buffer
	seq, err := NewCSVSource(dir, internal.NewLogger(&logs, internal.LogLevelWarn)).LoadInflammationData()
	require.NoError(t, err)

	tables, err := dataset.Collect(seq)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Contains(t, logs.String(), "[WARN] skipping")
	assert.Contains(t, logs.String(), "inflammation-00.csv: not a regular file")
}

func TestDiscoveryBadPattern(t *testing.T) {
	src := NewCSVSource(t.TempDir(), internal.NopLogger())
	src.Pattern = "inflammation[.csv"

	_, err := src.LoadInflammationData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid discovery pattern")
}

func TestCSVSourceLoadsMatchingFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteCSV(t, dir, "inflammation-02.csv", [][]float64{{2, 2}})
	testkit.WriteCSV(t, dir, "inflammation-01.csv", [][]float64{{1, 1}})
	testkit.WriteCSV(t, dir, "other.csv", [][]float64{{9, 9}})
	testkit.WriteJSON(t, dir, "inflammation-03.json", [][]float64{{3, 3}})

	seq, err := NewCSVSource(dir, internal.NopLogger()).LoadInflammationData()
	require.NoError(t, err)

	tables, err := dataset.Collect(seq)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.True(t, strings.HasSuffix(tables[0].Source(), "inflammation-01.csv"))
	assert.Equal(t, []float64{2, 2}, tables[1].Row(0))
}

func TestJSONSourceMatchesJSONFiles(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteCSV(t, dir, "inflammation-01.csv", [][]float64{{1}})
	testkit.WriteJSON(t, dir, "inflammation-01.json", [][]float64{{4, 5}})

	seq, err := NewJSONSource(dir, internal.NopLogger()).LoadInflammationData()
	require.NoError(t, err)

	tables, err := dataset.Collect(seq)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []float64{4, 5}, tables[0].Row(0))
}

func TestXLSXSourceUsesConfiguredSheet(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteXLSX(t, dir, "inflammation-01.xlsx", "Readings", [][]float64{{1, 2}})

	src := NewXLSXSource(dir, internal.NopLogger())
	src.Sheet = "Readings"
	seq, err := src.LoadInflammationData()
	require.NoError(t, err)

	tables, err := dataset.Collect(seq)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []float64{1, 2}, tables[0].Row(0))
}

func TestSequenceIsLazyAndStopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteCSV(t, dir, "inflammation-01.csv", [][]float64{{1}})
	testkit.WriteFile(t, dir, "inflammation-02.csv", "oops\n")
	testkit.WriteCSV(t, dir, "inflammation-03.csv", [][]float64{{3}})

	// discovery succeeds even though one file is malformed
	seq, err := NewCSVSource(dir, internal.NopLogger()).LoadInflammationData()
	require.NoError(t, err)

	var loaded int
	var loadErr error
	for table, err := range seq {
		if err != nil {
			loadErr = err
			break
		}
		require.NotNil(t, table)
		loaded++
	}
	assert.Equal(t, 1, loaded)
	assert.True(t, core.IsParseError(loadErr))
}

func TestSequenceIsSinglePass(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteCSV(t, dir, "inflammation-01.csv", [][]float64{{1}})

	seq, err := NewCSVSource(dir, internal.NopLogger()).LoadInflammationData()
	require.NoError(t, err)

	_, err = dataset.Collect(seq)
	require.NoError(t, err)
	_, err = dataset.Collect(seq)
	assert.ErrorIs(t, err, core.ErrSequenceConsumed)
}
