// Package testkit writes inflammation fixture files for tests.
package testkit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"inflammation/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// Table builds an in-memory table and fails the test on error.
func Table(t testing.TB, rows ...[]float64) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable("", rows)
	if err != nil {
		t.Fatalf("testkit: building table: %v", err)
	}
	return table
}

// WriteFile writes raw content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("testkit: writing %s: %v", path, err)
	}
	return path
}

// WriteCSV writes rows as a headerless comma separated file.
func WriteCSV(t testing.TB, dir, name string, rows [][]float64) string {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return WriteFile(t, dir, name, b.String())
}

// WriteJSON writes rows as an array of {"observations": [...]} records.
func WriteJSON(t testing.TB, dir, name string, rows [][]float64) string {
	t.Helper()
	records := make([]map[string][]float64, len(rows))
	for i, row := range rows {
		records[i] = map[string][]float64{"observations": row}
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("testkit: encoding %s: %v", name, err)
	}
	return WriteFile(t, dir, name, string(data))
}

// WriteXLSX writes rows into sheet of a new workbook.
func WriteXLSX(t testing.TB, dir, name, sheet string, rows [][]float64) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			t.Fatalf("testkit: creating sheet %s: %v", sheet, err)
		}
		f.SetActiveSheet(idx)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("testkit: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("testkit: writing row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("testkit: saving %s: %v", path, err)
	}
	return path
}
