package source

import (
	"fmt"

	"inflammation/domain/core"
	"inflammation/domain/dataset"
	"inflammation/internal"

	"github.com/xuri/excelize/v2"
)

// XLSXSource loads every inflammation*.xlsx workbook in a directory, reading
// one sheet per workbook with the same layout as the CSV files.
type XLSXSource struct {
	Dir     string
	Pattern string
	Sheet   string
	Logger  *internal.Logger
}

// NewXLSXSource creates a workbook source over dir reading Sheet1.
func NewXLSXSource(dir string, logger *internal.Logger) *XLSXSource {
	return &XLSXSource{Dir: dir, Pattern: DefaultXLSXPattern, Sheet: DefaultXLSXSheet, Logger: logger}
}

// LoadInflammationData implements ports.DataSourcePort.
func (s *XLSXSource) LoadInflammationData() (dataset.TableSeq, error) {
	sheet := s.Sheet
	return loadDir(s.Dir, s.Pattern, func(path string) (*dataset.Table, error) {
		return LoadXLSX(path, sheet)
	}, s.Logger)
}

// LoadXLSX reads a headerless numeric sheet. Cells are read as stored, not
// as displayed, so number formats do not round readings. Blank rows are skipped.
func LoadXLSX(path, sheet string) (*dataset.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = DefaultXLSXSheet
	}
	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewParseError(path, 0, fmt.Sprintf("failed to read %s: %v", sheet, err))
	}

	var rows [][]float64
	for i, cellRow := range cells {
		if len(cellRow) == 0 {
			continue
		}
		row := make([]float64, len(cellRow))
		for j, cell := range cellRow {
			if row[j], err = parseReading(path, i+1, cell); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, core.NewParseError(path, 0, "no rows")
	}
	return tableOrParseError(path, rows)
}
