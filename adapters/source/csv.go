package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"inflammation/domain/core"
	"inflammation/domain/dataset"
	"inflammation/internal"
)

// CSVSource loads every inflammation*.csv file in a directory.
type CSVSource struct {
	Dir     string
	Pattern string
	Logger  *internal.Logger
}

// NewCSVSource creates a CSV source over dir with the default pattern.
func NewCSVSource(dir string, logger *internal.Logger) *CSVSource {
	return &CSVSource{Dir: dir, Pattern: DefaultCSVPattern, Logger: logger}
}

// LoadInflammationData implements ports.DataSourcePort.
func (s *CSVSource) LoadInflammationData() (dataset.TableSeq, error) {
	return loadDir(s.Dir, s.Pattern, LoadCSV, s.Logger)
}

// LoadCSV reads a comma separated numeric matrix with no header.
// Each line is one patient, each column one day.
func LoadCSV(path string) (*dataset.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return readCSV(path, file)
}

func readCSV(path string, r io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	var rows [][]float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, core.NewParseError(path, pe.Line, pe.Err.Error())
			}
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}

		line, _ := reader.FieldPos(0)
		row := make([]float64, len(record))
		for i, field := range record {
			if row[i], err = parseReading(path, line, field); err != nil {
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
