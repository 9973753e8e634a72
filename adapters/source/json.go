package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"inflammation/domain/core"
	"inflammation/domain/dataset"
	"inflammation/internal"
)

// patientRecord is one element of a JSON inflammation file. A nil
// Observations means the key was absent.
type patientRecord struct {
	Observations []*float64 `json:"observations"`
}

// JSONSource loads every inflammation*.json file in a directory.
// Records of unequal length are rejected on load.
type JSONSource struct {
	Dir     string
	Pattern string
	Logger  *internal.Logger
}

// NewJSONSource creates a JSON source over dir with the default pattern.
func NewJSONSource(dir string, logger *internal.Logger) *JSONSource {
	return &JSONSource{Dir: dir, Pattern: DefaultJSONPattern, Logger: logger}
}

// LoadInflammationData implements ports.DataSourcePort.
func (s *JSONSource) LoadInflammationData() (dataset.TableSeq, error) {
	return loadDir(s.Dir, s.Pattern, LoadJSON, s.Logger)
}

// LoadJSON reads an array of {"observations": [...]} records, one per patient.
func LoadJSON(path string) (*dataset.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer file.Close()

	return readJSON(path, file)
}

func readJSON(path string, r io.Reader) (*dataset.Table, error) {
	dec := json.NewDecoder(r)
	var records []patientRecord
	if err := dec.Decode(&records); err != nil {
		return nil, core.NewParseError(path, 0, err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, core.NewParseError(path, 0, "unexpected data after records")
	}
	if len(records) == 0 {
		return nil, core.NewParseError(path, 0, "no records")
	}

	rows := make([][]float64, len(records))
	for i, rec := range records {
		if rec.Observations == nil {
			return nil, core.NewParseError(path, 0, fmt.Sprintf("record %d has no observations", i))
		}
		if len(rec.Observations) != len(records[0].Observations) {
			return nil, core.NewParseError(path, 0,
				fmt.Sprintf("record %d has %d observations, expected %d", i, len(rec.Observations), len(records[0].Observations)))
		}
		rows[i] = make([]float64, len(rec.Observations))
		for j, v := range rec.Observations {
			if v == nil {
				return nil, core.NewParseError(path, 0, fmt.Sprintf("record %d observation %d is null", i, j))
			}
			rows[i][j] = *v
		}
	}
	return tableOrParseError(path, rows)
}
