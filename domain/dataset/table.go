package dataset

import (
	"fmt"

	"inflammation/domain/core"

	"gonum.org/v1/gonum/mat"
)

// Table is the canonical data object for all statistical computation.
// Rows are patients, columns are days. A Table is immutable once built:
// every accessor hands out copies.
type Table struct {
	source string // file the table was loaded from, empty for in-memory tables
	data   [][]float64
	days   int
}

// NewTable builds a rectangular table from rows, copying the input.
// Empty tables and ragged rows are rejected with a shape error.
func NewTable(source string, rows [][]float64) (*Table, error) {
	if len(rows) == 0 {
		return nil, core.NewShapeError("table has no patients")
	}
	days := len(rows[0])
	if days == 0 {
		return nil, core.NewShapeError("table has no days")
	}

	data := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != days {
			return nil, core.NewShapeError(fmt.Sprintf("patient %d has %d days, expected %d", i, len(row), days))
		}
		data[i] = append([]float64(nil), row...)
	}
	return &Table{source: source, data: data, days: days}, nil
}

// Source returns the file the table was loaded from.
func (t *Table) Source() string { return t.source }

// Patients returns the number of rows.
func (t *Table) Patients() int { return len(t.data) }

// Days returns the number of columns.
func (t *Table) Days() int { return t.days }

// Shape returns (patients, days).
func (t *Table) Shape() (int, int) { return len(t.data), t.days }

// At returns the reading of patient i on day j.
func (t *Table) At(i, j int) float64 { return t.data[i][j] }

// Row returns a copy of patient i's readings.
func (t *Table) Row(i int) []float64 {
	return append([]float64(nil), t.data[i]...)
}

// Rows returns a deep copy of the table data.
func (t *Table) Rows() [][]float64 {
	rows := make([][]float64, len(t.data))
	for i := range t.data {
		rows[i] = t.Row(i)
	}
	return rows
}

// Dense returns the table as a gonum matrix.
func (t *Table) Dense() *mat.Dense {
	flat := make([]float64, 0, len(t.data)*t.days)
	for _, row := range t.data {
		flat = append(flat, row...)
	}
	return mat.NewDense(len(t.data), t.days, flat)
}
