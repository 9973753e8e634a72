package engine

import (
	"math"

	"inflammation/domain/core"
	"inflammation/domain/dataset"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// StatsEngine provides the per-day reductions over inflammation tables.
// It holds no state; every method is a pure function of its input.
type StatsEngine struct{}

// NewStatsEngine creates a new statistical engine
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{}
}

// reducer collapses one day column to a single value.
type reducer func(stats.Float64Data) (float64, error)

// DailyMean returns the mean reading of each day across all patients.
func (e *StatsEngine) DailyMean(table *dataset.Table) ([]float64, error) {
	return e.reduceDays(table, stats.Mean)
}

// DailyMax returns the highest reading of each day across all patients.
func (e *StatsEngine) DailyMax(table *dataset.Table) ([]float64, error) {
	return e.reduceDays(table, stats.Max)
}

// DailyMin returns the lowest reading of each day across all patients.
func (e *StatsEngine) DailyMin(table *dataset.Table) ([]float64, error) {
	return e.reduceDays(table, stats.Min)
}

// reduceDays applies fn down the patient axis. A day holding a NaN reading
// reduces to NaN.
func (e *StatsEngine) reduceDays(table *dataset.Table, fn reducer) ([]float64, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	m := table.Dense()
	out := make([]float64, table.Days())
	col := make([]float64, table.Patients())
	for j := range out {
		mat.Col(col, j, m)
		if floats.HasNaN(col) {
			out[j] = math.NaN()
			continue
		}
		v, err := fn(col)
		if err != nil {
			return nil, core.NewShapeError(err.Error())
		}
		out[j] = v
	}
	return out, nil
}

// PatientNormalise scales each patient's readings by that patient's own
// maximum, ignoring missing (NaN) readings when finding the maximum.
// Negative readings are rejected before anything is computed. Divisions
// that produce NaN (a zero or missing maximum, a missing reading) become 0.
func (e *StatsEngine) PatientNormalise(table *dataset.Table) (*dataset.Table, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	for i := 0; i < table.Patients(); i++ {
		for j := 0; j < table.Days(); j++ {
			if table.At(i, j) < 0 {
				return nil, core.NewValidationError("inflammation values should not be negative")
			}
		}
	}

	rows := table.Rows()
	for _, row := range rows {
		peak := nanMax(row)
		for j, v := range row {
			n := v / peak
			if math.IsNaN(n) {
				n = 0
			}
			row[j] = n
		}
	}
	return dataset.NewTable(table.Source(), rows)
}

// StdDevByDay collapses every table to its daily mean vector, stacks those
// vectors one row per table and returns the population standard deviation
// of each day column. All tables must cover the same number of days.
// The first error from tables is returned unchanged.
func (e *StatsEngine) StdDevByDay(tables dataset.TableSeq) ([]float64, error) {
	var (
		stacked []float64
		days    int
		count   int
	)
	for table, err := range tables {
		if err != nil {
			return nil, err
		}
		mean, err := e.DailyMean(table)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			days = len(mean)
		} else if len(mean) != days {
			return nil, core.NewShapeMismatchError(count, days, len(mean))
		}
		stacked = append(stacked, mean...)
		count++
	}
	if count == 0 {
		return nil, core.NewShapeError("no tables to aggregate")
	}

	means := mat.NewDense(count, days, stacked)
	out := make([]float64, days)
	col := make([]float64, count)
	for j := range out {
		mat.Col(col, j, means)
		sd, err := stats.StandardDeviation(col)
		if err != nil {
			return nil, core.NewShapeError(err.Error())
		}
		out[j] = sd
	}
	return out, nil
}

func checkTable(table *dataset.Table) error {
	if table == nil {
		return core.NewShapeError("table is not two dimensional")
	}
	if p, d := table.Shape(); p == 0 || d == 0 {
		return core.NewShapeError("table is empty")
	}
	return nil
}

// nanMax is the largest non-NaN value, or NaN if there is none.
func nanMax(row []float64) float64 {
	present := make([]float64, 0, len(row))
	for _, v := range row {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	peak, err := stats.Max(present)
	if err != nil {
		return math.NaN()
	}
	return peak
}
