package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"inflammation/adapters/source"
	"inflammation/adapters/stats/engine"
	"inflammation/domain/core"
	"inflammation/domain/dataset"
	"inflammation/internal"
	"inflammation/internal/config"
	"inflammation/ports"
)

// AnalysisService runs the inflammation analyses: per-file daily summaries,
// patient normalisation and the cross-file standard deviation pipeline.
type AnalysisService struct {
	engine  *engine.StatsEngine
	sources config.SourceConfig
	logger  *internal.Logger
}

// AnalysisResult contains the output of a full data analysis
type AnalysisResult struct {
	RunID     core.RunID   `json:"run_id"`
	Tables    int          `json:"tables"`
	View      dataset.View `json:"view"`
	RuntimeMs int64        `json:"runtime_ms"`
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(statsEngine *engine.StatsEngine, sources config.SourceConfig, logger *internal.Logger) *AnalysisService {
	return &AnalysisService{
		engine:  statsEngine,
		sources: sources,
		logger:  logger,
	}
}

// AnalyseData loads every table from src and returns the standard deviation
// of the per-file daily means. Loader and statistics errors are returned
// unchanged.
func (s *AnalysisService) AnalyseData(ctx context.Context, src ports.DataSourcePort) (*AnalysisResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()
	s.logger.Info("run %s: starting full data analysis", runID)

	tables, err := src.LoadInflammationData()
	if err != nil {
		s.logger.Error("run %s: discovery failed: %v", runID, err)
		return nil, err
	}

	var count int
	counted := func(yield func(*dataset.Table, error) bool) {
		for table, err := range tables {
			if err == nil {
				if err = ctx.Err(); err == nil {
					count++
				}
			}
			if !yield(table, err) || err != nil {
				return
			}
		}
	}

	stddev, err := s.engine.StdDevByDay(counted)
	if err != nil {
		s.logger.Error("run %s: analysis failed after %d tables: %v", runID, count, err)
		return nil, err
	}

	result := &AnalysisResult{
		RunID:     runID,
		Tables:    count,
		RuntimeMs: time.Since(startTime).Milliseconds(),
		View:      dataset.View{Title: "full data analysis"},
	}
	result.View.Add(dataset.LabelStdDevByDay, stddev)

	s.logger.Info("run %s: analysed %d tables in %dms", runID, count, result.RuntimeMs)
	return result, nil
}

// SummariseFile loads one file and returns its daily average, max and min.
func (s *AnalysisService) SummariseFile(path string) (dataset.View, error) {
	table, err := LoadFile(path, s.sources)
	if err != nil {
		return dataset.View{}, err
	}
	s.logger.Debug("%s: %d patients x %d days", path, table.Patients(), table.Days())

	view := dataset.View{Title: path}
	reductions := []struct {
		label string
		fn    func(*dataset.Table) ([]float64, error)
	}{
		{dataset.LabelAverage, s.engine.DailyMean},
		{dataset.LabelMax, s.engine.DailyMax},
		{dataset.LabelMin, s.engine.DailyMin},
	}
	for _, r := range reductions {
		values, err := r.fn(table)
		if err != nil {
			return dataset.View{}, err
		}
		view.Add(r.label, values)
	}
	return view, nil
}

// Normalise loads one file and returns its patient-normalised table.
func (s *AnalysisService) Normalise(path string) (*dataset.Table, error) {
	table, err := LoadFile(path, s.sources)
	if err != nil {
		return nil, err
	}
	return s.engine.PatientNormalise(table)
}

// format returns the lower-cased extension of path without the dot.
func format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// SelectSource picks the data source matching path's extension, rooted at
// path's directory. No I/O is done here.
func SelectSource(path string, cfg config.SourceConfig, logger *internal.Logger) (ports.DataSourcePort, error) {
	dir := filepath.Dir(path)
	switch format(path) {
	case "csv":
		src := source.NewCSVSource(dir, logger)
		src.Pattern = cfg.CSVPattern
		return src, nil
	case "json":
		src := source.NewJSONSource(dir, logger)
		src.Pattern = cfg.JSONPattern
		return src, nil
	case "xlsx":
		src := source.NewXLSXSource(dir, logger)
		src.Pattern = cfg.XLSXPattern
		src.Sheet = cfg.XLSXSheet
		return src, nil
	default:
		return nil, core.NewUnsupportedFormatError(path)
	}
}

// LoadFile loads a single file using the loader for its extension.
func LoadFile(path string, cfg config.SourceConfig) (*dataset.Table, error) {
	switch format(path) {
	case "csv":
		return source.LoadCSV(path)
	case "json":
		return source.LoadJSON(path)
	case "xlsx":
		return source.LoadXLSX(path, cfg.XLSXSheet)
	default:
		return nil, core.NewUnsupportedFormatError(path)
	}
}
