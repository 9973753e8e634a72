package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"inflammation/domain/core"
	"inflammation/domain/dataset"
	"inflammation/internal"
)

// Default discovery patterns, one per format.
const (
	DefaultCSVPattern  = "inflammation*.csv"
	DefaultJSONPattern = "inflammation*.json"
	DefaultXLSXPattern = "inflammation*.xlsx"
	DefaultXLSXSheet   = "Sheet1"
)

// loadFunc parses a single file into a table.
type loadFunc func(path string) (*dataset.Table, error)

// discover lists regular files in dir whose names match pattern, sorted by
// name. Only pattern is glob syntax; dir is taken literally.
func discover(dir, pattern string, logger *internal.Logger) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid discovery pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.NewNotFoundError(dir, pattern)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Warn("skipping %s: not a regular file", path)
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return nil, core.NewNotFoundError(dir, pattern)
	}
	return files, nil
}

// lazyTables loads files one at a time as the consumer advances and stops at
// the first failure.
func lazyTables(files []string, load loadFunc, logger *internal.Logger) dataset.TableSeq {
	return dataset.Once(func(yield func(*dataset.Table, error) bool) {
		for _, file := range files {
			logger.Debug("loading %s", file)
			table, err := load(file)
			if err != nil {
				yield(nil, err)
				return
			}
			logger.Trace("%s: %d patients x %d days", file, table.Patients(), table.Days())
			if !yield(table, nil) {
				return
			}
		}
	})
}

// loadDir runs discovery and wraps the result in a lazy sequence.
func loadDir(dir, pattern string, load loadFunc, logger *internal.Logger) (dataset.TableSeq, error) {
	files, err := discover(dir, pattern, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("discovered %d files in %s matching %s", len(files), dir, pattern)
	return lazyTables(files, load, logger), nil
}

// parseReading converts one cell to a float.
func parseReading(path string, line int, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, core.NewParseError(path, line, fmt.Sprintf("invalid reading %q", field))
	}
	return v, nil
}

// tableOrParseError turns a shape failure into a parse error for path.
func tableOrParseError(path string, rows [][]float64) (*dataset.Table, error) {
	table, err := dataset.NewTable(path, rows)
	if err != nil {
		return nil, core.NewParseError(path, 0, err.Error())
	}
	return table, nil
}
