package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrNotFound is returned when discovery matches no input files.
	ErrNotFound = errors.New("no inflammation data found")

	// ErrParse covers malformed CSV/JSON/XLSX content and ragged rows.
	ErrParse = errors.New("malformed inflammation data")

	// ErrValidation is returned for physically invalid readings.
	ErrValidation = errors.New("invalid inflammation data")

	// Shape errors
	ErrShape         = errors.New("invalid table shape")
	ErrShapeMismatch = fmt.Errorf("%w: mismatched day counts", ErrShape)

	ErrUnsupportedFormat = errors.New("unsupported data format")

	// ErrSequenceConsumed is yielded when a single-pass table sequence is iterated twice.
	ErrSequenceConsumed = errors.New("table sequence already consumed")
)

// Error constructors with context
func NewNotFoundError(dir, pattern string) error {
	return fmt.Errorf("%w in path %q matching %q", ErrNotFound, dir, pattern)
}

func NewParseError(file string, line int, reason string) error {
	if line > 0 {
		return fmt.Errorf("%w: %s:%d: %s", ErrParse, file, line, reason)
	}
	return fmt.Errorf("%w: %s: %s", ErrParse, file, reason)
}

func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

func NewShapeError(reason string) error {
	return fmt.Errorf("%w: %s", ErrShape, reason)
}

func NewShapeMismatchError(index, want, got int) error {
	return fmt.Errorf("%w: table %d has %d days, expected %d", ErrShapeMismatch, index, got, want)
}

func NewUnsupportedFormatError(path string) error {
	return fmt.Errorf("%w: don't know how to load files of type %q", ErrUnsupportedFormat, path)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

func IsUnsupportedFormatError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}
