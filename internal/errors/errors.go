package errors

import (
	"errors"
	"fmt"

	"inflammation/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the code of the outermost AppError in the chain, otherwise
// the code matching the domain error class. Unknown errors are INTERNAL_ERROR.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case core.IsNotFoundError(err):
		return CodeNotFound
	case core.IsParseError(err):
		return CodeParseError
	case core.IsValidationError(err):
		return CodeValidationError
	case core.IsShapeError(err):
		return CodeShapeMismatch
	case core.IsUnsupportedFormatError(err):
		return CodeUnsupportedFormat
	}
	return CodeInternalError
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeNotFound          = "NOT_FOUND"
	CodeParseError        = "PARSE_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeShapeMismatch     = "SHAPE_MISMATCH"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
