// Package errors defines the application error taxonomy for the filmstats
// pipeline. Every fatal condition is classified so the CLI can report it
// uniformly: configuration problems, malformed input, violated statistical
// preconditions, and storage failures.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	// ErrTypeConfig marks invalid or incomplete configuration, including a
	// source table that lacks a required column.
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeParsing marks input that could not be read as tabular data.
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeValidation marks values that fail a declared constraint.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypePrecondition marks an operation invoked on data that violates
	// the operation's stated precondition, such as integer coercion of a
	// fractional column or a regression with too few rows.
	ErrTypePrecondition ErrorType = "PRECONDITION"
	// ErrTypeStorage marks filesystem read or write failures.
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeNotFound marks a missing file or resource.
	ErrTypeNotFound ErrorType = "NOT_FOUND"
)

// AppError is the application error carried through the pipeline. It wraps
// an optional cause and holds key/value context for structured logging.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context value and returns the error for chaining.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogArgs flattens the error context into alternating key/value pairs
// suitable for slog calls.
func (e *AppError) LogArgs() []any {
	args := make([]any, 0, len(e.Context)*2+2)
	args = append(args, "error_type", string(e.Type))
	for k, v := range e.Context {
		args = append(args, k, v)
	}
	return args
}

// New creates an application error of the given type.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return New(ErrTypeConfig, message, cause)
}

// NewParsingError creates a parsing error.
func NewParsingError(message string, cause error) *AppError {
	return New(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return New(ErrTypeValidation, message, nil)
}

// NewPreconditionError creates a precondition violation error.
func NewPreconditionError(message string) *AppError {
	return New(ErrTypePrecondition, message, nil)
}

// NewStorageError creates a storage error.
func NewStorageError(message string, cause error) *AppError {
	return New(ErrTypeStorage, message, cause)
}

// NewNotFoundError creates a not-found error for the named resource.
func NewNotFoundError(resource string, cause error) *AppError {
	return New(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), cause)
}

// IsType reports whether err or any error in its chain is an AppError of
// the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
