package errors

import (
	"errors"
	"fmt"
)

// Code represents a stable error code for programmatic handling.
type Code string

const (
	CodeUnknown       Code = "unknown"
	CodeInvalid       Code = "invalid"
	CodeNotFound      Code = "not_found"
	CodeAlreadyExists Code = "already_exists"
	CodeBusinessRule  Code = "business_rule_violation"
	CodeDatabase      Code = "database_error"
	CodeInternal      Code = "internal"
	CodeUnavailable   Code = "unavailable"
)

// AppError is a structured error type that carries a code, message, and optional metadata.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Meta    map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error { return e.Err }

// WithMeta attaches metadata to the error.
func (e *AppError) WithMeta(k string, v any) *AppError {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[k] = v
	return e
}

// New creates a new AppError with code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with code and message.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFound reports a missing entity by id.
func NotFound(entity string, id any) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s %v not found", entity, id)).
		WithMeta("entity", entity).WithMeta("id", id)
}

// AlreadyExists reports a uniqueness conflict on a field.
func AlreadyExists(entity, field string, value any) *AppError {
	return New(CodeAlreadyExists, fmt.Sprintf("%s with %s %v already exists", entity, field, value)).
		WithMeta("entity", entity).WithMeta("field", field).WithMeta("value", value)
}

// InvalidInput reports a rejected request value.
func InvalidInput(message string) *AppError {
	return New(CodeInvalid, message)
}

// BusinessRule reports a violated domain rule.
func BusinessRule(message string) *AppError {
	return New(CodeBusinessRule, message)
}

// Database wraps a storage-layer failure. The raw driver error stays attached
// for logs; the HTTP boundary replaces the message before it reaches callers.
func Database(err error, message string) *AppError {
	return Wrap(err, CodeDatabase, message)
}

// Internal wraps an unexpected failure.
func Internal(err error, message string) *AppError {
	return Wrap(err, CodeInternal, message)
}

// IsCode checks if an error has the provided code (through unwrapping).
func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
