package types

import (
	"errors"
	"net/http"

	appErr "github.com/techstock/engine/pkg/errors"
)

// FromAppError converts an error to the wire representation. Storage and
// internal failures are scrubbed so raw backend text never reaches callers.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
	}
	switch ae.Code {
	case appErr.CodeDatabase:
		return &APIError{Code: string(ae.Code), Message: "database error occurred"}
	case appErr.CodeInternal, appErr.CodeUnknown:
		return &APIError{Code: string(ae.Code), Message: "internal server error"}
	default:
		return &APIError{Code: string(ae.Code), Message: ae.Message}
	}
}

// StatusFromError maps error codes to HTTP status codes.
func StatusFromError(err error) int {
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeAlreadyExists:
		return http.StatusConflict
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeBusinessRule:
		return http.StatusUnprocessableEntity
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
