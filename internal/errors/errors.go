package errors

import (
	"errors"
	"fmt"
)

// AppError is a coded application error carried across the HTTP boundary
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Cause      error
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

// New creates a coded error with no cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error
func Wrap(code string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message
func Wrapf(code string, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithStatus sets the HTTP status the error should surface as
func (e *AppError) WithStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// Code extracts the error code, or "UNKNOWN" for uncoded errors
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code anywhere in its chain
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Failure taxonomy for the dashboard fetch path. Transport failures never got
// a response, protocol failures got a non-success status, payload failures
// got a body that does not decode as a batch. All three are recoverable by a
// manual refresh and surface through the same status line.
const (
	CodeTransportFailure = "TRANSPORT_FAILURE"
	CodeProtocolFailure  = "PROTOCOL_FAILURE"
	CodeMalformedPayload = "MALFORMED_PAYLOAD"

	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeCacheError    = "CACHE_ERROR"
	CodeSourceError   = "SOURCE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)
