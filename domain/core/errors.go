package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
	ErrCacheMiss   = fmt.Errorf("%w: cached batch", ErrNotFound)

	// Validation errors
	ErrUnknownCategory = errors.New("unknown category")
	ErrBadTimestamp    = errors.New("unparseable timestamp")
	ErrEmptyClaim      = errors.New("claim text is empty")

	// Source errors
	ErrSourceDisabled    = errors.New("trend source disabled")
	ErrSourceUnavailable = errors.New("trend source unavailable")

	// Dashboard errors
	ErrRefreshInFlight = errors.New("refresh already in flight")
)

// NewValidationError builds a field-level validation failure
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsNotFoundError reports whether err is any of the not-found family
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSourceError reports whether err came from a trend source adapter
func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceDisabled) || errors.Is(err, ErrSourceUnavailable)
}
