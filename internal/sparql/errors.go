package sparql

import (
	"errors"
	"fmt"
)

// BuildError reports a malformed expression. Build errors are raised before
// any network call and are never retried.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string
}

// BuildErrorCode categorizes build errors.
type BuildErrorCode string

const (
	// ErrCodeEmptyWhere indicates serialization of an expression with no
	// where patterns.
	ErrCodeEmptyWhere BuildErrorCode = "EMPTY_WHERE"

	// ErrCodeInvalidRange indicates a negative bound, a stop before start,
	// or a negative limit/offset.
	ErrCodeInvalidRange BuildErrorCode = "INVALID_RANGE"

	// ErrCodeUnsupportedStep indicates a slice step other than 1.
	ErrCodeUnsupportedStep BuildErrorCode = "UNSUPPORTED_STEP"
)

// Sentinels for errors.Is. Matching compares codes only.
var (
	ErrEmptyWhere      = &BuildError{Code: ErrCodeEmptyWhere, Message: "missing where clause"}
	ErrInvalidRange    = &BuildError{Code: ErrCodeInvalidRange, Message: "invalid range"}
	ErrUnsupportedStep = &BuildError{Code: ErrCodeUnsupportedStep, Message: "only a step of 1 is supported"}
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a BuildError with the same code.
func (e *BuildError) Is(target error) bool {
	var t *BuildError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func newRangeError(format string, args ...any) *BuildError {
	return &BuildError{Code: ErrCodeInvalidRange, Message: fmt.Sprintf(format, args...)}
}

// IsBuildError returns true if err is any builder-level error.
// Uses errors.As to handle wrapped errors.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}
