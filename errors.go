package envgate

import (
	"errors"
	"fmt"
)

// Error codes for query failures.
const (
	ErrCodeMissing    = "missing"
	ErrCodeValidation = "validation_failed"
	ErrCodeParse      = "parse_failed"
)

var (
	// ErrNotInitialized is returned by builder queries issued before Init.
	// It is a programming error and is never swallowed by a chained default.
	ErrNotInitialized = errors.New("envgate: not initialized, call envgate.Init() before querying")

	// ErrWatchNotSupported is returned by Watch when no file was loaded at Init.
	ErrWatchNotSupported = errors.New("envgate: watch not supported, no file was loaded")

	// ErrUnsupportedValidator is returned when a validator cannot be constructed.
	ErrUnsupportedValidator = errors.New("envgate: validator not supported")
)

// InitError reports a failure to load the configured env file.
// Use errors.Is(err, fs.ErrNotExist) to distinguish a missing file
// from a malformed one.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("envgate: load %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// QueryError reports a failed lookup for a single key.
type QueryError struct {
	Key       string
	Value     string // raw value, empty when the key was absent
	Code      string // one of the ErrCode constants
	Validator int    // index of the failing validator, -1 otherwise
	Err       error  // underlying coercion error, nil otherwise
}

func (e *QueryError) Error() string {
	switch e.Code {
	case ErrCodeMissing:
		return fmt.Sprintf("envgate: %s is not set", e.Key)
	case ErrCodeValidation:
		return fmt.Sprintf("envgate: validation failed for %s with value %q (validator %d)", e.Key, e.Value, e.Validator)
	case ErrCodeParse:
		return fmt.Sprintf("envgate: parse %s with value %q: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("envgate: query %s failed: %s", e.Key, e.Code)
}

func (e *QueryError) Unwrap() error { return e.Err }
