package routes

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrConfig matches every *ConfigError via errors.Is.
	ErrConfig = errors.New("routes: invalid configuration")

	// ErrMissingRoutesKey is returned when the declarative document has no
	// top-level routes collection.
	ErrMissingRoutesKey = errors.New("routes: missing top-level \"routes\" key")

	// ErrNoSource is returned when the table is not cached and no
	// declarative source was configured.
	ErrNoSource = errors.New("routes: no route source configured")
)

// Registry errors.
var (
	// ErrDuplicateRoute is returned when a route identifier is already
	// present in the table.
	ErrDuplicateRoute = errors.New("routes: route identifier already exists")
)

// Lookup errors.
var (
	// ErrNoMatch is never returned by Match or GetRoute, which report a miss
	// with a false result. It is provided for callers that need an error
	// value for a miss, such as an HTTP front controller answering 404.
	ErrNoMatch = errors.New("routes: no matching route")
)

// ConfigError reports a declarative route source that is missing,
// unreadable or malformed. It is fatal at construction time.
type ConfigError struct {
	// Source names the offending source, usually a file path. May be empty.
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v: %v", ErrConfig, e.Err)
	}

	return fmt.Sprintf("%v %s: %v", ErrConfig, e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// configError wraps err into a *ConfigError unless it already is one.
func configError(source string, err error) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return err
	}

	return &ConfigError{Source: source, Err: err}
}
