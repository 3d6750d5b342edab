package denvar

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when no source file exists.
var ErrSourceNotFound = errors.New("environment file not found")

// errInvalidName is wrapped in a ParseError for variable names no
// environment can hold.
var errInvalidName = errors.New("invalid variable name")

// ParseError reports a source that is not a well-formed document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingEnvironmentError reports a requested environment absent from the source.
type MissingEnvironmentError struct {
	Environment string
	Path        string
}

func (e *MissingEnvironmentError) Error() string {
	return fmt.Sprintf("no %q object in %s file", e.Environment, e.Path)
}
