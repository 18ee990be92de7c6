package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed load.
type ErrorKind int

const (
	// ErrorKindFetch means the raw table could not be retrieved.
	ErrorKindFetch ErrorKind = iota
	// ErrorKindParse means the retrieved content is not a delimited table.
	ErrorKindParse
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindFetch:
		return "fetch"
	case ErrorKindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// LoadError is the terminal error of a load attempt.
type LoadError struct {
	Err    error
	Source string
	Kind   ErrorKind
}

// NewFetchError wraps err as a fetch failure for source.
func NewFetchError(source string, err error) *LoadError {
	return &LoadError{Kind: ErrorKindFetch, Source: source, Err: err}
}

// NewParseError wraps err as a parse failure for source.
func NewParseError(source string, err error) *LoadError {
	return &LoadError{Kind: ErrorKindParse, Source: source, Err: err}
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case ErrorKindFetch:
		return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
	case ErrorKindParse:
		return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from err if it wraps a LoadError.
func KindOf(err error) (ErrorKind, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return 0, false
}
