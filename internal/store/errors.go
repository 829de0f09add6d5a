package store

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput indicates an input collection that does not exist.
	ErrMissingInput = errors.New("store: missing input")
	// ErrMalformedData indicates an input that exists but cannot be decoded.
	ErrMalformedData = errors.New("store: malformed data")
	// ErrUnknownFormat indicates a format name no backend handles.
	ErrUnknownFormat = errors.New("store: unknown format")
)

// MissingInputError reports a required input collection that could not be
// found.
type MissingInputError struct {
	Collection string
	Source     string
	Err        error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s input %q not found: %v", e.Collection, e.Source, e.Err)
}

// Is matches ErrMissingInput.
func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// Unwrap returns the underlying cause.
func (e *MissingInputError) Unwrap() error { return e.Err }

// MalformedDataError reports an input collection that failed to decode.
type MalformedDataError struct {
	Collection string
	Source     string
	Err        error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("%s input %q is malformed: %v", e.Collection, e.Source, e.Err)
}

// Is matches ErrMalformedData.
func (e *MalformedDataError) Is(target error) bool { return target == ErrMalformedData }

// Unwrap returns the underlying cause.
func (e *MalformedDataError) Unwrap() error { return e.Err }
