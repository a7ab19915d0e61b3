package binder

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDictionary is returned by Describe for types that are not dictionary-shaped.
	ErrNotDictionary = errors.New("type is not a dictionary")
	// ErrSourceMismatch is returned when the bind source is not assignable to the target type.
	ErrSourceMismatch = errors.New("source does not match the target type")
	// ErrKeyConversion marks entries whose key text cannot be converted to the key type.
	ErrKeyConversion = errors.New("key conversion failed")
	// ErrValueBinding marks entries whose value failed to bind.
	ErrValueBinding = errors.New("value binding failed")
	// ErrUnsupportedValue is returned for value types the default value binder cannot produce.
	ErrUnsupportedValue = errors.New("unsupported value type")
	// ErrMaxDepth is returned when a section is nested deeper than the configured limit.
	ErrMaxDepth = errors.New("maximum configuration depth exceeded")
)

// EntryError is the failure of a single child section. Kind is either
// ErrKeyConversion or ErrValueBinding; errors.Is matches both Kind and Err.
type EntryError struct {
	Path string
	Kind error
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *EntryError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
