package modeldraw

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a relation target does not match any entity.
	ErrNotFound = errors.New("modeldraw: relation target not found")

	// ErrMissingKey is returned when a required key is absent from the input document.
	ErrMissingKey = errors.New("modeldraw: missing required key")
)

// NotFoundError represents a relation target that could not be resolved
// to an entity of the graph.
type NotFoundError struct {
	target   string
	resolved string // Candidate after lower-casing and name mapping.
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.resolved != "" && !strings.EqualFold(e.resolved, e.target) {
		return fmt.Sprintf("modeldraw: target %q not found (mapped to %q)", e.target, e.resolved)
	}
	return fmt.Sprintf("modeldraw: target %q not found", e.target)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Target returns the name as it was written in the input.
func (e *NotFoundError) Target() string {
	return e.target
}

// Resolved returns the candidate that was looked up, after mapping.
func (e *NotFoundError) Resolved() string {
	return e.resolved
}

// NewNotFoundError returns a new NotFoundError for the given target name.
func NewNotFoundError(target, resolved string) *NotFoundError {
	return &NotFoundError{target: target, resolved: resolved}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// MissingKeyError represents a required key that is absent from an object
// of the input document.
type MissingKeyError struct {
	Path string // Location of the object, e.g. "graphs[0].models[2]"
	Key  string
}

// Error returns the error string.
func (e *MissingKeyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("modeldraw: missing required key %q", e.Key)
	}
	return fmt.Sprintf("modeldraw: missing required key %q at %s", e.Key, e.Path)
}

// Is reports whether the target error matches MissingKeyError.
func (e *MissingKeyError) Is(err error) bool {
	return err == ErrMissingKey
}

// NewMissingKeyError returns a new MissingKeyError.
func NewMissingKeyError(path, key string) *MissingKeyError {
	return &MissingKeyError{Path: path, Key: key}
}

// IsMissingKey returns true if the error is a MissingKeyError.
func IsMissingKey(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingKeyError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "modeldraw: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("modeldraw: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
