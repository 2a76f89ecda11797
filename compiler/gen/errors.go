package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates an input document that cannot form a graph.
	ErrInvalidSchema = errors.New("modeldraw: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("modeldraw: missing configuration")
	// ErrUnresolvedEdge indicates a relation whose target matched no entity.
	ErrUnresolvedEdge = errors.New("modeldraw: unresolved edge")
	// ErrGenerationFailed indicates that rendering or writing the document failed.
	ErrGenerationFailed = errors.New("modeldraw: generation failed")
	// ErrIdentifierExhausted indicates that no unique identifier could be drawn.
	ErrIdentifierExhausted = errors.New("modeldraw: identifier space exhausted")
)

// SchemaError represents an entity or field that cannot be placed in the graph.
type SchemaError struct {
	Namespace string
	Entity    string
	Field     string // Field name (if applicable)
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("modeldraw: schema error")
	if e.Namespace != "" {
		b.WriteString(" in ")
		b.WriteString(e.Namespace)
	}
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(namespace, entity, field, message string) *SchemaError {
	return &SchemaError{
		Namespace: namespace,
		Entity:    entity,
		Field:     field,
		Message:   message,
	}
}

// ConfigError represents an invalid option value.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("modeldraw: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("modeldraw: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// EdgeError describes a relation that did not become an edge. It is never
// returned from NewGraph; it is attached to the Miss that records it.
type EdgeError struct {
	From   string // Source entity name
	Via    string // Field name for inferred relations
	Target string // Target name as written in the input
	Cause  error
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	var b strings.Builder
	b.WriteString("modeldraw: edge error")
	switch {
	case e.From != "" && e.Via != "":
		fmt.Fprintf(&b, " (%s.%s -> %s)", e.From, e.Via, e.Target)
	case e.From != "":
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.Target)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *EdgeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for EdgeError.
func (e *EdgeError) Is(target error) bool {
	return target == ErrUnresolvedEdge
}

// NewEdgeError creates a new EdgeError.
func NewEdgeError(from, via, target string, cause error) *EdgeError {
	return &EdgeError{
		From:   from,
		Via:    via,
		Target: target,
		Cause:  cause,
	}
}

// GenerationError represents a failure to render or write a document.
type GenerationError struct {
	Generator string // Generator name, e.g. "drawio"
	Path      string // Output path, empty for writers
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("modeldraw: generation error")
	if e.Generator != "" {
		b.WriteString(" in ")
		b.WriteString(e.Generator)
	}
	if e.Path != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(generator, path, message string, cause error) *GenerationError {
	return &GenerationError{
		Generator: generator,
		Path:      path,
		Message:   message,
		Cause:     cause,
	}
}

// IdentifierError is returned when the configured IDGenerator keeps
// producing identifiers that were already issued.
type IdentifierError struct {
	Entity   string
	Attempts int
	Last     string // Last identifier drawn
}

// Error implements the error interface.
func (e *IdentifierError) Error() string {
	return fmt.Sprintf("modeldraw: no unique identifier for %q after %d attempts (last %q)", e.Entity, e.Attempts, e.Last)
}

// Is reports whether the target matches the sentinel error for IdentifierError.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrIdentifierExhausted
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsEdgeError reports whether the error is an EdgeError.
func IsEdgeError(err error) bool {
	var edgeErr *EdgeError
	return errors.As(err, &edgeErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsIdentifierError reports whether the error is an IdentifierError.
func IsIdentifierError(err error) bool {
	var idErr *IdentifierError
	return errors.As(err, &idErr)
}
