// pkg/stageconfig/errors.go
package stageconfig

import "fmt"

// ParseError reports a document that is not well-formed YAML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("ParseError: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a required field that is missing, mistyped, or not
// part of the document schema.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("SchemaError[%s]: %s", e.Field, e.Message)
}

// RangeError reports a value outside its required numeric bounds.
type RangeError struct {
	Field      string
	Constraint string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("RangeError[%s]: must satisfy %s", e.Field, e.Constraint)
}

func newSchemaError(field, message string) *SchemaError {
	return &SchemaError{Field: field, Message: message}
}

func newRangeError(field, constraint string) *RangeError {
	return &RangeError{Field: field, Constraint: constraint}
}
