package model

import (
	"fmt"
	"strings"
)

// ConstructionError reports a primitive shape violation at value or entity
// construction time.
type ConstructionError struct {
	Field   string
	Message string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction failed on %s: %s", e.Field, e.Message)
}

// NewConstructionError creates a new construction error.
func NewConstructionError(field, message string) *ConstructionError {
	return &ConstructionError{Field: field, Message: message}
}

// ParseError reports malformed XML, a wrong root element or namespace, or a
// structurally required element that is missing.
type ParseError struct {
	Element string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Element != "" {
		if e.Cause != nil {
			return fmt.Sprintf("parse failed at %s: %s (%v)", e.Element, e.Message, e.Cause)
		}
		return fmt.Sprintf("parse failed at %s: %s", e.Element, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse failed: %s (%v)", e.Message, e.Cause)
	}
	return "parse failed: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error.
func NewParseError(element, message string, cause error) *ParseError {
	return &ParseError{Element: element, Message: message, Cause: cause}
}

// ValidationError carries every Error-severity violation found in one
// validation pass, so a caller can correct a document in a single round.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("[%s] %s", v.Code, v.Message)
	}
	return fmt.Sprintf("validation failed with %d violation(s): %s",
		len(e.Violations), strings.Join(parts, "; "))
}

// NewValidationError creates a validation error from Error-severity
// violations.
func NewValidationError(violations []Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}
