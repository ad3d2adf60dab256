package errors

import (
	"fmt"
	"strings"

	"mercator-hq/triage/pkg/protocol/ast"
)

// ErrorType categorises an error.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // YAML syntax error
	ErrorTypeStructural ErrorType = "structural" // missing or malformed fields
	ErrorTypeSemantic   ErrorType = "semantic"   // undefined reference, cycle, unknown symptom
	ErrorTypeIO         ErrorType = "io"         // file access
)

// Severity distinguishes blocking errors from warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error is a single located problem.
type Error struct {
	Type       ErrorType
	Severity   Severity
	Message    string
	Location   ast.Location
	Context    string // surrounding source lines
	Suggestion string
}

// Error renders the error with its location, context and suggestion.
func (e *Error) Error() string {
	var sb strings.Builder

	severity := e.Severity
	if severity == "" {
		severity = SeverityError
	}
	sb.WriteString(fmt.Sprintf("%s[%s] %s\n", severity, e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// IsWarning reports whether the error is a warning.
func (e *Error) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// ErrorList accumulates errors and warnings.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList returns an empty list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends err. An empty severity is treated as SeverityError.
func (el *ErrorList) Add(err *Error) {
	if err.Severity == "" {
		err.Severity = SeverityError
	}
	el.Errors = append(el.Errors, err)
}

// AddError appends an error.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{Type: errType, Message: message, Location: location})
}

// AddErrorWithSuggestion appends an error with a suggested fix.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{Type: errType, Message: message, Location: location, Suggestion: suggestion})
}

// AddWarning appends a warning.
func (el *ErrorList) AddWarning(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Severity:   SeverityWarning,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// Merge appends every entry of other.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// HasErrors reports whether the list holds at least one non-warning.
func (el *ErrorList) HasErrors() bool {
	for _, e := range el.Errors {
		if !e.IsWarning() {
			return true
		}
	}
	return false
}

// Count returns the number of entries, warnings included.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Warnings returns the warning entries.
func (el *ErrorList) Warnings() []*Error {
	var out []*Error
	for _, e := range el.Errors {
		if e.IsWarning() {
			out = append(out, e)
		}
	}
	return out
}

// Promote turns every warning into an error. Used by strict mode.
func (el *ErrorList) Promote() {
	for _, e := range el.Errors {
		e.Severity = SeverityError
	}
}

// Error renders every entry.
func (el *ErrorList) Error() string {
	if len(el.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("%d: ", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns the list if it holds an error, nil otherwise. Warnings
// alone do not produce an error.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns the entries of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType reports whether a non-warning of the given type exists.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType && !err.IsWarning() {
			return true
		}
	}
	return false
}
