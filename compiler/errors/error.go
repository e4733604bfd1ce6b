// Package errors defines the diagnostic model shared by every phase of the
// otelderive pipeline. All failures are generation-time: a diagnostic points
// at the annotation or type declaration that caused it, and the build fails
// before any generated conversion can be called.
package errors

import "fmt"

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// SourceLocation represents a location in an annotated Go source file.
// Line and Column are 1-based; Length covers the offending token so
// renderers can underline it.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
}

// CompilerError represents a diagnostic produced while processing an
// annotated type: a phase ("lexer", "parser", "descriptor", "validate"),
// a stable code from codes.go, a human-readable message, and the source
// location of the offending annotation token or type declaration.
type CompilerError struct {
	Phase      string
	Code       string
	Message    string
	Location   SourceLocation
	Severity   Severity
	Suggestion string // optional "did you mean" hint
}

// Error implements the error interface
func (e CompilerError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Location.File,
		e.Location.Line,
		e.Location.Column,
		e.Code,
		e.Message)
}

// New creates a CompilerError at Error severity.
func New(phase, code, message string, location SourceLocation) CompilerError {
	return CompilerError{
		Phase:    phase,
		Code:     code,
		Message:  message,
		Location: location,
		Severity: Error,
	}
}

// WithSuggestion attaches a "did you mean" hint to the diagnostic.
func (e CompilerError) WithSuggestion(suggestion string) CompilerError {
	e.Suggestion = suggestion
	return e
}

// IsError returns true if the diagnostic is at Error or Fatal severity
func (e CompilerError) IsError() bool {
	return e.Severity == Error || e.Severity == Fatal
}

// HasErrors reports whether any diagnostic in the slice fails the build.
func HasErrors(errs []CompilerError) bool {
	for _, e := range errs {
		if e.IsError() {
			return true
		}
	}
	return false
}
