package parser

import (
	"github.com/otelderive/otelderive/compiler/errors"
	"github.com/otelderive/otelderive/compiler/lexer"
)

// Capability is one of the four conversion derivations a type can request.
type Capability int

const (
	CapabilityKey Capability = iota
	CapabilityValue
	CapabilityStringValue
	CapabilityKeyValue
)

// String returns the capability name as written in a derive list
func (c Capability) String() string {
	switch c {
	case CapabilityKey:
		return "Key"
	case CapabilityValue:
		return "Value"
	case CapabilityStringValue:
		return "StringValue"
	case CapabilityKeyValue:
		return "KeyValue"
	default:
		return "unknown"
	}
}

// CapabilityNames lists the valid derive-list entries, used for
// validation and did-you-mean suggestions.
var CapabilityNames = []string{"Key", "Value", "StringValue", "KeyValue"}

// capabilities maps derive-list entries to their Capability for O(1) lookup
var capabilities = map[string]Capability{
	"Key":         CapabilityKey,
	"Value":       CapabilityValue,
	"StringValue": CapabilityStringValue,
	"KeyValue":    CapabilityKeyValue,
}

// StringOption is a string-valued annotation option (`key = "req"`).
type StringOption struct {
	Value    string
	Location errors.SourceLocation
}

// TypeRefOption is a type-reference-valued annotation option
// (`variant = int64`).
type TypeRefOption struct {
	Name     string
	Location errors.SourceLocation
}

// AttributeOptions is the structured form of one `otel(...)` block. It is
// parsed once per annotated type and shared read-only by every capability's
// validate-and-synthesize step, so a single block can parameterize Key,
// Value, StringValue and KeyValue simultaneously. The zero value represents
// an absent annotation block, which is always legal: `key` is optional
// everywhere and `variant` is enforced by per-capability validation, not
// by the parser.
type AttributeOptions struct {
	Key      *StringOption
	Variant  *TypeRefOption
	Location errors.SourceLocation // location of the `otel` marker, if present
}

// optionNames lists the valid option names, used for suggestions
var optionNames = []string{"key", "variant"}

// TokenToLocation converts a lexer token to a diagnostic source location
func TokenToLocation(tok lexer.Token) errors.SourceLocation {
	length := len(tok.Lexeme)
	if length == 0 {
		length = 1
	}
	return errors.SourceLocation{
		File:   tok.File,
		Line:   tok.Line,
		Column: tok.Column,
		Length: length,
	}
}
