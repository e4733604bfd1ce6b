// Package validate enforces the per-capability option rules before any code
// is synthesized. Each check reads the same AttributeOptions value parsed
// once from the type's annotation; a failed check short-circuits generation
// for the whole type so no partial output is ever written.
package validate

import (
	"fmt"
	"strings"

	"github.com/otelderive/otelderive/compiler/descriptor"
	"github.com/otelderive/otelderive/compiler/errors"
	"github.com/otelderive/otelderive/compiler/parser"
)

// Variants maps supported `variant` type references to the user-supplied
// conversion method and the attribute constructor the synthesizer wires
// them through. The table is closed: Go resolves the constructor at
// generation time, so a variant outside it cannot be emitted.
//
// `StringValue` is an alias for `string`, mirroring the telemetry data
// model where a string-kinded Value is built with attribute.StringValue.
var Variants = map[string]Variant{
	"bool":        {Method: "Bool", ReturnType: "bool", Constructor: "BoolValue"},
	"int":         {Method: "Int", ReturnType: "int", Constructor: "IntValue"},
	"int64":       {Method: "Int64", ReturnType: "int64", Constructor: "Int64Value"},
	"float64":     {Method: "Float64", ReturnType: "float64", Constructor: "Float64Value"},
	"string":      {Method: "String", ReturnType: "string", Constructor: "StringValue"},
	"StringValue": {Method: "String", ReturnType: "string", Constructor: "StringValue"},
}

// Variant describes how one intermediate type is reached and wrapped.
type Variant struct {
	Method      string // conversion method the annotated type must provide
	ReturnType  string // the method's return type
	Constructor string // attribute package constructor taking ReturnType
}

// variantNames returns the supported variant references for suggestions
func variantNames() []string {
	names := make([]string, 0, len(Variants))
	for name := range Variants {
		names = append(names, name)
	}
	return names
}

// Check validates the options of one capability request against the type
// descriptor. A nil slice means the capability can be synthesized.
func Check(cap parser.Capability, desc *descriptor.TypeDescriptor, opts *parser.AttributeOptions) []errors.CompilerError {
	switch cap {
	case parser.CapabilityValue:
		return checkValue(desc, opts)
	case parser.CapabilityKey, parser.CapabilityStringValue, parser.CapabilityKeyValue:
		// Key's `key` option is optional; StringValue and KeyValue take no
		// options of their own. A `variant` on the same block may serve a
		// sibling Value derivation and is never an error here.
		return nil
	default:
		return nil
	}
}

// checkValue enforces Value's required `variant` option and the closed
// variant table.
func checkValue(desc *descriptor.TypeDescriptor, opts *parser.AttributeOptions) []errors.CompilerError {
	if opts == nil || opts.Variant == nil {
		// Point at the option block when there is one, else at the type.
		loc := desc.Location
		if opts != nil && opts.Location.Line != 0 {
			loc = opts.Location
		}
		return []errors.CompilerError{
			errors.New("validate", errors.ErrMissingRequiredOption,
				fmt.Sprintf(`missing required option "variant" for Value derivation on %q`, desc.Name),
				loc),
		}
	}

	if _, ok := Variants[opts.Variant.Name]; !ok {
		err := errors.New("validate", errors.ErrInvalidVariant,
			fmt.Sprintf("unsupported variant %q; supported variants are %s",
				opts.Variant.Name, supportedVariantList()),
			opts.Variant.Location)
		if near := errors.NearestName(opts.Variant.Name, variantNames()); near != "" {
			err = err.WithSuggestion(near)
		}
		return []errors.CompilerError{err}
	}

	return nil
}

// supportedVariantList renders the variant table keys in stable order for
// diagnostics.
func supportedVariantList() string {
	ordered := []string{"bool", "int", "int64", "float64", "string", "StringValue"}
	return strings.Join(ordered, ", ")
}
