package codegen

import (
	"fmt"

	"github.com/otelderive/otelderive/compiler/validate"
)

// generateValue emits the Value conversion pair. The body is exactly a
// chained conversion: the receiver is converted into the annotated
// `variant` type through the user-supplied conversion method, and the
// result is wrapped by the matching attribute constructor. The engine
// introduces no logic of its own; if the conversion method is missing,
// the generated file fails to compile, which is the expected surfacing
// of that unmet precondition.
func (g *Generator) generateValue(target *Target) error {
	if target.Options == nil || target.Options.Variant == nil {
		return fmt.Errorf("codegen: Value requested for %s without a variant (validator skipped?)", target.Desc.Name)
	}
	variant, ok := validate.Variants[target.Options.Variant.Name]
	if !ok {
		return fmt.Errorf("codegen: unsupported variant %q for %s (validator skipped?)",
			target.Options.Variant.Name, target.Desc.Name)
	}

	name := target.Desc.Name
	recv := receiver(name)

	g.writeLine("// %sValue converts %s into a telemetry attribute value via its", g.methodPrefix, name)
	g.writeLine("// %s form.", variant.ReturnType)
	g.writeLine("func (%s *%s) %sValue() attribute.Value {", recv, name, g.methodPrefix)
	g.indent++
	g.writeLine("return attribute.%s(%s.%s())", variant.Constructor, recv, variant.Method)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("// %sValue converts a %s into a telemetry attribute value,", name, name)
	g.writeLine("// delegating to the reference form.")
	g.writeLine("func %sValue(%s %s) attribute.Value {", name, recv, name)
	g.indent++
	g.writeLine("return (&%s).%sValue()", recv, g.methodPrefix)
	g.indent--
	g.writeLine("}")
	return nil
}
