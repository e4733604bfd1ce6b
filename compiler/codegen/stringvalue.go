package codegen

// generateStringValue emits the StringValue conversion pair. The body wraps
// the type's canonical stringification (fmt.Stringer) in a string-kinded
// attribute value; the Stringer implementation is a precondition checked by
// the Go compiler when the generated file builds.
func (g *Generator) generateStringValue(target *Target) {
	name := target.Desc.Name
	recv := receiver(name)

	g.writeLine("// %sStringValue converts %s into a string-kinded telemetry", g.methodPrefix, name)
	g.writeLine("// attribute value using its canonical string form.")
	g.writeLine("func (%s *%s) %sStringValue() attribute.Value {", recv, name, g.methodPrefix)
	g.indent++
	g.writeLine("return attribute.StringValue(%s.String())", recv)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("// %sStringValue converts a %s into a string-kinded telemetry", name, name)
	g.writeLine("// attribute value, delegating to the reference form.")
	g.writeLine("func %sStringValue(%s %s) attribute.Value {", name, recv, name)
	g.indent++
	g.writeLine("return (&%s).%sStringValue()", recv, g.methodPrefix)
	g.indent--
	g.writeLine("}")
}
