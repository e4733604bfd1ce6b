package codegen

// generateKeyValue emits the KeyValue conversion pair by composing the Key
// and Value conversions: the pair is always built from those two methods,
// whether they were generated on the same type or written by hand. A type
// deriving KeyValue without providing either conversion fails to compile,
// surfacing the unmet precondition at build time.
func (g *Generator) generateKeyValue(target *Target) {
	name := target.Desc.Name
	recv := receiver(name)

	g.writeLine("// %sKeyValue pairs the Key and Value conversions of %s into a", g.methodPrefix, name)
	g.writeLine("// telemetry attribute.")
	g.writeLine("func (%s *%s) %sKeyValue() attribute.KeyValue {", recv, name, g.methodPrefix)
	g.indent++
	g.writeLine("return attribute.KeyValue{Key: %s.%sKey(), Value: %s.%sValue()}", recv, g.methodPrefix, recv, g.methodPrefix)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("// %sKeyValue converts a %s into a telemetry attribute pair,", name, name)
	g.writeLine("// delegating to the reference form.")
	g.writeLine("func %sKeyValue(%s %s) attribute.KeyValue {", name, recv, name)
	g.indent++
	g.writeLine("return (&%s).%sKeyValue()", recv, g.methodPrefix)
	g.indent--
	g.writeLine("}")
}
