package codegen

import "strings"

// generateKey emits the Key conversion pair. The key string is the `key`
// option when present, otherwise the type's name lowercased verbatim: no
// word splitting, no separators, so HTTPRequest defaults to "httprequest".
// The default is a pure function of the declared name and is computed at
// generation time, making the emitted conversion a constant expression.
func (g *Generator) generateKey(target *Target) {
	name := target.Desc.Name
	recv := receiver(name)
	key := strings.ToLower(name)
	if target.Options != nil && target.Options.Key != nil {
		key = target.Options.Key.Value
	}

	g.writeLine("// %sKey returns the telemetry attribute key for %s.", g.methodPrefix, name)
	g.writeLine("func (%s *%s) %sKey() attribute.Key {", recv, name, g.methodPrefix)
	g.indent++
	g.writeLine("return attribute.Key(%q)", key)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("// %sKey converts a %s into its telemetry attribute key,", name, name)
	g.writeLine("// delegating to the reference form.")
	g.writeLine("func %sKey(%s %s) attribute.Key {", name, recv, name)
	g.indent++
	g.writeLine("return (&%s).%sKey()", recv, g.methodPrefix)
	g.indent--
	g.writeLine("}")
}
