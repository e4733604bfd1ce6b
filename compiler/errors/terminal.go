package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatForTerminal formats a diagnostic for terminal output. The shape is
//
//	Error: unknown option "keys"
//	  --> api/request.go:14:12
//	   |
//	14 | //otel(keys = "req")
//	   |        ^^^^
//	   = did you mean "key"?
//
// with the source line supplied by the caller when available (it lives in
// the annotated Go file, which the diagnostic model does not retain).
func FormatForTerminal(e CompilerError, sourceLine string, noColor bool) string {
	header := severityColor(e.Severity)
	pointer := color.New(color.FgCyan)
	hint := color.New(color.FgYellow)
	if noColor {
		header.DisableColor()
		pointer.DisableColor()
		hint.DisableColor()
	}

	var b strings.Builder
	header.Fprintf(&b, "%s", capitalize(e.Severity.String()))
	fmt.Fprintf(&b, ": %s\n", e.Message)
	pointer.Fprintf(&b, "  --> ")
	fmt.Fprintf(&b, "%s:%d:%d\n", e.Location.File, e.Location.Line, e.Location.Column)

	if sourceLine != "" {
		gutter := fmt.Sprintf("%d", e.Location.Line)
		pad := strings.Repeat(" ", len(gutter))
		pointer.Fprintf(&b, "%s |\n", pad)
		pointer.Fprintf(&b, "%s | ", gutter)
		fmt.Fprintf(&b, "%s\n", sourceLine)
		pointer.Fprintf(&b, "%s | ", pad)

		caretLen := e.Location.Length
		if caretLen <= 0 {
			caretLen = 1
		}
		indent := e.Location.Column - 1
		if indent < 0 {
			indent = 0
		}
		header.Fprintf(&b, "%s%s\n", strings.Repeat(" ", indent), strings.Repeat("^", caretLen))
	}

	if e.Suggestion != "" {
		hint.Fprintf(&b, "  = did you mean %q?\n", e.Suggestion)
	}

	return b.String()
}

// WriteTerminal renders each diagnostic followed by a failure summary.
func WriteTerminal(w io.Writer, errs []CompilerError, sourceLines map[SourceLocation]string, noColor bool) {
	for _, e := range errs {
		fmt.Fprintln(w, FormatForTerminal(e, sourceLines[e.Location], noColor))
	}

	count := 0
	for _, e := range errs {
		if e.IsError() {
			count++
		}
	}
	if count > 0 {
		c := color.New(color.FgRed, color.Bold)
		if noColor {
			c.DisableColor()
		}
		c.Fprintf(w, "generation failed with %d error(s)\n", count)
	}
}

func severityColor(s Severity) *color.Color {
	switch s {
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	case Info:
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
