package errors

import "encoding/json"

// jsonError is the wire shape of a diagnostic for --json output.
type jsonError struct {
	Phase      string         `json:"phase"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Severity   Severity       `json:"severity"`
	Location   SourceLocation `json:"location"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (e CompilerError) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonError{
		Phase:      e.Phase,
		Code:       e.Code,
		Message:    e.Message,
		Severity:   e.Severity,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	})
}

// FormatJSON renders all diagnostics as an indented JSON array, suitable for
// editor and CI integration.
func FormatJSON(errs []CompilerError) (string, error) {
	if errs == nil {
		errs = []CompilerError{}
	}
	out, err := json.MarshalIndent(errs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
