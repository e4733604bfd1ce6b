package parser

import (
	"testing"

	"github.com/otelderive/otelderive/compiler/errors"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantKey     string
		wantVariant string
	}{
		{"key only", `otel(key = "custom")`, "custom", ""},
		{"variant only", `otel(variant = int64)`, "", "int64"},
		{"both options", `otel(key = "req", variant = string)`, "req", "string"},
		{"reversed order", `otel(variant = string, key = "req")`, "req", "string"},
		{"variant StringValue", `otel(variant = StringValue)`, "", "StringValue"},
		{"qualified variant", `otel(variant = attribute.StringValue)`, "", "attribute.StringValue"},
		{"compact spacing", `otel(key="a",variant=bool)`, "a", "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, errs := ParseAnnotationText(tt.input, "test.go", 1, 1)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			gotKey := ""
			if opts.Key != nil {
				gotKey = opts.Key.Value
			}
			if gotKey != tt.wantKey {
				t.Errorf("key = %q, want %q", gotKey, tt.wantKey)
			}

			gotVariant := ""
			if opts.Variant != nil {
				gotVariant = opts.Variant.Name
			}
			if gotVariant != tt.wantVariant {
				t.Errorf("variant = %q, want %q", gotVariant, tt.wantVariant)
			}
		})
	}
}

func TestParseAnnotationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"unknown option", `otel(keys = "req")`, errors.ErrUnknownOption},
		{"duplicate key", `otel(key = "a", key = "b")`, errors.ErrDuplicateOption},
		{"duplicate variant", `otel(variant = int64, variant = bool)`, errors.ErrDuplicateOption},
		{"key given identifier", `otel(key = custom)`, errors.ErrMalformedOption},
		{"variant given string", `otel(variant = "int64")`, errors.ErrMalformedOption},
		{"missing close paren", `otel(key = "a"`, errors.ErrSyntax},
		{"missing equals", `otel(key "a")`, errors.ErrSyntax},
		{"empty block", `otel()`, errors.ErrSyntax},
		{"trailing garbage", `otel(key = "a") extra`, errors.ErrSyntax},
		{"missing paren", `otel key = "a"`, errors.ErrSyntax},
		{"unterminated string", `otel(key = "a`, errors.ErrUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, errs := ParseAnnotationText(tt.input, "test.go", 1, 1)
			if opts != nil {
				t.Error("expected nil options on error")
			}
			if len(errs) == 0 {
				t.Fatal("expected errors, got none")
			}
			found := false
			for _, e := range errs {
				if e.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("expected code %s in %v", tt.wantCode, errs)
			}
		})
	}
}

func TestParseAnnotationUnknownOptionSuggestion(t *testing.T) {
	_, errs := ParseAnnotationText(`otel(keey = "req")`, "test.go", 1, 1)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Suggestion != "key" {
		t.Errorf("suggestion = %q, want \"key\"", errs[0].Suggestion)
	}
}

func TestParseAnnotationErrorLocation(t *testing.T) {
	// The annotation starts at line 14, column 3 of request.go; the bad
	// option name sits 5 columns further in.
	_, errs := ParseAnnotationText(`otel(keys = "req")`, "request.go", 14, 3)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}

	loc := errs[0].Location
	if loc.File != "request.go" || loc.Line != 14 || loc.Column != 8 || loc.Length != 4 {
		t.Errorf("location = %+v, want request.go:14:8 length 4", loc)
	}
}

func TestParseDeriveList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Capability
	}{
		{"single", "Key", []Capability{CapabilityKey}},
		{"pair", "Key,Value", []Capability{CapabilityKey, CapabilityValue}},
		{"all four", "Key,KeyValue,StringValue,Value", []Capability{
			CapabilityKey, CapabilityKeyValue, CapabilityStringValue, CapabilityValue,
		}},
		{"spaced", "Key, Value", []Capability{CapabilityKey, CapabilityValue}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, errs := ParseDeriveListText(tt.input, "test.go", 1, 1)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(caps) != len(tt.expected) {
				t.Fatalf("got %d capabilities, want %d", len(caps), len(tt.expected))
			}
			for i, want := range tt.expected {
				if caps[i] != want {
					t.Errorf("capability %d = %v, want %v", i, caps[i], want)
				}
			}
		})
	}
}

func TestParseDeriveListErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"unknown capability", "Keys", errors.ErrUnknownCapability},
		{"duplicate capability", "Key,Key", errors.ErrDuplicateCapability},
		{"empty list", "", errors.ErrEmptyDeriveList},
		{"trailing comma", "Key,", errors.ErrSyntax},
		{"lowercase", "value", errors.ErrUnknownCapability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, errs := ParseDeriveListText(tt.input, "test.go", 1, 1)
			if caps != nil {
				t.Error("expected nil capabilities on error")
			}
			if len(errs) == 0 {
				t.Fatal("expected errors, got none")
			}
			if errs[0].Code != tt.wantCode {
				t.Errorf("code = %s, want %s", errs[0].Code, tt.wantCode)
			}
		})
	}
}

func TestParseDeriveListSuggestion(t *testing.T) {
	_, errs := ParseDeriveListText("value", "test.go", 1, 1)
	if len(errs) == 0 || errs[0].Suggestion != "Value" {
		t.Fatalf("expected suggestion \"Value\", got %v", errs)
	}
}

func TestCapabilityString(t *testing.T) {
	for name, cap := range capabilities {
		if cap.String() != name {
			t.Errorf("Capability.String() = %q, want %q", cap.String(), name)
		}
	}
}
