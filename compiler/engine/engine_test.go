package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelderive/otelderive/compiler/errors"
)

func TestGenerateSourceKeyOnly(t *testing.T) {
	src := `package demo

//otel:derive Key
type Auto struct{}
`
	code, diags := New(nil).GenerateSource("auto.go", src)
	require.Empty(t, diags)

	assert.Contains(t, code, "package demo")
	assert.Contains(t, code, `return attribute.Key("auto")`)
	assert.Contains(t, code, "func (a *Auto) OTelKey() attribute.Key {")
	assert.Contains(t, code, "func AutoKey(a Auto) attribute.Key {")
}

func TestGenerateSourceAllCapabilities(t *testing.T) {
	src := `package demo

//otel:derive Key,KeyValue,StringValue,Value
//otel(key = "req", variant = string)
type Request struct {
	Query string
}
`
	code, diags := New(nil).GenerateSource("request.go", src)
	require.Empty(t, diags)

	assert.Contains(t, code, `return attribute.Key("req")`)
	assert.Contains(t, code, "return attribute.StringValue(r.String())")
	assert.Contains(t, code, "return attribute.KeyValue{Key: r.OTelKey(), Value: r.OTelValue()}")
	// One shared option parse serves all four capabilities.
	assert.Equal(t, 1, strings.Count(code, `attribute.Key("req")`))
}

func TestGenerateSourceMultipleTypes(t *testing.T) {
	src := `package demo

//otel:derive Key
type Auto struct{}

//otel:derive Key
//otel(key = "custom")
type Overriden struct{}

//otel:derive Value
//otel(variant = int64)
type Counter struct {
	Count int64
}
`
	code, diags := New(nil).GenerateSource("demo.go", src)
	require.Empty(t, diags)

	assert.Contains(t, code, `return attribute.Key("auto")`)
	assert.Contains(t, code, `return attribute.Key("custom")`)
	assert.Contains(t, code, "return attribute.Int64Value(c.Int64())")
}

func TestGenerateSourceNoAnnotatedTypes(t *testing.T) {
	code, diags := New(nil).GenerateSource("plain.go", "package demo\n\ntype Plain struct{}\n")
	assert.Empty(t, diags)
	assert.Empty(t, code)
}

func TestGenerateSourceMissingVariant(t *testing.T) {
	src := `package demo

//otel:derive Value
type Counter struct {
	Count int64
}
`
	code, diags := New(nil).GenerateSource("counter.go", src)
	assert.Empty(t, code, "no partial output on error")
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrMissingRequiredOption, diags[0].Code)
	assert.Contains(t, diags[0].Message, `"variant"`)
	assert.Equal(t, "counter.go", diags[0].Location.File)
}

func TestGenerateSourceOneBadTypeFailsPackage(t *testing.T) {
	src := `package demo

//otel:derive Key
type Good struct{}

//otel:derive Value
type Bad struct{}
`
	code, diags := New(nil).GenerateSource("demo.go", src)
	assert.Empty(t, code, "a package with errors never gets partial output")
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrMissingRequiredOption, diags[0].Code)
}

func TestGenerateSourceAnnotationErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode string
	}{
		{
			"unknown option",
			"package demo\n\n//otel:derive Key\n//otel(keys = \"a\")\ntype T struct{}\n",
			errors.ErrUnknownOption,
		},
		{
			"duplicate option",
			"package demo\n\n//otel:derive Key\n//otel(key = \"a\", key = \"b\")\ntype T struct{}\n",
			errors.ErrDuplicateOption,
		},
		{
			"malformed option",
			"package demo\n\n//otel:derive Key\n//otel(key = custom)\ntype T struct{}\n",
			errors.ErrMalformedOption,
		},
		{
			"unknown capability",
			"package demo\n\n//otel:derive Keys\ntype T struct{}\n",
			errors.ErrUnknownCapability,
		},
		{
			"invalid variant",
			"package demo\n\n//otel:derive Value\n//otel(variant = uint32)\ntype T struct{}\n",
			errors.ErrInvalidVariant,
		},
		{
			"directive on func",
			"package demo\n\n//otel:derive Key\nfunc Run() {}\n",
			errors.ErrUnsupportedItemKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, diags := New(nil).GenerateSource("input.go", tt.src)
			assert.Empty(t, code)
			require.NotEmpty(t, diags)
			assert.Equal(t, tt.wantCode, diags[0].Code)
		})
	}
}

func TestGenerateSourceErrorLocations(t *testing.T) {
	src := "package demo\n\n//otel:derive Key\n//otel(keys = \"a\")\ntype T struct{}\n"
	_, diags := New(nil).GenerateSource("input.go", src)
	require.Len(t, diags, 1)

	loc := diags[0].Location
	assert.Equal(t, "input.go", loc.File)
	assert.Equal(t, 4, loc.Line)
	// `//otel(keys = "a")`: the bad option name starts at column 8.
	assert.Equal(t, 8, loc.Column)
	assert.Equal(t, 4, loc.Length)
}

func TestGenerateSourceMethodPrefix(t *testing.T) {
	e := New(nil)
	e.SetMethodPrefix("Attr")

	code, diags := e.GenerateSource("auto.go", "package demo\n\n//otel:derive Key\ntype Auto struct{}\n")
	require.Empty(t, diags)
	assert.Contains(t, code, "func (a *Auto) AttrKey() attribute.Key {")
}

func TestGenerateSourceEnumStringValue(t *testing.T) {
	src := `package demo

//otel:derive StringValue
type Method int
`
	code, diags := New(nil).GenerateSource("method.go", src)
	require.Empty(t, diags)
	assert.Contains(t, code, "return attribute.StringValue(m.String())")
}

func TestGenerateSourceUnparsableGo(t *testing.T) {
	code, diags := New(nil).GenerateSource("broken.go", "package demo\n\ntype {")
	assert.Empty(t, code)
	require.NotEmpty(t, diags)
	assert.Equal(t, "descriptor", diags[0].Phase)
}
