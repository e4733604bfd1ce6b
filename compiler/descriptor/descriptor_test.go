package descriptor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/otelderive/otelderive/compiler/errors"
)

func parseFile(t *testing.T, src string) (*token.FileSet, *ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	return fset, file
}

func TestScanStruct(t *testing.T) {
	src := `package demo

//otel:derive Key,KeyValue
//otel(key = "req", variant = string)
type Request struct {
	Query string
}
`
	fset, file := parseFile(t, src)
	descs, errs := Scan(fset, file)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(descs) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(descs))
	}

	d := descs[0]
	if d.Name != "Request" {
		t.Errorf("Name = %q, want Request", d.Name)
	}
	if d.Shape != ShapeStruct {
		t.Errorf("Shape = %v, want struct", d.Shape)
	}
	if d.Derive.Text != "Key,KeyValue" {
		t.Errorf("Derive.Text = %q, want \"Key,KeyValue\"", d.Derive.Text)
	}
	if d.Annotation == nil {
		t.Fatal("Annotation = nil, want option block")
	}
	if d.Annotation.Text != `otel(key = "req", variant = string)` {
		t.Errorf("Annotation.Text = %q", d.Annotation.Text)
	}
	if d.Annotation.Line != 4 || d.Annotation.Column != 3 {
		t.Errorf("Annotation at %d:%d, want 4:3", d.Annotation.Line, d.Annotation.Column)
	}
}

func TestScanEnum(t *testing.T) {
	src := `package demo

//otel:derive StringValue
type Method int

const (
	Get Method = iota
	Post
)
`
	fset, file := parseFile(t, src)
	descs, errs := Scan(fset, file)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(descs) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(descs))
	}
	if descs[0].Shape != ShapeEnum {
		t.Errorf("Shape = %v, want enum", descs[0].Shape)
	}
	if descs[0].Annotation != nil {
		t.Error("Annotation should be nil when no option block is present")
	}
}

func TestScanIgnoresUnannotatedTypes(t *testing.T) {
	src := `package demo

type Plain struct{}

//otel:derive Key
type Annotated struct{}
`
	fset, file := parseFile(t, src)
	descs, errs := Scan(fset, file)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(descs) != 1 || descs[0].Name != "Annotated" {
		t.Fatalf("descriptors = %v, want only Annotated", descs)
	}
}

func TestScanGroupedDecl(t *testing.T) {
	src := `package demo

//otel:derive Key
type (
	First  struct{}
	Second struct{}
)
`
	fset, file := parseFile(t, src)
	descs, errs := Scan(fset, file)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(descs) != 2 {
		t.Fatalf("got %d descriptors, want 2 (group directive applies to each spec)", len(descs))
	}
	if descs[0].Name != "First" || descs[1].Name != "Second" {
		t.Errorf("names = %q, %q", descs[0].Name, descs[1].Name)
	}
}

func TestScanUnsupportedItems(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"func", "package demo\n\n//otel:derive Key\nfunc Run() {}\n"},
		{"const", "package demo\n\n//otel:derive Key\nconst Limit = 3\n"},
		{"var", "package demo\n\n//otel:derive Key\nvar Count int\n"},
		{"interface", "package demo\n\n//otel:derive Key\ntype Doer interface{ Do() }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fset, file := parseFile(t, tt.src)
			descs, errs := Scan(fset, file)

			if len(descs) != 0 {
				t.Errorf("descriptors = %v, want none", descs)
			}
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Code != errors.ErrUnsupportedItemKind {
				t.Errorf("code = %s, want %s", errs[0].Code, errors.ErrUnsupportedItemKind)
			}
		})
	}
}

func TestScanDanglingOptionBlockWarns(t *testing.T) {
	src := `package demo

//otel(key = "lost")
type Orphan struct{}
`
	fset, file := parseFile(t, src)
	descs, errs := Scan(fset, file)

	if len(descs) != 0 {
		t.Errorf("descriptors = %v, want none", descs)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(errs), errs)
	}
	if errs[0].Severity != errors.Warning {
		t.Errorf("severity = %v, want warning", errs[0].Severity)
	}
}

func TestScanDuplicateDirectives(t *testing.T) {
	src := `package demo

//otel:derive Key
//otel:derive Value
type Twice struct{}
`
	fset, file := parseFile(t, src)
	_, errs := Scan(fset, file)

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Code != errors.ErrSyntax {
		t.Errorf("code = %s, want %s", errs[0].Code, errors.ErrSyntax)
	}
}
