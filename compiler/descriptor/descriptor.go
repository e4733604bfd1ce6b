// Package descriptor builds type descriptors from annotated Go source. It
// walks a parsed file, finds declarations carrying otelderive directives,
// and extracts the minimal shape the synthesizers need: the type's name and
// whether it is a struct or an enum-style defined type. Field and variant
// contents are deliberately not extracted; the engine is shape-blind beyond
// "a type with a name".
//
// Two comment directives are recognized in a declaration's doc comment:
//
//	//otel:derive Key,KeyValue,StringValue,Value
//	//otel(key = "req", variant = string)
//
// The first requests capabilities; the second is the attribute option block
// and is optional. Directives on anything other than a struct or defined
// type declaration are hard errors.
package descriptor

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/otelderive/otelderive/compiler/errors"
)

const (
	derivePrefix  = "//otel:derive"
	optionsPrefix = "//otel("
)

// Shape classifies an annotated type definition
type Shape int

const (
	ShapeStruct Shape = iota
	ShapeEnum         // any non-struct defined type, the Go enum idiom
)

// String returns the shape name
func (s Shape) String() string {
	if s == ShapeStruct {
		return "struct"
	}
	return "enum"
}

// Directive is the raw payload of one otelderive comment directive together
// with the source position of the payload's first character.
type Directive struct {
	Text   string
	File   string
	Line   int
	Column int
}

// TypeDescriptor is the minimal view of one annotated type: its declared
// name, its shape, the requested capability list and the optional attribute
// option block, both still in raw textual form. It is built once per type
// and is immutable afterwards.
type TypeDescriptor struct {
	Name       string
	Shape      Shape
	Location   errors.SourceLocation // location of the type name
	Derive     Directive
	Annotation *Directive // nil when the type has no otel(...) block
}

// Scan collects the descriptors of every annotated type in file. Directives
// attached to functions, variables, constants or imports produce
// UnsupportedItemKind diagnostics; annotated interface types do too, since
// an interface carries no data to convert.
func Scan(fset *token.FileSet, file *ast.File) ([]*TypeDescriptor, []errors.CompilerError) {
	var descriptors []*TypeDescriptor
	var errs []errors.CompilerError

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok == token.TYPE {
				descs, scanErrs := scanTypeDecl(fset, d)
				descriptors = append(descriptors, descs...)
				errs = append(errs, scanErrs...)
				continue
			}
			if dir := findDirective(fset, d.Doc); dir != nil {
				errs = append(errs, unsupportedItem(fset, dir, d.Tok.String()))
			}
		case *ast.FuncDecl:
			if dir := findDirective(fset, d.Doc); dir != nil {
				errs = append(errs, unsupportedItem(fset, dir, "func"))
			}
		}
	}

	return descriptors, errs
}

// scanTypeDecl handles one type declaration, grouped or not. Directives on
// the group apply to every spec; a spec's own doc comment overrides the
// group's, directive by directive.
func scanTypeDecl(fset *token.FileSet, decl *ast.GenDecl) ([]*TypeDescriptor, []errors.CompilerError) {
	var descriptors []*TypeDescriptor
	var errs []errors.CompilerError

	groupDerive, groupAnnot, groupErrs := extractDirectives(fset, decl.Doc)
	errs = append(errs, groupErrs...)

	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		derive, annot, specErrs := extractDirectives(fset, ts.Doc)
		errs = append(errs, specErrs...)
		if derive == nil {
			derive = groupDerive
		}
		if annot == nil {
			annot = groupAnnot
		}

		if derive == nil {
			if annot != nil {
				// An option block with no derive list configures nothing;
				// flag it rather than let a telemetry key silently vanish.
				warn := errors.New("descriptor", errors.ErrSyntax,
					fmt.Sprintf("otel(...) option block on %q has no //otel:derive directive and has no effect", ts.Name.Name),
					directiveLocation(annot))
				warn.Severity = errors.Warning
				errs = append(errs, warn)
			}
			continue
		}

		namePos := fset.Position(ts.Name.Pos())
		loc := errors.SourceLocation{
			File:   namePos.Filename,
			Line:   namePos.Line,
			Column: namePos.Column,
			Length: len(ts.Name.Name),
		}

		shape, shapeOK := classify(ts)
		if !shapeOK {
			errs = append(errs, errors.New("descriptor", errors.ErrUnsupportedItemKind,
				fmt.Sprintf("cannot derive conversions for %q: not a struct or enum-style type", ts.Name.Name),
				loc))
			continue
		}

		descriptors = append(descriptors, &TypeDescriptor{
			Name:       ts.Name.Name,
			Shape:      shape,
			Location:   loc,
			Derive:     *derive,
			Annotation: annot,
		})
	}

	return descriptors, errs
}

// classify maps a type spec to a descriptor shape. Structs are Struct;
// interfaces are rejected; every other defined type (named scalars, the
// usual enum idiom) is Enum.
func classify(ts *ast.TypeSpec) (Shape, bool) {
	switch ts.Type.(type) {
	case *ast.StructType:
		return ShapeStruct, true
	case *ast.InterfaceType:
		return 0, false
	default:
		return ShapeEnum, true
	}
}

// extractDirectives pulls at most one derive directive and one option block
// out of a doc comment. Seconds of either kind are errors.
func extractDirectives(fset *token.FileSet, doc *ast.CommentGroup) (*Directive, *Directive, []errors.CompilerError) {
	if doc == nil {
		return nil, nil, nil
	}

	var derive, annot *Directive
	var errs []errors.CompilerError

	for _, c := range doc.List {
		switch {
		case strings.HasPrefix(c.Text, derivePrefix):
			dir := payloadAfter(fset, c, len(derivePrefix))
			if derive != nil {
				errs = append(errs, errors.New("descriptor", errors.ErrSyntax,
					"multiple //otel:derive directives on one declaration",
					directiveLocation(dir)))
				continue
			}
			derive = dir
		case strings.HasPrefix(c.Text, optionsPrefix):
			dir := payloadAfter(fset, c, len("//"))
			if annot != nil {
				errs = append(errs, errors.New("descriptor", errors.ErrSyntax,
					"multiple otel(...) option blocks on one declaration",
					directiveLocation(dir)))
				continue
			}
			annot = dir
		}
	}

	return derive, annot, errs
}

// payloadAfter builds a Directive for the comment text after the first
// `skip` bytes, trimming leading spaces and adjusting the column so tokens
// map back to the Go file.
func payloadAfter(fset *token.FileSet, c *ast.Comment, skip int) *Directive {
	pos := fset.Position(c.Slash)
	text := c.Text[skip:]
	trimmed := strings.TrimLeft(text, " \t")
	skip += len(text) - len(trimmed)

	return &Directive{
		Text:   strings.TrimRight(trimmed, " \t"),
		File:   pos.Filename,
		Line:   pos.Line,
		Column: pos.Column + skip,
	}
}

// findDirective reports the first otelderive directive in a doc comment,
// used to flag directives on unsupported declarations.
func findDirective(fset *token.FileSet, doc *ast.CommentGroup) *Directive {
	if doc == nil {
		return nil
	}
	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, derivePrefix) || strings.HasPrefix(c.Text, optionsPrefix) {
			pos := fset.Position(c.Slash)
			return &Directive{Text: c.Text, File: pos.Filename, Line: pos.Line, Column: pos.Column}
		}
	}
	return nil
}

func unsupportedItem(fset *token.FileSet, dir *Directive, kind string) errors.CompilerError {
	return errors.New("descriptor", errors.ErrUnsupportedItemKind,
		fmt.Sprintf("otelderive directives are only valid on type declarations, found one on a %s", kind),
		directiveLocation(dir))
}

func directiveLocation(dir *Directive) errors.SourceLocation {
	length := len(dir.Text)
	if length == 0 {
		length = 1
	}
	return errors.SourceLocation{
		File:   dir.File,
		Line:   dir.Line,
		Column: dir.Column,
		Length: length,
	}
}
