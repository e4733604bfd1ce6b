// Package engine wires the otelderive pipeline: descriptor scan, annotation
// parse, per-capability validation and code synthesis. Each invocation is a
// pure synchronous transform of one package's parsed files into one
// generated source file plus diagnostics; nothing is shared across
// invocations, so independent packages can be processed in any order.
package engine

import (
	"go/ast"
	goparser "go/parser"
	"go/token"

	"go.uber.org/zap"

	"github.com/otelderive/otelderive/compiler/codegen"
	"github.com/otelderive/otelderive/compiler/descriptor"
	"github.com/otelderive/otelderive/compiler/errors"
	"github.com/otelderive/otelderive/compiler/parser"
	"github.com/otelderive/otelderive/compiler/validate"
)

// DefaultOutputFile is the name of the generated file written into each
// annotated package.
const DefaultOutputFile = "zz_generated_otel.go"

// Engine runs the generation pipeline for one package at a time
type Engine struct {
	log          *zap.Logger
	methodPrefix string
}

// New creates an Engine. A nil logger disables tracing.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// SetMethodPrefix overrides the generated method prefix for all output.
func (e *Engine) SetMethodPrefix(prefix string) {
	e.methodPrefix = prefix
}

// GeneratePackage processes every annotated type in the package's files and
// returns the generated source. The result is empty when the package has no
// annotated types, and empty with diagnostics when any type fails: a
// package with errors never gets a partial output file.
func (e *Engine) GeneratePackage(fset *token.FileSet, pkgName string, files []*ast.File) (string, []errors.CompilerError) {
	var targets []*codegen.Target
	var diags []errors.CompilerError

	for _, file := range files {
		descs, scanErrs := descriptor.Scan(fset, file)
		diags = append(diags, scanErrs...)

		for _, desc := range descs {
			target, typeErrs := e.buildTarget(desc)
			diags = append(diags, typeErrs...)
			if target != nil {
				targets = append(targets, target)
			}
		}
	}

	if errors.HasErrors(diags) {
		return "", diags
	}
	if len(targets) == 0 {
		return "", diags
	}

	gen := codegen.NewGenerator()
	gen.SetMethodPrefix(e.methodPrefix)
	code, err := gen.GenerateFile(pkgName, targets)
	if err != nil {
		// Synthesizer failures past validation indicate a pipeline bug; they
		// are still surfaced as ordinary diagnostics rather than a panic.
		diags = append(diags, errors.New("codegen", errors.ErrSyntax, err.Error(), errors.SourceLocation{}))
		return "", diags
	}

	e.log.Debug("generated package",
		zap.String("package", pkgName),
		zap.Int("types", len(targets)))

	return code, diags
}

// buildTarget runs the per-type half of the pipeline: derive-list parse,
// annotation parse, per-capability validation. The first failed stage
// short-circuits the type.
func (e *Engine) buildTarget(desc *descriptor.TypeDescriptor) (*codegen.Target, []errors.CompilerError) {
	caps, diags := parser.ParseDeriveListText(desc.Derive.Text, desc.Derive.File, desc.Derive.Line, desc.Derive.Column)
	if len(diags) > 0 {
		return nil, diags
	}

	// Absent annotation block: empty options, always legal. The options are
	// parsed once and shared by every capability below.
	opts := &parser.AttributeOptions{}
	if desc.Annotation != nil {
		parsed, parseErrs := parser.ParseAnnotationText(
			desc.Annotation.Text, desc.Annotation.File, desc.Annotation.Line, desc.Annotation.Column)
		if len(parseErrs) > 0 {
			return nil, parseErrs
		}
		opts = parsed
	}

	for _, capability := range caps {
		if errs := validate.Check(capability, desc, opts); len(errs) > 0 {
			diags = append(diags, errs...)
		}
	}
	if len(diags) > 0 {
		return nil, diags
	}

	e.log.Debug("validated type",
		zap.String("type", desc.Name),
		zap.String("shape", desc.Shape.String()),
		zap.Int("capabilities", len(caps)))

	return &codegen.Target{Desc: desc, Options: opts, Capabilities: caps}, nil
}

// GenerateSource parses a single Go source text and generates from it.
// Used by tests and by dry runs over unsaved buffers.
func (e *Engine) GenerateSource(filename, src string) (string, []errors.CompilerError) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, filename, src, goparser.ParseComments)
	if err != nil {
		return "", []errors.CompilerError{
			errors.New("descriptor", errors.ErrSyntax, err.Error(), errors.SourceLocation{File: filename, Line: 1, Column: 1}),
		}
	}
	return e.GeneratePackage(fset, file.Name.Name, []*ast.File{file})
}
