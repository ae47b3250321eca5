// Package aspparse is the public entry point for parsing Classic ASP/
// VBScript source into a Program AST, wrapping internal/parser's driver
// behind a small functional-options surface.
package aspparse

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/parser"
)

// Option configures a Parse call.
type Option = parser.Option

// WithFilename attaches a filename used in diagnostic formatting.
func WithFilename(name string) Option { return parser.WithFilename(name) }

// DiagnosticSink receives non-fatal diagnostics (e.g. an unresolved
// include) as they're collected during parsing.
type DiagnosticSink = parser.DiagnosticSink

// WithDiagnosticSink overrides the default in-memory diagnostic sink
// with one supplied by the caller.
func WithDiagnosticSink(sink DiagnosticSink) Option { return parser.WithDiagnosticSink(sink) }

// IncludeResolver resolves an include directive's path to replacement
// source text.
type IncludeResolver = parser.IncludeResolver

// WithIncludeResolver supplies an external include resolver used to
// splice `<!-- #include ... -->` directives into the parsed document.
func WithIncludeResolver(r IncludeResolver) Option { return parser.WithIncludeResolver(r) }

// Diagnostic is a non-fatal report (e.g. an unresolved include).
type Diagnostic = parser.Diagnostic

// Result is the outcome of a successful Parse call: the Program AST plus
// any non-fatal diagnostics collected along the way.
type Result struct {
	Program     *ast.Program
	Diagnostics []Diagnostic
}

// Parse tokenizes and parses source into a Program, applying in-parser
// constant folding and algebraic normalization as it goes. A fatal
// TokenizerError or ParserError aborts the document and is returned as
// err; Result is nil in that case.
func Parse(source string, opts ...Option) (*Result, error) {
	p := parser.New(source, opts...)
	defer p.Close(nil)

	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Result{Program: prog, Diagnostics: p.Diagnostics()}, nil
}
