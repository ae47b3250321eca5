// Package parser implements the recursive-descent expression and
// statement parser for Classic ASP/VBScript, including the in-parser
// constant-folding and algebraic-normalization pass, and the top-level
// program driver that alternates between template-text and script mode.
package parser

import (
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/errors"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
	"github.com/dannbuckley/go-aspparse/internal/parser/builtin"
)

// Diagnostic is a non-fatal report (e.g. an unresolved include) collected
// during parsing without aborting the document.
type Diagnostic struct {
	Pos     lexer.Position
	Message string
}

// DiagnosticSink receives non-fatal diagnostics.
type DiagnosticSink interface {
	Report(Diagnostic)
}

// Sink is the default in-memory DiagnosticSink.
type Sink struct {
	items []Diagnostic
}

// NewSink constructs an empty in-memory diagnostic sink.
func NewSink() *Sink { return &Sink{} }

// Report appends d to the sink.
func (s *Sink) Report(d Diagnostic) { s.items = append(s.items, d) }

// Items returns every diagnostic collected so far.
func (s *Sink) Items() []Diagnostic { return s.items }

// IncludeResolver resolves an include directive's path to replacement
// source text; resolution failures are reported to the diagnostic sink
// rather than failing the parse (the include is replaced by an empty
// statement stream).
type IncludeResolver interface {
	Resolve(kind ast.IncludeType, path string) (string, error)
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithFilename attaches a filename used in diagnostic formatting.
func WithFilename(name string) Option {
	return func(p *Parser) { p.filename = name }
}

// WithDiagnosticSink overrides the default in-memory sink.
func WithDiagnosticSink(sink DiagnosticSink) Option {
	return func(p *Parser) { p.sink = sink }
}

// WithIncludeResolver supplies an external include resolver.
func WithIncludeResolver(r IncludeResolver) Option {
	return func(p *Parser) { p.includes = r }
}

// Parser holds parsing state over one document: the token source, the
// diagnostic sink, and the production chain used to build ParserError's
// chain of enclosing productions.
type Parser struct {
	source   string
	filename string
	tok      *lexer.Tokenizer
	sink     DiagnosticSink
	includes IncludeResolver
	chain    []string
	subSafe  bool // true while parsing a sub-call argument list: a leading '(' is a call delimiter, not a value parenthesis

	// lastConsumedEnd is the byte offset just past the most recently
	// consumed token, used to compute a combined span's Stop when the
	// last-parsed child doesn't directly carry it (e.g. after consuming a
	// closing paren or a bare keyword).
	lastConsumedEnd int
}

// New opens a Parser over source. Callers must call Close when done.
func New(source string, opts ...Option) *Parser {
	p := &Parser{
		source: source,
		tok:    lexer.New(source),
		sink:   NewSink(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases the underlying tokenizer.
func (p *Parser) Close(err error) error {
	return p.tok.Close(err)
}

// Diagnostics returns the sink's collected items, if it is the default Sink.
func (p *Parser) Diagnostics() []Diagnostic {
	if s, ok := p.sink.(*Sink); ok {
		return s.Items()
	}
	return nil
}

func (p *Parser) pos() lexer.Position {
	if d := p.tok.Current().Debug; d != nil {
		return *d
	}
	return lexer.Position{}
}

func (p *Parser) enter(production string) func() {
	p.chain = append(p.chain, production)
	return func() { p.chain = p.chain[:len(p.chain)-1] }
}

func (p *Parser) wrapErr(err error) error {
	pe, ok := err.(*ParserError)
	if !ok || pe == nil {
		return err
	}
	pe.Source = p.source
	pe.File = p.filename
	for i := len(p.chain) - 1; i >= 0; i-- {
		pe.Chain = append(pe.Chain, errors.NewStackFrame(p.chain[i], p.filename, ptrPos(p.pos())))
	}
	return pe
}

func ptrPos(pos lexer.Position) *lexer.Position { return &pos }

func (p *Parser) current() lexer.Token { return p.tok.Current() }

func (p *Parser) text(casefold bool) string { return p.tok.GetTokenCode(casefold) }

// advance moves to the next token, wrapping any tokenizer failure as a
// ParserError (tokenizer errors propagate through the parser unchanged in
// spirit, but are represented uniformly to callers).
func (p *Parser) advance() error {
	p.lastConsumedEnd = p.tok.Current().Span.Stop
	_, err := p.tok.Advance()
	if err != nil {
		return p.wrapErr(newParserError(ErrInternal, p.pos(), "tokenizer: %v", err))
	}
	return nil
}

// is reports whether the current token has kind.
func (p *Parser) is(kind lexer.TokenKind) bool { return p.tok.TryTokenType(kind) }

// isAny reports whether the current token has any of kinds.
func (p *Parser) isAny(kinds ...lexer.TokenKind) bool { return p.tok.TryMultipleTokenType(kinds...) }

// isKeyword reports whether the current token spells word (case-insensitive).
func (p *Parser) isKeyword(word string) bool {
	return p.tok.Current().Kind.IsIdentifier() && p.text(true) == word
}

// expect consumes kind or fails with a ParserError.
func (p *Parser) expect(kind lexer.TokenKind) error {
	if !p.is(kind) {
		return p.wrapErr(newExpectedErr(p.pos(), kind.String(), p.current(), p.source))
	}
	return p.advance()
}

// expectKeyword consumes an identifier token spelling word or fails.
func (p *Parser) expectKeyword(word string) error {
	if !p.isKeyword(word) {
		return p.wrapErr(newExpectedErr(p.pos(), fmt.Sprintf("keyword %q", word), p.current(), p.source))
	}
	return p.advance()
}

// tryKeyword conditionally consumes an identifier token spelling word.
func (p *Parser) tryKeyword(word string) (bool, error) {
	if !p.isKeyword(word) {
		return false, nil
	}
	return true, p.advance()
}

// classifyLeftExpr checks le against the built-in Response/Request/Server
// intrinsic shape rules, if its root name matches one; a shape violation
// is fatal, matching the source grammar's validate_builtin_expr raising on
// construction. Left expressions rooted at anything else pass through
// unexamined.
func (p *Parser) classifyLeftExpr(le *ast.LeftExpr, isSubcall bool) error {
	if _, err := builtin.Classify(le, isSubcall); err != nil {
		return p.wrapErr(newParserError(ErrBuiltinShape, p.pos(), "%v", err))
	}
	return nil
}

// skipNewlines consumes zero or more NEWLINE tokens.
func (p *Parser) skipNewlines() error {
	for p.is(lexer.NEWLINE) {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}
