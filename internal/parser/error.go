package parser

import (
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/errors"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// Error code catalog for ParserError.Code, mirroring the teacher's ErrXxx
// string-constant convention.
const (
	ErrExpectedToken      = "expected_token"
	ErrIllFormedDecl      = "ill_formed_declaration"
	ErrIllegalPublicDef   = "illegal_public_default"
	ErrIllegalArgList     = "illegal_argument_list"
	ErrForBothForms       = "for_stmt_both_forms"
	ErrCaseElseNotLast    = "case_else_not_last"
	ErrUnclosedScriptMode = "unclosed_script_mode"
	ErrBuiltinShape       = "builtin_shape_violation"
	ErrInternal           = "internal_assertion"
)

// ParserError is fatal for the current document: an expected-vs-actual
// token mismatch (or other grammar violation) at a source position, with
// the chain of enclosing productions active when it was raised. Source
// and File are populated by Parser.wrapErr from the document and
// filename in scope when the error is finalized, and are what Report
// uses to render source context.
type ParserError struct {
	Code     string
	Message  string
	Pos      lexer.Position
	Expected string
	Actual   string
	Chain    errors.StackTrace
	Cause    error
	Source   string
	File     string
}

func (e *ParserError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s at %s: expected %s, got %s", e.Message, e.Pos, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func (e *ParserError) Unwrap() error { return e.Cause }

// Report renders the error as a structured report: a source-context
// header with a caret at the offending column, followed by the chain of
// enclosing productions active when the error was raised, outermost
// first. If color is true, ANSI color codes are used for terminal
// output.
func (e *ParserError) Report(color bool) string {
	msg := e.Message
	if e.Expected != "" {
		msg = fmt.Sprintf("%s: expected %s, got %s", msg, e.Expected, e.Actual)
	}
	src := errors.NewSourceError(e.Pos, msg, e.Source, e.File)
	report := src.Format(color)
	if trace := e.Chain.String(); trace != "" {
		report += "\n\nwhile parsing:\n" + trace
	}
	return report
}

// newExpectedErr reports an expected-vs-actual token mismatch.
func newExpectedErr(pos lexer.Position, expected string, actual lexer.Token, source string) *ParserError {
	return &ParserError{
		Code:     ErrExpectedToken,
		Message:  "unexpected token",
		Pos:      pos,
		Expected: expected,
		Actual:   fmt.Sprintf("%s %q", actual.Kind, actual.Text(source)),
	}
}

func newParserError(code string, pos lexer.Position, format string, args ...any) *ParserError {
	return &ParserError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// withProduction appends a production frame to err's chain and returns err,
// used by recursive-descent methods via `defer` to build the production
// chain bottom-up as the error propagates.
func withProduction(err error, production string, pos lexer.Position) error {
	pe, ok := err.(*ParserError)
	if !ok {
		return err
	}
	frame := errors.NewStackFrame(production, "", &pos)
	pe.Chain = append(pe.Chain, frame)
	return pe
}
