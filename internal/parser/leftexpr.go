package parser

import (
	"strings"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// identName returns a dotted identifier token's bare casefolded name: the
// tokenizer folds the delimiter dot itself into an IDDOT/DOTID/DOTIDDOT
// token's own span (e.g. "foo." or ".bar"), so the leading/trailing dot
// must be trimmed here before the text is used as a symbol name.
func identName(tok lexer.Token, source string) string {
	text := strings.ToLower(tok.Text(source))
	switch tok.Kind {
	case lexer.IDENTIFIER_IDDOT:
		return strings.TrimSuffix(text, ".")
	case lexer.IDENTIFIER_DOTID:
		return strings.TrimPrefix(text, ".")
	case lexer.IDENTIFIER_DOTIDDOT:
		return strings.TrimSuffix(strings.TrimPrefix(text, "."), ".")
	default:
		return text
	}
}

// parseLeftExpr builds a LeftExpr from a qualified identifier followed by
// zero or more call/index segments and dotted member accesses.
//
// The tokenizer never emits a standalone "." SYMBOL token: a dot is always
// fused into whichever identifier token it touches (scanIdentifierOrRem
// peeks ahead and folds a following "." into its own span when another
// identifier comes right after it, producing
// an IDDOT/DOTIDDOT kind; scanDotLeading does the same from the other
// side when a bare "." opens a new token scan, producing DOTID/DOTIDDOT).
// So "foo.bar.baz" arrives as three plain identifier-kind tokens chained
// by trailing-dot kinds, and "foo(1).bar" arrives as a call followed by a
// single DOTID-kind token for ".bar" — the loop below just has to notice
// when the token it is looking at already carries that fused dot and
// consume the next identifier-kind token as the member name.
func (p *Parser) parseLeftExpr() (*ast.LeftExpr, error) {
	defer p.enter("left_expr")()

	startIdx := p.current().Span.Start
	parts, symName, trailingDot, err := p.parseQualifiedID()
	if err != nil {
		return nil, err
	}

	var segs []ast.Segment
	pendingDot := trailingDot

	for {
		if pendingDot {
			name, kind, err := p.parseSubnameAfterDot()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.Segment{Subname: name})
			pendingDot = kind == lexer.IDENTIFIER_IDDOT || kind == lexer.IDENTIFIER_DOTIDDOT
			continue
		}
		if p.isSymbol("(") {
			args, err := p.parseIndexOrParams()
			if err != nil {
				return nil, err
			}
			leadDot := p.current().Kind == lexer.IDENTIFIER_DOTID || p.current().Kind == lexer.IDENTIFIER_DOTIDDOT
			segs = append(segs, ast.Segment{IsCall: true, CallArgs: args, DotAfter: leadDot})
			pendingDot = leadDot
			continue
		}
		break
	}

	stop := startIdx
	if p.lastConsumedEnd > stop {
		stop = p.lastConsumedEnd
	} else if len(parts) > 0 {
		stop = parts[len(parts)-1].Token.Span.Stop
	}
	span := lexer.Span{Start: startIdx, Stop: stop}
	return ast.NewLeftExpr(span, symName, parts, segs), nil
}

// parseQualifiedID consumes a chain of identifier/dotted-identifier
// tokens, returning the parts, the casefolded leading name, and whether
// the chain's final token carried a trailing-dot subkind (IDDOT /
// DOTIDDOT), which seeds the first implicit member-access segment.
func (p *Parser) parseQualifiedID() ([]ast.QualifiedIDPart, string, bool, error) {
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return nil, "", false, p.wrapErr(newExpectedErr(p.pos(), "identifier", tok, p.source))
	}
	name := identName(tok, p.source)
	part := ast.QualifiedIDPart{Token: tok, Name: name}
	if err := p.advance(); err != nil {
		return nil, "", false, err
	}
	p.lastConsumedEnd = tok.Span.Stop
	trailingDot := tok.Kind == lexer.IDENTIFIER_IDDOT || tok.Kind == lexer.IDENTIFIER_DOTIDDOT
	return []ast.QualifiedIDPart{part}, name, trailingDot, nil
}

// parseSubnameAfterDot consumes a single identifier token used as a
// dotted member name. The dot itself is already fused into this token
// (or into the one before it); the returned kind tells the caller
// whether this token's own trailing dot opens another member access.
func (p *Parser) parseSubnameAfterDot() (string, lexer.TokenKind, error) {
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return "", tok.Kind, p.wrapErr(newExpectedErr(p.pos(), "identifier", tok, p.source))
	}
	name := identName(tok, p.source)
	if err := p.advance(); err != nil {
		return "", tok.Kind, err
	}
	p.lastConsumedEnd = tok.Span.Stop
	return name, tok.Kind, nil
}

// parseIndexOrParams parses `( expr_list )`, where omitted positional
// arguments (`f(1,,3)`) are recorded as explicit nil entries to preserve
// position. The sub-safe restriction on a bare leading `(` applies only
// to the statement parser's first value, never to these unambiguous call
// parentheses, so it is suspended for the argument expressions.
func (p *Parser) parseIndexOrParams() ([]ast.Expr, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	prevSafe := p.subSafe
	p.subSafe = false
	defer func() { p.subSafe = prevSafe }()

	var args []ast.Expr
	if !p.isSymbol(")") {
		for {
			if p.isSymbol(",") {
				args = append(args, nil)
			} else if p.isSymbol(")") {
				args = append(args, nil)
				break
			} else {
				e, err := p.ParseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, e)
			}
			if p.isSymbol(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	endTok := p.current()
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	p.lastConsumedEnd = endTok.Span.Stop
	return args, nil
}
