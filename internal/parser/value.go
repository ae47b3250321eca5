package parser

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// parseValue handles the grammar's leaves: parenthesized expressions
// (forbidden in sub-safe mode, since a leading `(` there is a call/index
// delimiter instead), numeric/string/date literals, the identifier-like
// constants True/False/Nothing/Null/Empty, and left expressions.
func (p *Parser) parseValue() (ast.Expr, error) {
	defer p.enter("value")()

	if p.isSymbol("(") && !p.subSafe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	tok := p.current()
	switch tok.Kind {
	case lexer.LITERAL_INT, lexer.LITERAL_HEX, lexer.LITERAL_OCT, lexer.LITERAL_FLOAT, lexer.LITERAL_STRING, lexer.LITERAL_DATE:
		span := tok.Span
		c := &ast.ConstExpr{Token: tok, Kind: tok.Kind}
		c.SetSpan(span)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return c, nil
	}

	if tok.Kind.IsIdentifier() {
		word := p.text(true)
		switch word {
		case "true":
			span := tok.Span
			n := &ast.BoolLiteral{Value: true}
			n.SetSpan(span)
			return n, p.advance()
		case "false":
			span := tok.Span
			n := &ast.BoolLiteral{Value: false}
			n.SetSpan(span)
			return n, p.advance()
		case "nothing":
			span := tok.Span
			n := &ast.Nothing{}
			n.SetSpan(span)
			return n, p.advance()
		case "null":
			span := tok.Span
			n := &ast.NullLiteral{}
			n.SetSpan(span)
			return n, p.advance()
		case "empty":
			span := tok.Span
			n := &ast.EmptyLiteral{}
			n.SetSpan(span)
			return n, p.advance()
		}
		le, err := p.parseLeftExpr()
		if err != nil {
			return nil, err
		}
		if err := p.classifyLeftExpr(le, false); err != nil {
			return nil, err
		}
		return le, nil
	}

	return nil, p.wrapErr(newExpectedErr(p.pos(), "expression", tok, p.source))
}

func (p *Parser) expectSymbol(sym string) error {
	if !p.isSymbol(sym) {
		return p.wrapErr(newExpectedErr(p.pos(), "symbol "+sym, p.current(), p.source))
	}
	return p.advance()
}
