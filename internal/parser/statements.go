package parser

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// parseGlobalStmt parses one top-level declaration or statement: the
// class/sub/function/const/dim/option-explicit family plus everything a
// MethodStmt also accepts (global code runs as implicit top-level script).
func (p *Parser) parseGlobalStmt() (ast.GlobalStmt, error) {
	defer p.enter("global_stmt")()

	if p.isKeyword("option") {
		start := p.current().Span.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("explicit"); err != nil {
			return nil, err
		}
		n := &ast.OptionExplicit{}
		n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
		return n, nil
	}

	if p.isKeyword("class") {
		return p.parseClassDecl()
	}

	access, hasAccess, err := p.tryAccessModifier()
	if err != nil {
		return nil, err
	}
	if hasAccess || p.isKeyword("sub") || p.isKeyword("function") || p.isKeyword("property") || p.isKeyword("const") {
		return p.parseMemberLikeGlobal(access)
	}

	return p.parseMethodStmtAsGlobal()
}

// tryAccessModifier consumes an optional Public [Default] / Private prefix.
func (p *Parser) tryAccessModifier() (lexer.AccessModifier, bool, error) {
	if ok, err := p.tryKeyword("public"); err != nil {
		return lexer.AccessNone, false, err
	} else if ok {
		if ok2, err := p.tryKeyword("default"); err != nil {
			return lexer.AccessNone, false, err
		} else if ok2 {
			return lexer.AccessPublicDefault, true, nil
		}
		return lexer.AccessPublic, true, nil
	}
	if ok, err := p.tryKeyword("private"); err != nil {
		return lexer.AccessNone, false, err
	} else if ok {
		return lexer.AccessPrivate, true, nil
	}
	return lexer.AccessNone, false, nil
}

// parseMemberLikeGlobal parses a Sub/Function/Property/Const declaration
// that appears at top level outside a Class body (VBScript permits these
// as ordinary global declarations).
func (p *Parser) parseMemberLikeGlobal(access lexer.AccessModifier) (ast.GlobalStmt, error) {
	switch {
	case p.isKeyword("sub"):
		return p.parseSubDecl(access)
	case p.isKeyword("function"):
		return p.parseFunctionDecl(access)
	case p.isKeyword("property"):
		return p.parsePropertyDecl(access)
	case p.isKeyword("const"):
		return p.parseConstDecl(access)
	}
	return nil, p.wrapErr(newParserError(ErrIllFormedDecl, p.pos(), "expected Sub, Function, Property, or Const"))
}

func (p *Parser) parseMethodStmtAsGlobal() (ast.GlobalStmt, error) {
	stmt, err := p.parseMethodStmt()
	if err != nil {
		return nil, err
	}
	gs, ok := stmt.(ast.GlobalStmt)
	if !ok {
		return nil, p.wrapErr(newParserError(ErrIllFormedDecl, p.pos(), "statement not valid at top level"))
	}
	return gs, nil
}

// parseMethodStmt parses the body-level grammar shared by Sub/Function/
// Property bodies and (via parseGlobalStmt) top-level code: Dim/Redim and
// every other statement parseBlockStmt accepts.
func (p *Parser) parseMethodStmt() (ast.MethodStmt, error) {
	defer p.enter("method_stmt")()

	if p.isKeyword("dim") {
		return p.parseVarDecl()
	}
	if p.isKeyword("redim") {
		return p.parseRedimStmt()
	}
	return p.parseBlockStmt()
}

// parseBlockStmt parses Dim/Redim plus the control-flow and
// inline-statement grammar common to every statement-list body (If/With/
// Select/Do/For bodies, Sub bodies, and top level).
func (p *Parser) parseBlockStmt() (ast.BlockStmt, error) {
	defer p.enter("block_stmt")()

	switch {
	case p.isKeyword("dim"):
		return p.parseVarDecl()
	case p.isKeyword("redim"):
		return p.parseRedimStmt()
	case p.isKeyword("if"):
		return p.parseIfStmt()
	case p.isKeyword("with"):
		return p.parseWithStmt()
	case p.isKeyword("select"):
		return p.parseSelectStmt()
	case p.isKeyword("do"):
		return p.parseDoLoopStmt()
	case p.isKeyword("while"):
		return p.parseWhileWendStmt()
	case p.isKeyword("for"):
		return p.parseForStmt()
	}
	return p.parseInlineStmt()
}

// parseInlineStmt parses the single-line statement forms: assignment,
// Call, bare sub-call, On Error, Exit, Erase.
func (p *Parser) parseInlineStmt() (ast.InlineStmt, error) {
	defer p.enter("inline_stmt")()

	if ok, err := p.tryKeyword("call"); err != nil {
		return nil, err
	} else if ok {
		target, err := p.parseLeftExpr()
		if err != nil {
			return nil, err
		}
		if err := p.classifyLeftExpr(target, true); err != nil {
			return nil, err
		}
		n := &ast.CallStmt{Target: target}
		n.SetSpan(target.Span())
		return n, nil
	}

	if p.isKeyword("on") {
		return p.parseErrorStmt()
	}
	if p.isKeyword("exit") {
		return p.parseExitStmt()
	}
	if p.isKeyword("erase") {
		return p.parseEraseStmt()
	}

	return p.parseAssignOrSubCall()
}

func (p *Parser) parseErrorStmt() (*ast.ErrorStmt, error) {
	start := p.current().Span.Start
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("error"); err != nil {
		return nil, err
	}
	resumeNext := false
	if ok, err := p.tryKeyword("resume"); err != nil {
		return nil, err
	} else if ok {
		if err := p.expectKeyword("next"); err != nil {
			return nil, err
		}
		resumeNext = true
	} else if err := p.expectKeyword("goto"); err != nil {
		return nil, err
	} else {
		end := p.current()
		if !(end.Kind == lexer.LITERAL_INT && p.text(false) == "0") {
			return nil, p.wrapErr(newExpectedErr(p.pos(), "0", end, p.source))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	n := &ast.ErrorStmt{ResumeNext: resumeNext}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

var exitKeywords = map[string]ast.ExitKind{
	"do": ast.ExitDo, "for": ast.ExitFor, "function": ast.ExitFunction,
	"property": ast.ExitProperty, "sub": ast.ExitSub,
}

func (p *Parser) parseExitStmt() (*ast.ExitStmt, error) {
	start := p.current().Span.Start
	if err := p.expectKeyword("exit"); err != nil {
		return nil, err
	}
	word := p.text(true)
	kind, ok := exitKeywords[word]
	if !ok {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "Do, For, Function, Property, or Sub", p.current(), p.source))
	}
	end := p.current().Span.Stop
	if err := p.advance(); err != nil {
		return nil, err
	}
	n := &ast.ExitStmt{Kind: kind}
	n.SetSpan(lexer.Span{Start: start, Stop: end})
	return n, nil
}

func (p *Parser) parseEraseStmt() (*ast.EraseStmt, error) {
	start := p.current().Span.Start
	if err := p.expectKeyword("erase"); err != nil {
		return nil, err
	}
	target, err := p.parseLeftExpr()
	if err != nil {
		return nil, err
	}
	n := &ast.EraseStmt{Target: target}
	n.SetSpan(lexer.Span{Start: start, Stop: target.Span().Stop})
	return n, nil
}

// parseAssignOrSubCall disambiguates `lhs = rhs` / `Set lhs = rhs` from a
// bare sub-call by parsing the left expression in sub-safe mode (so a
// leading `(` after the name is never mistaken for a value parenthesis)
// and then checking for a following `=`.
func (p *Parser) parseAssignOrSubCall() (ast.InlineStmt, error) {
	start := p.current().Span.Start

	setKw := false
	newClass := ""
	if ok, err := p.tryKeyword("set"); err != nil {
		return nil, err
	} else if ok {
		setKw = true
	}

	prevSafe := p.subSafe
	p.subSafe = true
	target, err := p.parseLeftExpr()
	p.subSafe = prevSafe
	if err != nil {
		return nil, err
	}

	if p.isSymbol("=") {
		if err := p.classifyLeftExpr(target, false); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if setKw {
			if ok, err := p.tryKeyword("new"); err != nil {
				return nil, err
			} else if ok {
				tok := p.current()
				if !tok.Kind.IsIdentifier() {
					return nil, p.wrapErr(newExpectedErr(p.pos(), "class name", tok, p.source))
				}
				newClass = p.text(true)
				if err := p.advance(); err != nil {
					return nil, err
				}
				n := &ast.AssignStmt{Set: true, NewClass: newClass, LHS: target}
				n.SetSpan(lexer.Span{Start: start, Stop: tok.Span.Stop})
				return n, nil
			}
		}
		rhs, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		n := &ast.AssignStmt{Set: setKw, LHS: target, RHS: rhs}
		n.SetSpan(lexer.Span{Start: start, Stop: rhs.Span().Stop})
		return n, nil
	}

	if err := p.classifyLeftExpr(target, true); err != nil {
		return nil, err
	}

	// Bare sub-call: zero or more comma-separated arguments, no parens.
	var args []ast.Expr
	if !p.atStmtEnd() {
		for {
			e, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if p.isSymbol(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	n := &ast.SubCallStmt{Target: target, Args: args}
	stop := target.Span().Stop
	if len(args) > 0 {
		stop = args[len(args)-1].Span().Stop
	}
	n.SetSpan(lexer.Span{Start: start, Stop: stop})
	return n, nil
}

// atStmtEnd reports whether the current token ends a statement (newline,
// EOF, or a script-mode delimiter end), used to detect a zero-argument
// bare sub-call.
func (p *Parser) atStmtEnd() bool {
	return p.is(lexer.NEWLINE) || p.is(lexer.EOF) || p.is(lexer.DELIM_END) || p.isKeyword("else")
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.current().Span.Start
	if err := p.expectKeyword("dim"); err != nil {
		return nil, err
	}
	var names []ast.VarName
	for {
		vn, err := p.parseVarName()
		if err != nil {
			return nil, err
		}
		names = append(names, vn)
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	n := &ast.VarDecl{Names: names}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

func (p *Parser) parseVarName() (ast.VarName, error) {
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return ast.VarName{}, p.wrapErr(newExpectedErr(p.pos(), "identifier", tok, p.source))
	}
	name := p.text(true)
	if err := p.advance(); err != nil {
		return ast.VarName{}, err
	}
	p.lastConsumedEnd = tok.Span.Stop
	var dims []int
	if p.isSymbol("(") {
		if err := p.advance(); err != nil {
			return ast.VarName{}, err
		}
		if !p.isSymbol(")") {
			for {
				n, err := p.parseArrayBound()
				if err != nil {
					return ast.VarName{}, err
				}
				dims = append(dims, n)
				if p.isSymbol(",") {
					if err := p.advance(); err != nil {
						return ast.VarName{}, err
					}
					continue
				}
				break
			}
		}
		endTok := p.current()
		if err := p.expectSymbol(")"); err != nil {
			return ast.VarName{}, err
		}
		p.lastConsumedEnd = endTok.Span.Stop
		if dims == nil {
			dims = []int{-1}
		}
	}
	return ast.VarName{Name: name, Dims: dims}, nil
}

func (p *Parser) parseArrayBound() (int, error) {
	tok := p.current()
	if tok.Kind != lexer.LITERAL_INT {
		return 0, p.wrapErr(newExpectedErr(p.pos(), "integer literal", tok, p.source))
	}
	v, err := evaluate(&ast.ConstExpr{Token: tok, Kind: tok.Kind}, p.source)
	if err != nil {
		return 0, p.wrapErr(newParserError(ErrIllFormedDecl, p.pos(), "bad array bound"))
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	p.lastConsumedEnd = tok.Span.Stop
	return int(v.Int), nil
}

func (p *Parser) parseRedimStmt() (*ast.RedimStmt, error) {
	start := p.current().Span.Start
	if err := p.expectKeyword("redim"); err != nil {
		return nil, err
	}
	preserve := false
	if ok, err := p.tryKeyword("preserve"); err != nil {
		return nil, err
	} else if ok {
		preserve = true
	}
	var decls []ast.RedimDecl
	for {
		// The target is a bare name: parseLeftExpr would take the
		// dimension list for a call segment.
		targetStart := p.current().Span.Start
		parts, symName, _, err := p.parseQualifiedID()
		if err != nil {
			return nil, err
		}
		target := ast.NewLeftExpr(lexer.Span{Start: targetStart, Stop: p.lastConsumedEnd}, symName, parts, nil)
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		var dims []ast.Expr
		for {
			e, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			dims = append(dims, e)
			if p.isSymbol(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		decls = append(decls, ast.RedimDecl{Target: target, Preserve: preserve, Dims: dims})
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	n := &ast.RedimStmt{Decls: decls}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}
