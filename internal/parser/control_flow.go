package parser

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// parseBlockStmts parses a statement list up to (but not consuming) one of
// the given terminator keywords, skipping blank lines between statements.
func (p *Parser) parseBlockStmts(terminators ...string) ([]ast.BlockStmt, error) {
	var stmts []ast.BlockStmt
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	for {
		if p.atAnyKeyword(terminators...) || p.is(lexer.EOF) || p.is(lexer.DELIM_END) {
			return stmts, nil
		}
		s, err := p.parseBlockStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) atAnyKeyword(words ...string) bool {
	for _, w := range words {
		if p.isKeyword(w) {
			return true
		}
	}
	return false
}

// parseIfStmt parses both forms: `If cond Then NEWLINE ... End If` (block)
// and `If cond Then inlineStmt [Else inlineStmt]` (inline, no NEWLINE
// immediately after Then).
func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	defer p.enter("if_stmt")()
	start := p.current().Span.Start
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}

	if !p.is(lexer.NEWLINE) {
		return p.parseInlineIf(start, cond)
	}

	stmts, err := p.parseBlockStmts("elseif", "else", "end")
	if err != nil {
		return nil, err
	}

	var elseStmts []ast.ElseStmt
	for p.isKeyword("elseif") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		econd, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("then"); err != nil {
			return nil, err
		}
		ebody, err := p.parseBlockStmts("elseif", "else", "end")
		if err != nil {
			return nil, err
		}
		elseStmts = append(elseStmts, ast.ElseStmt{Cond: econd, Stmts: ebody})
	}
	if ok, err := p.tryKeyword("else"); err != nil {
		return nil, err
	} else if ok {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		ebody, err := p.parseBlockStmts("end")
		if err != nil {
			return nil, err
		}
		elseStmts = append(elseStmts, ast.ElseStmt{Stmts: ebody})
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	n := &ast.IfStmt{Cond: cond, Stmts: stmts, ElseStmts: elseStmts, Inline: false}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

func (p *Parser) parseInlineIf(start int, cond ast.Expr) (*ast.IfStmt, error) {
	body, err := p.parseInlineStmt()
	if err != nil {
		return nil, err
	}
	stmts := []ast.BlockStmt{body}
	var elseStmts []ast.ElseStmt
	if ok, err := p.tryKeyword("else"); err != nil {
		return nil, err
	} else if ok {
		ebody, err := p.parseInlineStmt()
		if err != nil {
			return nil, err
		}
		elseStmts = append(elseStmts, ast.ElseStmt{Stmts: []ast.BlockStmt{ebody}})
	}
	n := &ast.IfStmt{Cond: cond, Stmts: stmts, ElseStmts: elseStmts, Inline: true}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

func (p *Parser) parseWithStmt() (*ast.WithStmt, error) {
	defer p.enter("with_stmt")()
	start := p.current().Span.Start
	if err := p.expectKeyword("with"); err != nil {
		return nil, err
	}
	target, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseBlockStmts("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("with"); err != nil {
		return nil, err
	}
	n := &ast.WithStmt{Target: target, Stmts: stmts}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseSelectStmt enforces that Case Else, if present, is the final arm.
func (p *Parser) parseSelectStmt() (*ast.SelectStmt, error) {
	defer p.enter("select_stmt")()
	start := p.current().Span.Start
	if err := p.expectKeyword("select"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("case"); err != nil {
		return nil, err
	}
	target, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	var cases []ast.CaseStmt
	for p.isKeyword("case") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		isElse := false
		var exprs []ast.Expr
		if ok, err := p.tryKeyword("else"); err != nil {
			return nil, err
		} else if ok {
			isElse = true
		} else {
			for {
				e, err := p.ParseExpr()
				if err != nil {
					return nil, err
				}
				exprs = append(exprs, e)
				if p.isSymbol(",") {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
		}
		body, err := p.parseBlockStmts("case", "end")
		if err != nil {
			return nil, err
		}
		if isElse && p.isKeyword("case") {
			return nil, p.wrapErr(newParserError(ErrCaseElseNotLast, p.pos(), "Case Else must be the last arm of Select Case"))
		}
		cases = append(cases, ast.CaseStmt{Exprs: exprs, IsElse: isElse, Stmts: body})
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("select"); err != nil {
		return nil, err
	}
	n := &ast.SelectStmt{Target: target, Cases: cases}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseDoLoopStmt parses `Do [While|Until expr] ... Loop [While|Until expr]`;
// the condition may appear at the head, the tail, or neither, but never
// both (enforced by grammar shape: only one of the two sites is consulted).
func (p *Parser) parseDoLoopStmt() (*ast.LoopStmt, error) {
	defer p.enter("do_loop_stmt")()
	start := p.current().Span.Start
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}

	kind := ast.LoopPlain
	var cond ast.Expr
	if ok, err := p.tryKeyword("while"); err != nil {
		return nil, err
	} else if ok {
		kind = ast.LoopWhileHead
		cond, err = p.ParseExpr()
		if err != nil {
			return nil, err
		}
	} else if ok, err := p.tryKeyword("until"); err != nil {
		return nil, err
	} else if ok {
		kind = ast.LoopUntilHead
		cond, err = p.ParseExpr()
		if err != nil {
			return nil, err
		}
	}

	stmts, err := p.parseBlockStmts("loop")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("loop"); err != nil {
		return nil, err
	}
	if kind == ast.LoopPlain {
		if ok, err := p.tryKeyword("while"); err != nil {
			return nil, err
		} else if ok {
			kind = ast.LoopWhileTail
			cond, err = p.ParseExpr()
			if err != nil {
				return nil, err
			}
		} else if ok, err := p.tryKeyword("until"); err != nil {
			return nil, err
		} else if ok {
			kind = ast.LoopUntilTail
			cond, err = p.ParseExpr()
			if err != nil {
				return nil, err
			}
		}
	}
	n := &ast.LoopStmt{Kind: kind, Cond: cond, Stmts: stmts}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseWhileWendStmt is the legacy `While expr ... WEnd` form, distinct
// from Do/Loop.
func (p *Parser) parseWhileWendStmt() (*ast.LoopStmt, error) {
	defer p.enter("while_wend_stmt")()
	start := p.current().Span.Start
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseBlockStmts("wend")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("wend"); err != nil {
		return nil, err
	}
	n := &ast.LoopStmt{Kind: ast.LoopWhileWend, Cond: cond, Stmts: stmts}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseForStmt asserts exactly one of the two ForStmt forms: numeric
// `For id = start To end [Step step]` xor `For Each id In coll`.
func (p *Parser) parseForStmt() (*ast.ForStmt, error) {
	defer p.enter("for_stmt")()
	start := p.current().Span.Start
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}

	n := &ast.ForStmt{}
	if ok, err := p.tryKeyword("each"); err != nil {
		return nil, err
	} else if ok {
		tok := p.current()
		if !tok.Kind.IsIdentifier() {
			return nil, p.wrapErr(newExpectedErr(p.pos(), "identifier", tok, p.source))
		}
		n.TargetID = p.text(true)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("in"); err != nil {
			return nil, err
		}
		coll, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		n.EachIn = coll
	} else {
		tok := p.current()
		if !tok.Kind.IsIdentifier() {
			return nil, p.wrapErr(newExpectedErr(p.pos(), "identifier", tok, p.source))
		}
		n.TargetID = p.text(true)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		startExpr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		n.StartExpr = startExpr
		if err := p.expectKeyword("to"); err != nil {
			return nil, err
		}
		toExpr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		n.ToExpr = toExpr
		if ok, err := p.tryKeyword("step"); err != nil {
			return nil, err
		} else if ok {
			stepExpr, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			n.StepExpr = stepExpr
		}
	}

	stmts, err := p.parseBlockStmts("next")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("next"); err != nil {
		return nil, err
	}
	n.Stmts = stmts
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}
