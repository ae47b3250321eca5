package parser

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

type exprFn func() (ast.Expr, error)
type binCtor func(l, r ast.Expr) ast.Expr

// ParseExpr is the entry point of the precedence ladder: Imp (lowest) down
// to Value (highest), with constant folding and algebraic normalization
// integrated at every binary level. An expression that is a single
// literal is returned as its EvalExpr value.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	defer p.enter("expression")()
	e, err := p.parseImp()
	if c, ok := e.(*ast.ConstExpr); ok && err == nil {
		if v, evErr := evaluate(c, p.source); evErr == nil {
			return v, nil
		}
	}
	return e, err
}

func (p *Parser) parseImp() (ast.Expr, error) {
	return p.parseLeftAssocKeyword(p.parseEqv, "imp",
		func(l, r ast.Expr) ast.Expr { return &ast.ImpExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
}

func (p *Parser) parseEqv() (ast.Expr, error) {
	return p.parseLeftAssocKeyword(p.parseXor, "eqv",
		func(l, r ast.Expr) ast.Expr { return &ast.EqvExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
}

func (p *Parser) parseXor() (ast.Expr, error) {
	return p.parseLeftAssocKeyword(p.parseOr, "xor",
		func(l, r ast.Expr) ast.Expr { return &ast.XorExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseLeftAssocKeyword(p.parseAnd, "or",
		func(l, r ast.Expr) ast.Expr { return &ast.OrExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseLeftAssocKeyword(p.parseNot, "and",
		func(l, r ast.Expr) ast.Expr { return &ast.AndExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
}

// parseNot collapses a run of consecutive `Not` operators by parity: an
// even count yields the bare subexpression, an odd count yields a single
// NotExpr. Folding applies only if the inner subexpression is constant.
func (p *Parser) parseNot() (ast.Expr, error) {
	count := 0
	for {
		ok, err := p.tryKeyword("not")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		count++
	}
	inner, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	if count%2 == 0 {
		return inner, nil
	}
	span := inner.Span()
	if ast.IsConstant(inner) {
		folded := ast.NewFoldableExpr(span, &ast.NotExpr{Term: unwrapOnce(inner)})
		val, err := evaluate(folded, p.source)
		if err != nil {
			if _, ok := err.(*EvaluatorError); ok {
				return folded, nil
			}
			return nil, err
		}
		return val, nil
	}
	return &ast.NotExpr{Term: inner}, nil
}

// compareSymbolOrder maps the eight symbolic comparison spellings to their
// tag (Is / Is Not are keywords and are matched separately).
// Multi-character spellings are tried before their single-character
// prefixes.
var compareSymbolOrder = []struct {
	text string
	tag  lexer.CompareTag
}{
	{">=", lexer.COMPARE_GTEQ}, {"=>", lexer.COMPARE_EQGT},
	{"<=", lexer.COMPARE_LTEQ}, {"=<", lexer.COMPARE_EQLT},
	{"<>", lexer.COMPARE_LTGT},
	{">", lexer.COMPARE_GT}, {"<", lexer.COMPARE_LT}, {"=", lexer.COMPARE_EQ},
}

func (p *Parser) parseCompare() (ast.Expr, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		tag, matched, err := p.tryCompareOp()
		if err != nil {
			return nil, err
		}
		if !matched {
			break
		}
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		span := ast.NewSpan(left.Span().Start, right.Span().Stop)
		node := &ast.CompareExpr{BinaryExpr: ast.BinaryExpr{Left: left, Right: right}, Cmp: tag}
		node.SetSpan(span)
		if tag == lexer.COMPARE_IS || tag == lexer.COMPARE_ISNOT {
			left = node // never folded
			continue
		}
		folded, err := p.tryFold(left, right, span, func(l, r ast.Expr) ast.Expr {
			n := &ast.CompareExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}, Cmp: tag}
			n.SetSpan(span)
			return n
		})
		if err != nil {
			return nil, err
		}
		left = folded
	}
	return left, nil
}

func (p *Parser) tryCompareOp() (lexer.CompareTag, bool, error) {
	if ok, err := p.tryKeyword("is"); err != nil {
		return 0, false, err
	} else if ok {
		if ok2, err := p.tryKeyword("not"); err != nil {
			return 0, false, err
		} else if ok2 {
			return lexer.COMPARE_ISNOT, true, nil
		}
		return lexer.COMPARE_IS, true, nil
	}
	if !p.is(lexer.SYMBOL) {
		return 0, false, nil
	}
	text := p.text(false)
	for _, c := range compareSymbolOrder {
		if text == c.text {
			if err := p.advance(); err != nil {
				return 0, false, err
			}
			return c.tag, true, nil
		}
	}
	return 0, false, nil
}

func (p *Parser) parseConcat() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.isSymbol("&") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		// Adjacent string constants fold immediately: "a" & "b" -> "ab".
		span := ast.NewSpan(left.Span().Start, right.Span().Stop)
		folded, err := p.tryFold(left, right, span,
			func(l, r ast.Expr) ast.Expr { return &ast.ConcatExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
		if err != nil {
			return nil, err
		}
		left = folded
	}
	return left, nil
}

// parseAdd parses a `+`/`-` chain and hands it to buildAddChain for
// constant fusion and algebraic normalization (subtraction -> AddNegated).
func (p *Parser) parseAdd() (ast.Expr, error) {
	first, err := p.parseMod()
	if err != nil {
		return nil, err
	}
	operands := []chainOperand{{Expr: first}}
	for p.isSymbol("+") || p.isSymbol("-") {
		neg := p.isSymbol("-")
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseMod()
		if err != nil {
			return nil, err
		}
		operands = append(operands, chainOperand{Expr: next, Negated: neg})
	}
	if len(operands) == 1 {
		return first, nil
	}
	return p.buildAddChain(operands)
}

func (p *Parser) parseMod() (ast.Expr, error) {
	return p.parseLeftAssocKeyword(p.parseIntDiv, "mod",
		func(l, r ast.Expr) ast.Expr { return &ast.ModExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
}

func (p *Parser) parseIntDiv() (ast.Expr, error) {
	left, err := p.parseMult()
	if err != nil {
		return nil, err
	}
	for p.isSymbol("\\") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMult()
		if err != nil {
			return nil, err
		}
		span := ast.NewSpan(left.Span().Start, right.Span().Stop)
		folded, err := p.tryFold(left, right, span,
			func(l, r ast.Expr) ast.Expr { return &ast.IntDivExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
		if err != nil {
			return nil, err
		}
		left = folded
	}
	return left, nil
}

// parseMult parses a `*`/`/` chain and hands it to buildMultChain for
// constant fusion and algebraic normalization (division -> MultReciprocal).
func (p *Parser) parseMult() (ast.Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []chainOperand{{Expr: first}}
	for p.isSymbol("*") || p.isSymbol("/") {
		recip := p.isSymbol("/")
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, chainOperand{Expr: next, Negated: recip})
	}
	if len(operands) == 1 {
		return first, nil
	}
	return p.buildMultChain(operands)
}

// parseUnary collects a run of leading `+`/`-` into a sign stack and
// applies it right-to-left, recording the collapsed result as a variant
// tag rather than a literal operator token.
func (p *Parser) parseUnary() (ast.Expr, error) {
	var signs []ast.UnarySign
	for p.isSymbol("+") || p.isSymbol("-") {
		if p.isSymbol("-") {
			signs = append(signs, ast.SignNeg)
		} else {
			signs = append(signs, ast.SignPos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	term, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	for i := len(signs) - 1; i >= 0; i-- {
		span := term.Span()
		if ast.IsConstant(term) {
			folded := ast.NewFoldableExpr(span, &ast.UnaryExpr{Sign: signs[i], Term: unwrapOnce(term)})
			val, err := evaluate(folded, p.source)
			if err != nil {
				if _, ok := err.(*EvaluatorError); ok {
					term = folded
					continue
				}
				return nil, err
			}
			term = val
		} else {
			term = &ast.UnaryExpr{Sign: signs[i], Term: term}
		}
	}
	return term, nil
}

// parseExp is right-associative: operands accumulate on a LIFO stack and
// reduce from the top.
func (p *Parser) parseExp() (ast.Expr, error) {
	var stack []ast.Expr
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	stack = append(stack, first)
	for p.isSymbol("^") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		stack = append(stack, next)
	}
	acc := stack[len(stack)-1]
	for i := len(stack) - 2; i >= 0; i-- {
		span := ast.NewSpan(stack[i].Span().Start, acc.Span().Stop)
		folded, err := p.tryFold(stack[i], acc, span,
			func(l, r ast.Expr) ast.Expr { return &ast.ExpExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}} })
		if err != nil {
			return nil, err
		}
		acc = folded
	}
	return acc, nil
}

// ---- shared helpers ----

func (p *Parser) isSymbol(sym string) bool {
	return p.is(lexer.SYMBOL) && p.text(false) == sym
}

func (p *Parser) parseLeftAssocKeyword(next exprFn, keyword string, ctor binCtor) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.tryKeyword(keyword)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		span := ast.NewSpan(left.Span().Start, right.Span().Stop)
		folded, err := p.tryFold(left, right, span, ctor)
		if err != nil {
			return nil, err
		}
		left = folded
	}
}
