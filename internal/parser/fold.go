package parser

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// tryFold implements the constant-folding contract used after parsing
// every binary node: if both operands are constant the combined node is
// wrapped in FoldableExpr and immediately reduced to an EvalExpr; if
// exactly one operand is itself a FoldableExpr it is unwrapped first so
// only the combined result carries the marker; otherwise ctor's plain
// result is returned unchanged.
func (p *Parser) tryFold(left, right ast.Expr, span lexer.Span, ctor func(l, r ast.Expr) ast.Expr) (ast.Expr, error) {
	if ast.IsConstant(left) && ast.IsConstant(right) {
		folded := wrapFoldable(span, ctor(unwrapOnce(left), unwrapOnce(right)))
		val, err := evaluate(folded, p.source)
		if err != nil {
			if _, ok := err.(*EvaluatorError); ok {
				// Fold refused (e.g. Is/Is Not): keep the node unfolded
				// and continue, per the evaluator's recoverable-error
				// contract.
				return folded, nil
			}
			return nil, err
		}
		return val, nil
	}
	l, r := left, right
	if fe, ok := l.(*ast.FoldableExpr); ok {
		l = fe.Inner
	}
	if fe, ok := r.(*ast.FoldableExpr); ok {
		r = fe.Inner
	}
	return ctor(l, r), nil
}

func unwrapOnce(e ast.Expr) ast.Expr {
	if fe, ok := e.(*ast.FoldableExpr); ok {
		return fe.Inner
	}
	return e
}

func wrapFoldable(span lexer.Span, inner ast.Expr) *ast.FoldableExpr {
	return ast.NewFoldableExpr(span, inner)
}

// chainOperand is one operand of an Add/Mult chain, paired with whether
// the parser saw a `-`/`/` operator in front of it (Negated triggers the
// AddNegated/MultReciprocal algebraic rewrite).
type chainOperand struct {
	Expr    ast.Expr
	Negated bool
}

// buildAddChain folds/normalizes a chain of `+`/`-` operands: constants
// are fused into one EvalExpr placed as the left child, the non-constant
// remainder is combined into a right-leaning AddExpr tree as the right
// child; when only one side exists the root AddExpr is elided entirely.
func (p *Parser) buildAddChain(operands []chainOperand) (ast.Expr, error) {
	return p.buildChain(operands,
		func(e ast.Expr) ast.Expr { return ast.WrapAddNegated(e) },
		func(span lexer.Span, l, r ast.Expr) ast.Expr {
			n := &ast.AddExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}}
			n.SetSpan(span)
			return n
		},
	)
}

// buildMultChain is buildAddChain's analogue for `*`/`/` chains, using
// MultReciprocal and MultExpr.
func (p *Parser) buildMultChain(operands []chainOperand) (ast.Expr, error) {
	return p.buildChain(operands,
		func(e ast.Expr) ast.Expr { return ast.WrapMultReciprocal(e) },
		func(span lexer.Span, l, r ast.Expr) ast.Expr {
			n := &ast.MultExpr{BinaryExpr: ast.BinaryExpr{Left: l, Right: r}}
			n.SetSpan(span)
			return n
		},
	)
}

func (p *Parser) buildChain(
	operands []chainOperand,
	negate func(ast.Expr) ast.Expr,
	mkNode func(span lexer.Span, l, r ast.Expr) ast.Expr,
) (ast.Expr, error) {
	// Apply the algebraic rewrite to every negated operand up front; a
	// negated constant is still constant, a negated variable is still
	// deferred.
	wrapped := make([]ast.Expr, len(operands))
	for i, op := range operands {
		if op.Negated {
			wrapped[i] = negate(op.Expr)
		} else {
			wrapped[i] = op.Expr
		}
	}

	var immediate, deferred []ast.Expr
	for _, w := range wrapped {
		if ast.IsConstant(stripAlgebraic(w)) {
			immediate = append(immediate, w)
		} else {
			deferred = append(deferred, w)
		}
	}

	var constSide ast.Expr
	if len(immediate) > 0 {
		acc, err := evaluate(immediate[0], p.source)
		for _, next := range immediate[1:] {
			if err != nil {
				break
			}
			var nv *ast.EvalExpr
			if nv, err = evaluate(next, p.source); err == nil {
				acc, err = combineConst(mkNode, acc, nv)
			}
		}
		if _, refused := err.(*EvaluatorError); refused {
			// Fold refused (e.g. division by zero): keep every operand
			// unfolded, in source order.
			deferred = wrapped
		} else if err != nil {
			return nil, err
		} else {
			constSide = acc
		}
	}

	var deferredSide ast.Expr
	if len(deferred) > 0 {
		deferredSide = deferred[len(deferred)-1]
		for i := len(deferred) - 2; i >= 0; i-- {
			span := lexer.Span{Start: deferred[i].Span().Start, Stop: deferredSide.Span().Stop}
			deferredSide = mkNode(span, deferred[i], deferredSide)
		}
	}

	switch {
	case constSide != nil && deferredSide != nil:
		span := lexer.Span{Start: constSide.Span().Start, Stop: deferredSide.Span().Stop}
		return mkNode(span, constSide, deferredSide), nil
	case constSide != nil:
		return constSide, nil
	case deferredSide != nil:
		return deferredSide, nil
	default:
		return nil, p.wrapErr(newParserError(ErrInternal, p.pos(), "empty operand chain"))
	}
}

// stripAlgebraic unwraps an AddNegated/MultReciprocal marker to inspect
// whether the underlying operand is constant.
func stripAlgebraic(e ast.Expr) ast.Expr {
	switch v := e.(type) {
	case *ast.AddNegated:
		return v.Inner
	case *ast.MultReciprocal:
		return v.Inner
	default:
		return e
	}
}

// combineConst evaluates mkNode(acc, next) as a constant fold; used to
// fuse the immediate (all-constant) operands of an Add/Mult chain.
func combineConst(mkNode func(span lexer.Span, l, r ast.Expr) ast.Expr, acc, next *ast.EvalExpr) (*ast.EvalExpr, error) {
	span := lexer.Span{Start: acc.Span().Start, Stop: next.Span().Stop}
	node := mkNode(span, acc, next)
	if sym, l, r, ok := opSymbol(node); ok {
		return opTable[sym](mustEval(l), mustEval(r))
	}
	return nil, &EvaluatorError{Message: "not a binary node"}
}

func mustEval(e ast.Expr) *ast.EvalExpr {
	v, _ := e.(*ast.EvalExpr)
	return v
}
