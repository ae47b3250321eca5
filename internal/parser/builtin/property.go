package builtin

import "github.com/dannbuckley/go-aspparse/internal/ast"

// PropertyExpr rewrites an ordinary LeftExpr into the canonical shape used
// for a class property accessed through its generated Get/Let/Set methods,
// with the synthetic subnames __get_property / __set_property appended so
// downstream consumers can tell a plain member access from a
// property-backed one without re-deriving it from context.
type PropertyExpr struct {
	le       *ast.LeftExpr
	isAssign bool
	rhs      ast.Expr
}

// FromRetrieval builds the "getter" view of lhs.
func FromRetrieval(lhs *ast.LeftExpr) *PropertyExpr {
	return &PropertyExpr{le: appendSynthetic(lhs, "__get_property")}
}

// FromAssignment builds the "setter" view of lhs = rhs.
func FromAssignment(lhs *ast.LeftExpr, rhs ast.Expr) *PropertyExpr {
	return &PropertyExpr{le: appendSynthetic(lhs, "__set_property"), isAssign: true, rhs: rhs}
}

func appendSynthetic(lhs *ast.LeftExpr, synthetic string) *ast.LeftExpr {
	segs := append(append([]ast.Segment{}, lhs.Segs...), ast.Segment{Subname: synthetic})
	return ast.NewLeftExpr(lhs.Span(), lhs.SymName, lhs.Parts, segs)
}

func (e *PropertyExpr) Source() *ast.LeftExpr { return e.le }
func (e *PropertyExpr) IsAssignment() bool    { return e.isAssign }
func (e *PropertyExpr) RHS() ast.Expr         { return e.rhs }

func (e *PropertyExpr) Validate(isSubcall bool) error {
	if len(e.le.Segs) == 0 {
		return &ShapeError{Variant: "Property", Message: "missing synthetic accessor segment"}
	}
	last := e.le.Segs[len(e.le.Segs)-1].Subname
	if e.isAssign && last != "__set_property" {
		return &ShapeError{Variant: "Property", Message: "assignment view must end in __set_property"}
	}
	if !e.isAssign && last != "__get_property" {
		return &ShapeError{Variant: "Property", Message: "retrieval view must end in __get_property"}
	}
	return nil
}
