// Package builtin classifies a parsed LeftExpr rooted at response,
// request, or server into its specific intrinsic variant, enforcing the
// per-intrinsic call/property shape rules of the built-in object model.
// The registry is a read-only map populated once at init, standing in for
// the source grammar's class-registration-at-definition-time pattern.
package builtin

import (
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/ast"
)

// BuiltinExpr is a classified built-in intrinsic expression: a LeftExpr
// that has been recognized and shape-validated against one of the
// Response/Request/Server variant rules.
type BuiltinExpr interface {
	Source() *ast.LeftExpr
	Validate(isSubcall bool) error
}

// ShapeError reports a built-in intrinsic used with the wrong call/
// property shape (e.g. Response.Write with zero arguments).
type ShapeError struct {
	Variant string
	Message string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Variant, e.Message)
}

// variantFactory builds and validates a BuiltinExpr from a LeftExpr whose
// Segs[0].Subname has already been matched to a registry key.
type variantFactory func(le *ast.LeftExpr) (BuiltinExpr, error)

// registry dispatches by "<root>.<subname>", e.g. "response.write". It is
// populated once by each family file's init() and never mutated after
// package initialization, so concurrent parses may call Classify freely.
var registry = map[string]variantFactory{}

func register(root, subname string, f variantFactory) {
	registry[root+"."+subname] = f
}

// Classify promotes le to its built-in variant if le.SymName names a
// recognized intrinsic root (response/request/server) and its first
// segment is a recognized subname; it returns (nil, nil) for any other
// LeftExpr, leaving it as an ordinary left expression.
func Classify(le *ast.LeftExpr, isSubcall bool) (BuiltinExpr, error) {
	root := le.SymName
	if root != "response" && root != "request" && root != "server" {
		return nil, nil
	}
	if len(le.Segs) == 0 || le.Segs[0].Subname == "" {
		return nil, nil
	}
	sub := le.Segs[0].Subname
	factory, ok := registry[root+"."+sub]
	if !ok {
		return nil, nil
	}
	v, err := factory(le)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(isSubcall); err != nil {
		return nil, err
	}
	return v, nil
}

// callArgsAt returns the call arguments at segment i, or nil if segment i
// is not a call segment.
func callArgsAt(le *ast.LeftExpr, i int) []ast.Expr {
	if i < 0 || i >= len(le.Segs) || !le.Segs[i].IsCall {
		return nil
	}
	return le.Segs[i].CallArgs
}
