package builtin

import "github.com/dannbuckley/go-aspparse/internal/ast"

func init() {
	for _, coll := range []string{"querystring", "form", "cookies", "servervariables", "clientcertificate"} {
		c := coll
		register("request", c, func(le *ast.LeftExpr) (BuiltinExpr, error) {
			return &RequestCollectionExpr{le: le, name: c}, nil
		})
	}
	register("request", "totalbytes", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &RequestPropertyExpr{le: le, name: "totalbytes"}, nil
	})
}

// RequestCollectionExpr is one of Request's indexed collections
// (QueryString/Form/Cookies/ServerVariables/ClientCertificate), optionally
// indexed by a single key: `Request.Form("field")` or the bare
// `Request.Form` collection itself.
type RequestCollectionExpr struct {
	le   *ast.LeftExpr
	name string
}

func (e *RequestCollectionExpr) Source() *ast.LeftExpr { return e.le }
func (e *RequestCollectionExpr) Name() string          { return e.name }

func (e *RequestCollectionExpr) Validate(isSubcall bool) error {
	switch e.le.EndIdx() {
	case 1:
		return nil
	case 2:
		if !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 1 {
			return &ShapeError{Variant: "Request." + e.name, Message: "expects a single key argument"}
		}
		return nil
	default:
		return &ShapeError{Variant: "Request." + e.name, Message: "too many segments"}
	}
}

// RequestPropertyExpr is a bare Request property (TotalBytes): end_idx == 1.
type RequestPropertyExpr struct {
	le   *ast.LeftExpr
	name string
}

func (e *RequestPropertyExpr) Source() *ast.LeftExpr { return e.le }
func (e *RequestPropertyExpr) Name() string          { return e.name }

func (e *RequestPropertyExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() != 1 {
		return &ShapeError{Variant: "Request." + e.name, Message: "expects bare property access"}
	}
	return nil
}
