package builtin

import "github.com/dannbuckley/go-aspparse/internal/ast"

func init() {
	register("server", "createobject", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ServerCreateObjectExpr{le: le}, nil
	})
	register("server", "mappath", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ServerMapPathExpr{le: le}, nil
	})
	register("server", "htmlencode", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ServerEncodeExpr{le: le, name: "htmlencode"}, nil
	})
	register("server", "urlencode", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ServerEncodeExpr{le: le, name: "urlencode"}, nil
	})
	register("server", "scripttimeout", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ServerPropertyExpr{le: le}, nil
	})
}

// ServerCreateObjectExpr is `Server.CreateObject("Vendor.Component")`: one
// call-arg at segment 1, end_idx == 2. The ProgID's own shape
// (Vendor.Component) is not validated here — resolving or shape-checking
// the string itself belongs to a later stage, out of scope for this
// parser-level classifier.
type ServerCreateObjectExpr struct{ le *ast.LeftExpr }

func (e *ServerCreateObjectExpr) Source() *ast.LeftExpr { return e.le }

func (e *ServerCreateObjectExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() != 2 || !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 1 {
		return &ShapeError{Variant: "Server.CreateObject", Message: "expects exactly one call argument"}
	}
	if e.le.Segs[1].CallArgs[0] == nil {
		return &ShapeError{Variant: "Server.CreateObject", Message: "argument cannot be omitted"}
	}
	return nil
}

// ProgIDArg returns the ProgID expression argument.
func (e *ServerCreateObjectExpr) ProgIDArg() ast.Expr { return e.le.Segs[1].CallArgs[0] }

// ServerMapPathExpr is `Server.MapPath(path)`: one call-arg at segment 1.
type ServerMapPathExpr struct{ le *ast.LeftExpr }

func (e *ServerMapPathExpr) Source() *ast.LeftExpr { return e.le }

func (e *ServerMapPathExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() != 2 || !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 1 {
		return &ShapeError{Variant: "Server.MapPath", Message: "expects exactly one call argument"}
	}
	return nil
}

// ServerEncodeExpr covers HTMLEncode/URLEncode: one call-arg at segment 1.
type ServerEncodeExpr struct {
	le   *ast.LeftExpr
	name string
}

func (e *ServerEncodeExpr) Source() *ast.LeftExpr { return e.le }

func (e *ServerEncodeExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() != 2 || !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 1 {
		return &ShapeError{Variant: "Server." + e.name, Message: "expects exactly one call argument"}
	}
	return nil
}

// ServerPropertyExpr is `Server.ScriptTimeout` (bare property or assigned).
type ServerPropertyExpr struct{ le *ast.LeftExpr }

func (e *ServerPropertyExpr) Source() *ast.LeftExpr { return e.le }

func (e *ServerPropertyExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() != 1 {
		return &ShapeError{Variant: "Server.ScriptTimeout", Message: "expects bare property access"}
	}
	return nil
}
