package builtin

import "github.com/dannbuckley/go-aspparse/internal/ast"

func init() {
	register("response", "write", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ResponseWriteExpr{le: le}, nil
	})
	register("response", "addheader", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ResponseAddHeaderExpr{le: le}, nil
	})
	register("response", "cookies", func(le *ast.LeftExpr) (BuiltinExpr, error) {
		return &ResponseCookiesExpr{le: le}, nil
	})
	for _, prop := range []string{"buffer", "status", "contenttype", "expires", "charset", "cachecontrol", "isclientconnected"} {
		p := prop
		register("response", p, func(le *ast.LeftExpr) (BuiltinExpr, error) {
			return &ResponsePropertyExpr{le: le, name: p}, nil
		})
	}
	for _, action := range []string{"clear", "end", "flush"} {
		a := action
		register("response", a, func(le *ast.LeftExpr) (BuiltinExpr, error) {
			return &ResponseActionExpr{le: le, name: a}, nil
		})
	}
}

var responseCookieAttrs = map[string]bool{
	"domain": true, "expires": true, "haskeys": true, "path": true, "secure": true,
}

// ResponseWriteExpr is `Response.Write(x)` or, as a bare sub-call,
// `Response.Write x`: exactly one argument either way. In the bare form
// the argument is never attached to the LeftExpr itself (it ends up in
// the enclosing SubCallStmt.Args instead), so the shape check here is
// limited to "no call segment at all" rather than counting arguments.
type ResponseWriteExpr struct{ le *ast.LeftExpr }

func (e *ResponseWriteExpr) Source() *ast.LeftExpr { return e.le }

func (e *ResponseWriteExpr) Validate(isSubcall bool) error {
	if isSubcall && e.le.EndIdx() == 1 {
		return nil
	}
	if e.le.EndIdx() != 2 || !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 1 {
		return &ShapeError{Variant: "Response.Write", Message: "expects exactly one call argument"}
	}
	if e.le.Segs[1].CallArgs[0] == nil {
		return &ShapeError{Variant: "Response.Write", Message: "argument cannot be omitted"}
	}
	return nil
}

// Arg returns the single written expression.
func (e *ResponseWriteExpr) Arg() ast.Expr { return e.le.Segs[1].CallArgs[0] }

// ResponseAddHeaderExpr is `Response.AddHeader(name, value)`, or bare as
// `Response.AddHeader name, value`: two arguments either way (see
// ResponseWriteExpr for why the bare form's own args aren't checked here).
type ResponseAddHeaderExpr struct{ le *ast.LeftExpr }

func (e *ResponseAddHeaderExpr) Source() *ast.LeftExpr { return e.le }

func (e *ResponseAddHeaderExpr) Validate(isSubcall bool) error {
	if isSubcall && e.le.EndIdx() == 1 {
		return nil
	}
	if e.le.EndIdx() != 2 || !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 2 {
		return &ShapeError{Variant: "Response.AddHeader", Message: "expects exactly two call arguments"}
	}
	return nil
}

// ResponseCookiesExpr is `Response.Cookies(name)[(key) | .attr]`, where
// attr is one of domain/expires/haskeys/path/secure.
type ResponseCookiesExpr struct{ le *ast.LeftExpr }

func (e *ResponseCookiesExpr) Source() *ast.LeftExpr { return e.le }

func (e *ResponseCookiesExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() < 2 || !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 1 {
		return &ShapeError{Variant: "Response.Cookies", Message: "expects a cookie name call argument"}
	}
	if e.le.EndIdx() == 2 {
		return nil
	}
	if e.le.EndIdx() != 3 {
		return &ShapeError{Variant: "Response.Cookies", Message: "too many segments"}
	}
	seg := e.le.Segs[2]
	if seg.IsCall {
		if len(seg.CallArgs) != 1 {
			return &ShapeError{Variant: "Response.Cookies", Message: "dictionary-key access expects one argument"}
		}
		return nil
	}
	if !responseCookieAttrs[seg.Subname] {
		return &ShapeError{Variant: "Response.Cookies", Message: "unrecognized cookie attribute " + seg.Subname}
	}
	return nil
}

// ResponsePropertyExpr covers bare property access (Buffer, Status,
// ContentType, Expires, CharSet, CacheControl, IsClientConnected):
// end_idx == 1, never a sub-call statement.
type ResponsePropertyExpr struct {
	le   *ast.LeftExpr
	name string
}

func (e *ResponsePropertyExpr) Source() *ast.LeftExpr { return e.le }
func (e *ResponsePropertyExpr) Name() string          { return e.name }

func (e *ResponsePropertyExpr) Validate(isSubcall bool) error {
	if e.le.EndIdx() != 1 {
		return &ShapeError{Variant: "Response." + e.name, Message: "expects bare property access"}
	}
	if isSubcall {
		return &ShapeError{Variant: "Response." + e.name, Message: "must not appear in a sub-call statement"}
	}
	return nil
}

// ResponseActionExpr covers Clear/End/Flush: a zero-arg call or bare name.
type ResponseActionExpr struct {
	le   *ast.LeftExpr
	name string
}

func (e *ResponseActionExpr) Source() *ast.LeftExpr { return e.le }
func (e *ResponseActionExpr) Name() string          { return e.name }

func (e *ResponseActionExpr) Validate(isSubcall bool) error {
	switch e.le.EndIdx() {
	case 1:
		return nil
	case 2:
		if !e.le.Segs[1].IsCall || len(e.le.Segs[1].CallArgs) != 0 {
			return &ShapeError{Variant: "Response." + e.name, Message: "expects a zero-arg call or bare name"}
		}
		return nil
	default:
		return &ShapeError{Variant: "Response." + e.name, Message: "too many segments"}
	}
}
