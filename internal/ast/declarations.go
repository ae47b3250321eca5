package ast

import "github.com/dannbuckley/go-aspparse/internal/lexer"

func (baseNode) memberDeclNode() {}

// FieldName is one name in a FieldDecl, with optional array dimensions
// (same shape as VarName).
type FieldName struct {
	Name string
	Dims []int
}

// FieldDecl is a class-level `[Public|Private] name[(dims)], ...` field
// declaration. Public Default is illegal here (enforced by the parser).
type FieldDecl struct {
	baseNode
	Access lexer.AccessModifier
	Names  []FieldName
}

// ConstListItem is one `name = expr` pair in a ConstDecl.
type ConstListItem struct {
	Name string
	Expr Expr
}

// ConstDecl is `[Public|Private] Const name = expr, ...`. Public Default is
// illegal here (enforced by the parser).
type ConstDecl struct {
	baseNode
	Access lexer.AccessModifier
	Items  []ConstListItem
}

// PropertyKind distinguishes the three Property accessor forms.
type PropertyKind int

const (
	PropertyGet PropertyKind = iota
	PropertyLet
	PropertySet
)

// SubDecl is `[Public|Private|Public Default] Sub name(args) ... End Sub`.
type SubDecl struct {
	baseNode
	Access lexer.AccessModifier
	Name   string
	Args   []Arg
	Stmts  []MethodStmt
}

// FunctionDecl is `[Public|Private|Public Default] Function name(args) ... End Function`.
type FunctionDecl struct {
	baseNode
	Access lexer.AccessModifier
	Name   string
	Args   []Arg
	Stmts  []MethodStmt
}

// PropertyDecl is `[Public|Private|Public Default] Property Get|Let|Set
// name(args) ... End Property`.
type PropertyDecl struct {
	baseNode
	Access lexer.AccessModifier
	Kind   PropertyKind
	Name   string
	Args   []Arg
	Stmts  []MethodStmt
}

// ClassDecl is `Class name ... End Class`, containing an ordered list of
// member declarations (fields, consts, vars, subs, functions, properties).
type ClassDecl struct {
	baseNode
	Name    string
	Members []MemberDecl
}
