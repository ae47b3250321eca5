// Package ast defines the typed abstract syntax tree produced by parsing
// a Classic ASP/VBScript document: expressions (with in-parser constant
// folding and algebraic-normalization annotations), statements,
// declarations, and the top-level Program.
package ast

import (
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// Node is implemented by every AST node.
type Node interface {
	// Span reports the node's source byte range.
	Span() lexer.Span
}

// Expr is the marker interface for every expression node.
type Expr interface {
	Node
	exprNode()
}

// GlobalStmt is implemented by every statement that may appear directly
// in a Program's statement list.
type GlobalStmt interface {
	Node
	globalStmtNode()
}

// MethodStmt is implemented by statements valid inside a Sub/Function
// body (a strict subset that excludes top-level-only declarations).
type MethodStmt interface {
	Node
	methodStmtNode()
}

// BlockStmt is implemented by statements valid in both global and method
// scope (mirrors the source grammar's BlockStmt(GlobalStmt, MethodStmt)
// intersection without attempting Go multiple inheritance).
type BlockStmt interface {
	GlobalStmt
	MethodStmt
	blockStmtNode()
}

// InlineStmt is the subset of BlockStmt usable as a single-line statement
// (inside inline If/sub-call bodies).
type InlineStmt interface {
	BlockStmt
	inlineStmtNode()
}

// MemberDecl is implemented by declarations nestable inside a ClassDecl.
type MemberDecl interface {
	Node
	memberDeclNode()
}

// baseNode carries the common span field embedded by every concrete node.
type baseNode struct {
	span lexer.Span
}

func (b baseNode) Span() lexer.Span { return b.span }

// SetSpan assigns a node's source span after construction; used by the
// parser package when a node is built from already-constructed operands
// whose combined span isn't known until both are in hand (e.g. the
// closures buildAddChain/buildMultChain pass to the generic chain
// combinator).
func (b *baseNode) SetSpan(s lexer.Span) { b.span = s }

// NewSpan is a convenience constructor mirroring lexer.Span's fields.
func NewSpan(start, stop int) lexer.Span { return lexer.Span{Start: start, Stop: stop} }

// String renders a node for debugging; most node types override this via
// their own String method, this is the fallback.
func nodeString(n Node) string {
	return fmt.Sprintf("%T%s", n, n.Span())
}
