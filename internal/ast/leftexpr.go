package ast

import "github.com/dannbuckley/go-aspparse/internal/lexer"

// QualifiedIDPart is one token of a qualified identifier chain (a run of
// IDENTIFIER/IDENTIFIER_IDDOT/IDENTIFIER_DOTID/IDENTIFIER_DOTIDDOT tokens).
type QualifiedIDPart struct {
	Token lexer.Token
	Name  string // casefolded
}

// Segment is one element of a LeftExpr's ordered segment list: either a
// dotted member access (Subname set) or a parenthesized call/index
// (CallArgs set, with nil entries marking omitted positional arguments so
// that `f(1,,3)` preserves three positions). Exactly one of Subname/IsCall
// applies per segment, matching the source grammar's tagged-union shape.
type Segment struct {
	IsCall   bool
	Subname  string // casefolded member name, when !IsCall
	CallArgs []Expr // nil entries are omitted positional arguments, when IsCall
	DotAfter bool   // a trailing '.' followed this segment (LeftExprTail continuation)
}

// LeftExpr is the primary addressable expression form: a qualified name
// followed by zero or more dotted member accesses and parenthesized
// call/index segments.
type LeftExpr struct {
	baseNode
	SymName string // casefolded leading identifier
	Parts   []QualifiedIDPart
	Segs    []Segment
}

// EndIdx is the number of segments (§3: "end_idx is the count of segments").
func (l *LeftExpr) EndIdx() int { return len(l.Segs) }

// NewLeftExpr constructs a LeftExpr over span with the given qualified-id
// parts and segments.
func NewLeftExpr(span lexer.Span, symName string, parts []QualifiedIDPart, segs []Segment) *LeftExpr {
	return &LeftExpr{baseNode{span}, symName, parts, segs}
}
