package ast

import (
	"strings"

	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// ProcessingSetting is one `key=value` pair of a ProcessingDirective.
type ProcessingSetting struct {
	Key   string // casefolded
	Value string
}

// ProcessingDirective is the single `<%@ key=value[, ...] %>` header
// configuring the script engine. It may only appear once, at the very
// start of the document.
type ProcessingDirective struct {
	baseNode
	Settings []ProcessingSetting
}

// Options returns the directive's settings as a case-insensitive-keyed
// map, per the recognized key list (language, enablesessionstate,
// codepage, lcid, transaction).
func (p *ProcessingDirective) Options() map[string]string {
	out := make(map[string]string, len(p.Settings))
	for _, s := range p.Settings {
		out[strings.ToLower(s.Key)] = s.Value
	}
	return out
}

// IncludeType distinguishes the two include-directive forms.
type IncludeType int

const (
	IncludeFileType IncludeType = iota
	IncludeVirtual
)

// IncludeFile is `<!-- #include (file|virtual)="path" -->`. Resolution of
// path into actual source text is an external collaborator's job; this
// node only records the directive as parsed.
type IncludeFile struct {
	baseNode
	Kind IncludeType
	Path string
}

// OutputDirective is `<%= expression %>`.
type OutputDirective struct {
	baseNode
	Value Expr
}

func (baseNode) outputChunkNode() {}

// OutputChunk is one element of an OutputText's stitch order: either a raw
// template-text run or an OutputDirective.
type OutputChunk interface {
	Node
	outputChunkNode()
}

// RawChunk is a verbatim run of template text (FILE_TEXT / passed-through
// HTML comments) between script regions.
type RawChunk struct {
	baseNode
	Text string
}

// OutputText is a run of template text with embedded OutputDirectives,
// recording the original interleaving of raw chunks and directives in
// StitchOrder so the source can be reconstructed.
type OutputText struct {
	baseNode
	Chunks      []RawChunk
	Directives  []OutputDirective
	StitchOrder []bool // true selects the next Directives entry, false the next Chunks entry
}

// Merge concatenates b onto a's chunk/directive lists and rewrites the
// combined StitchOrder to preserve reconstruction order; it models the
// source grammar's `OutputText.merge()` used by the program driver to
// fuse consecutive template-text runs.
func (a *OutputText) Merge(b *OutputText) *OutputText {
	merged := &OutputText{
		baseNode:    baseNode{lexer.Span{Start: a.span.Start, Stop: b.span.Stop}},
		Chunks:      append(append([]RawChunk{}, a.Chunks...), b.Chunks...),
		Directives:  append(append([]OutputDirective{}, a.Directives...), b.Directives...),
		StitchOrder: append(append([]bool{}, a.StitchOrder...), b.StitchOrder...),
	}
	return merged
}

// Stitch reconstructs the original interleaved sequence of chunk text and
// directive markers as a flat slice of OutputChunk, in StitchOrder.
func (o *OutputText) Stitch() []OutputChunk {
	out := make([]OutputChunk, 0, len(o.StitchOrder))
	ci, di := 0, 0
	for _, isDirective := range o.StitchOrder {
		if isDirective {
			out = append(out, &o.Directives[di])
			di++
		} else {
			out = append(out, &o.Chunks[ci])
			ci++
		}
	}
	return out
}

// Program is the parse result: an ordered list of top-level statements,
// which may include ProcessingDirective, IncludeFile, and OutputText
// alongside ordinary GlobalStmt declarations/statements.
type Program struct {
	baseNode
	Stmts []GlobalStmt
}

// The following three types are GlobalStmt-compatible (via the shared
// baseNode marker methods) so they can sit directly in Program.Stmts
// alongside ordinary statements, per §3's "Top-level may additionally
// contain ProcessingDirective, IncludeFile, and OutputText."
var (
	_ GlobalStmt = (*ProcessingDirective)(nil)
	_ GlobalStmt = (*IncludeFile)(nil)
	_ GlobalStmt = (*OutputText)(nil)
)
