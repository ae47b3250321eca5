package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// stitchString renders an OutputText's reconstructed chunk/directive order
// as a plain-text trace, marking each directive's rendered expression kind
// so a snapshot catches any drift in stitch ordering or constant folding.
func stitchString(o *ast.OutputText) string {
	var b strings.Builder
	for _, chunk := range o.Stitch() {
		switch c := chunk.(type) {
		case *ast.RawChunk:
			fmt.Fprintf(&b, "RAW(%q)\n", c.Text)
		case *ast.OutputDirective:
			fmt.Fprintf(&b, "DIRECTIVE(%s)\n", exprTrace(c.Value))
		}
	}
	return b.String()
}

func exprTrace(e ast.Expr) string {
	ev, ok := e.(*ast.EvalExpr)
	if !ok {
		return fmt.Sprintf("%T", e)
	}
	switch ev.Kind {
	case ast.EvalInt:
		return fmt.Sprintf("int(%d)", ev.Int)
	case ast.EvalString:
		return fmt.Sprintf("string(%q)", ev.Str)
	default:
		return fmt.Sprintf("eval(kind=%d)", ev.Kind)
	}
}

// TestOutputTextStitchSnapshots pins the reconstructed interleaving of raw
// template-text runs and folded output directives across a handful of
// representative documents, catching regressions in merge/stitch ordering
// that per-assertion tests would need many lines to pin down individually.
func TestOutputTextStitchSnapshots(t *testing.T) {
	tests := map[string]string{
		"single_directive":    "before <%=1+2%> after",
		"adjacent_directives": "<%=1%><%=2%>",
		"merged_across_script": "a<% %>b<%=3*3%>c",
		"leading_directive":   "<%=\"x\" & \"y\"%> tail",
	}
	for name, src := range tests {
		prog, err := parseProg(t, src)
		if err != nil {
			t.Fatalf("%s: parseProg() error = %v", name, err)
		}
		var out *ast.OutputText
		for _, s := range prog.Stmts {
			if ot, ok := s.(*ast.OutputText); ok {
				out = ot
				break
			}
		}
		if out == nil {
			t.Fatalf("%s: no OutputText in program", name)
		}
		snaps.MatchSnapshot(t, name, stitchString(out))
	}
}

// directiveOptionsJSON builds a JSON object of a ProcessingDirective's
// settings, one sjson.Set call per option, so each option's contribution
// to the final document is individually visible in the snapshot diff.
func directiveOptionsJSON(d *ast.ProcessingDirective) (string, error) {
	json := "{}"
	var err error
	for key, value := range d.Options() {
		json, err = sjson.Set(json, key, value)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

// TestProcessingDirectiveOptionsJSONSnapshot pins the parsed key=value
// settings of a `<%@ ... %>` header as JSON, so additions or renames of
// recognized directive keys show up as an explicit snapshot diff.
func TestProcessingDirectiveOptionsJSONSnapshot(t *testing.T) {
	prog, err := parseProg(t, `<%@ language="VBScript" codepage="65001" %>`)
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	d, ok := prog.Stmts[0].(*ast.ProcessingDirective)
	if !ok {
		t.Fatalf("got %T, want *ast.ProcessingDirective", prog.Stmts[0])
	}
	json, err := directiveOptionsJSON(d)
	if err != nil {
		t.Fatalf("directiveOptionsJSON() error = %v", err)
	}
	if gjson.Get(json, "language").String() != "VBScript" {
		t.Errorf("language = %q, want %q", gjson.Get(json, "language").String(), "VBScript")
	}
	snaps.MatchJSON(t, json)
}
