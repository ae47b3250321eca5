package parser

import (
	"fmt"
	"testing"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/parser/builtin"
)

// stubResolver resolves every include to a fixed body, recording the
// kind/path pairs it was asked about.
type stubResolver struct {
	body string
	err  error
	seen []string
}

func (r *stubResolver) Resolve(kind ast.IncludeType, path string) (string, error) {
	word := "file"
	if kind == ast.IncludeVirtual {
		word = "virtual"
	}
	r.seen = append(r.seen, fmt.Sprintf("%s:%s", word, path))
	if r.err != nil {
		return "", r.err
	}
	return r.body, nil
}

func TestProcessingDirectiveMustBeFirstStatement(t *testing.T) {
	p := New(`hello<%@ language="VBScript" %>`)
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error for a processing directive not in first position")
	}
}

func TestProcessingDirectiveAsFirstStatement(t *testing.T) {
	p := New(`<%@ language="VBScript", codepage=65001 %>rest`)
	defer p.Close(nil)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("len(Stmts) = %d, want 2", len(prog.Stmts))
	}
	pd, ok := prog.Stmts[0].(*ast.ProcessingDirective)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *ast.ProcessingDirective", prog.Stmts[0])
	}
	opts := pd.Options()
	if opts["language"] != "VBScript" {
		t.Errorf("Options()[\"language\"] = %q, want %q", opts["language"], "VBScript")
	}
	if opts["codepage"] != "65001" {
		t.Errorf("Options()[\"codepage\"] = %q, want %q", opts["codepage"], "65001")
	}
}

func TestConsecutiveOutputTextRunsMerge(t *testing.T) {
	prog, err := parseProg(t, `before<%= 1 %>after`)
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1 (merged OutputText)", len(prog.Stmts))
	}
	ot, ok := prog.Stmts[0].(*ast.OutputText)
	if !ok {
		t.Fatalf("got %T, want *ast.OutputText", prog.Stmts[0])
	}
	if len(ot.Chunks) != 2 || len(ot.Directives) != 1 {
		t.Fatalf("Chunks/Directives = %d/%d, want 2/1", len(ot.Chunks), len(ot.Directives))
	}
	stitched := ot.Stitch()
	if len(stitched) != 3 {
		t.Fatalf("len(Stitch()) = %d, want 3", len(stitched))
	}
	if rc, ok := stitched[0].(*ast.RawChunk); !ok || rc.Text != "before" {
		t.Errorf("Stitch()[0] = %+v, want RawChunk(\"before\")", stitched[0])
	}
	if _, ok := stitched[1].(*ast.OutputDirective); !ok {
		t.Errorf("Stitch()[1] = %T, want *ast.OutputDirective", stitched[1])
	}
	if rc, ok := stitched[2].(*ast.RawChunk); !ok || rc.Text != "after" {
		t.Errorf("Stitch()[2] = %+v, want RawChunk(\"after\")", stitched[2])
	}
}

func TestOutputTextMergeMatchesConcatenatedStitch(t *testing.T) {
	progA, err := parseProg(t, `abc<%= 1 %>`)
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	progB, err := parseProg(t, `<%= 2 %>xyz`)
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	a := progA.Stmts[0].(*ast.OutputText)
	b := progB.Stmts[0].(*ast.OutputText)
	merged := a.Merge(b)

	wantLen := len(a.Stitch()) + len(b.Stitch())
	got := merged.Stitch()
	if len(got) != wantLen {
		t.Fatalf("len(Merge(a,b).Stitch()) = %d, want %d", len(got), wantLen)
	}
	for i, chunk := range a.Stitch() {
		compareChunks(t, got[i], chunk)
	}
	for i, chunk := range b.Stitch() {
		compareChunks(t, got[len(a.Stitch())+i], chunk)
	}
}

func compareChunks(t *testing.T, got, want ast.OutputChunk) {
	t.Helper()
	switch w := want.(type) {
	case *ast.RawChunk:
		g, ok := got.(*ast.RawChunk)
		if !ok || g.Text != w.Text {
			t.Errorf("chunk = %+v, want RawChunk(%q)", got, w.Text)
		}
	case *ast.OutputDirective:
		if _, ok := got.(*ast.OutputDirective); !ok {
			t.Errorf("chunk = %T, want *ast.OutputDirective", got)
		}
	}
}

func TestIncludeFileDirectiveResolved(t *testing.T) {
	resolver := &stubResolver{body: "INCLUDED"}
	p := New(`<!-- #include file="header.asp" -->`, WithIncludeResolver(resolver))
	defer p.Close(nil)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if len(resolver.seen) != 1 || resolver.seen[0] != "file:header.asp" {
		t.Fatalf("resolver.seen = %v, want [\"file:header.asp\"]", resolver.seen)
	}
	ot, ok := prog.Stmts[0].(*ast.OutputText)
	if !ok {
		t.Fatalf("got %T, want *ast.OutputText", prog.Stmts[0])
	}
	if len(ot.Chunks) != 1 || ot.Chunks[0].Text != "INCLUDED" {
		t.Fatalf("Chunks = %+v, want one chunk with text %q", ot.Chunks, "INCLUDED")
	}
}

func TestIncludeVirtualDirectiveResolved(t *testing.T) {
	resolver := &stubResolver{body: "X"}
	p := New(`<!-- #include virtual="/lib/header.asp" -->`, WithIncludeResolver(resolver))
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if len(resolver.seen) != 1 || resolver.seen[0] != "virtual:/lib/header.asp" {
		t.Fatalf("resolver.seen = %v, want [\"virtual:/lib/header.asp\"]", resolver.seen)
	}
}

func TestUnresolvedIncludeIsDiagnosticNotFatal(t *testing.T) {
	resolver := &stubResolver{err: fmt.Errorf("not found")}
	p := New(`<!-- #include file="missing.asp" -->`, WithIncludeResolver(resolver))
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err != nil {
		t.Fatalf("ParseProgram() error = %v, want nil (failure reported as a diagnostic)", err)
	}
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("len(Diagnostics()) = %d, want 1", len(p.Diagnostics()))
	}
}

func TestMissingIncludeResolverIsDiagnostic(t *testing.T) {
	p := New(`<!-- #include file="header.asp" -->`)
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("len(Diagnostics()) = %d, want 1", len(p.Diagnostics()))
	}
}

func TestUnclosedScriptModeIsFatal(t *testing.T) {
	p := New(`<% x = 1`)
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error for an unclosed script region")
	}
}

// parseProg is a tiny helper around ParseProgram for the Program-level
// tests in this file.
func parseProg(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	p := New(src)
	defer p.Close(nil)
	return p.ParseProgram()
}

// --- literal scenario tests ---

func TestScenario1OutputDirectiveArithmeticFolds(t *testing.T) {
	prog, err := parseProg(t, `<%= 1 + 2 %>`)
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(prog.Stmts))
	}
	ot, ok := prog.Stmts[0].(*ast.OutputText)
	if !ok {
		t.Fatalf("got %T, want *ast.OutputText", prog.Stmts[0])
	}
	if len(ot.Directives) != 1 {
		t.Fatalf("len(Directives) = %d, want 1", len(ot.Directives))
	}
	wantEvalInt(t, ot.Directives[0].Value, 3)
}

func TestScenario2OptionExplicitAlone(t *testing.T) {
	prog, err := parseProg(t, "<%Option Explicit\n%>")
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[0].(*ast.OptionExplicit); !ok {
		t.Fatalf("got %T, want *ast.OptionExplicit", prog.Stmts[0])
	}
}

func TestScenario3DimScalarAndArray(t *testing.T) {
	prog, err := parseProg(t, "<%Dim a, b(3, 4)\n%>")
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDecl", prog.Stmts[0])
	}
	want := []ast.VarName{{Name: "a"}, {Name: "b", Dims: []int{3, 4}}}
	if len(vd.Names) != len(want) {
		t.Fatalf("len(Names) = %d, want %d", len(vd.Names), len(want))
	}
	if vd.Names[0].Name != want[0].Name || len(vd.Names[0].Dims) != 0 {
		t.Errorf("Names[0] = %+v, want %+v", vd.Names[0], want[0])
	}
	if vd.Names[1].Name != want[1].Name || len(vd.Names[1].Dims) != 2 ||
		vd.Names[1].Dims[0] != 3 || vd.Names[1].Dims[1] != 4 {
		t.Errorf("Names[1] = %+v, want %+v", vd.Names[1], want[1])
	}
}

func TestScenario4ResponseWriteConcatFolds(t *testing.T) {
	prog, err := parseProg(t, "<%Response.Write \"Hello, \" & \"world!\"\n%>")
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	sc, ok := prog.Stmts[0].(*ast.SubCallStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.SubCallStmt", prog.Stmts[0])
	}
	if sc.Target.SymName != "response" || len(sc.Target.Segs) != 1 || sc.Target.Segs[0].Subname != "write" {
		t.Fatalf("Target = %+v, want \"response\" left expr with a bare \"write\" member segment (the call arguments live in sc.Args, not in a call segment)", sc.Target)
	}
	if len(sc.Args) != 1 {
		t.Fatalf("len(Args) = %d, want 1", len(sc.Args))
	}
	ev, ok := sc.Args[0].(*ast.EvalExpr)
	if !ok || ev.Kind != ast.EvalString || ev.Str != "Hello, world!" {
		t.Errorf("Args[0] = %+v, want EvalExpr(\"Hello, world!\")", sc.Args[0])
	}
}

func TestScenario5IfBlockWithDimBody(t *testing.T) {
	prog, err := parseProg(t, "<%If 1 = 1 Then\nDim x\nEnd If\n%>")
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	ifs, ok := prog.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStmt", prog.Stmts[0])
	}
	wantEvalBool(t, ifs.Cond, true)
	if len(ifs.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(ifs.Stmts))
	}
	if _, ok := ifs.Stmts[0].(*ast.VarDecl); !ok {
		t.Errorf("Stmts[0] = %T, want *ast.VarDecl", ifs.Stmts[0])
	}
	if len(ifs.ElseStmts) != 0 {
		t.Errorf("len(ElseStmts) = %d, want 0", len(ifs.ElseStmts))
	}
}

func TestScenario6ForEachOverArray(t *testing.T) {
	prog, err := parseProg(t, "<%For Each item In arr\nNext\n%>")
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	fs, ok := prog.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ForStmt", prog.Stmts[0])
	}
	if fs.TargetID != "item" {
		t.Errorf("TargetID = %q, want %q", fs.TargetID, "item")
	}
	le, ok := fs.EachIn.(*ast.LeftExpr)
	if !ok || le.SymName != "arr" {
		t.Errorf("EachIn = %+v, want LeftExpr(\"arr\")", fs.EachIn)
	}
	if fs.StartExpr != nil || fs.ToExpr != nil || fs.StepExpr != nil {
		t.Error("numeric-form fields should all be nil")
	}
	if len(fs.Stmts) != 0 {
		t.Errorf("len(Stmts) = %d, want 0", len(fs.Stmts))
	}
}

func TestScenario7ServerCreateObjectPromotes(t *testing.T) {
	prog, err := parseProg(t, `<%= Server.CreateObject("ADODB.Connection") %>`)
	if err != nil {
		t.Fatalf("parseProg() error = %v", err)
	}
	ot := prog.Stmts[0].(*ast.OutputText)
	le, ok := ot.Directives[0].Value.(*ast.LeftExpr)
	if !ok {
		t.Fatalf("Value = %T, want *ast.LeftExpr", ot.Directives[0].Value)
	}
	variant, err := builtin.Classify(le, false)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	sco, ok := variant.(*builtin.ServerCreateObjectExpr)
	if !ok {
		t.Fatalf("Classify() = %T, want *builtin.ServerCreateObjectExpr", variant)
	}
	ev, ok := sco.ProgIDArg().(*ast.EvalExpr)
	if !ok || ev.Kind != ast.EvalString || ev.Str != "ADODB.Connection" {
		t.Errorf("ProgIDArg() = %+v, want EvalExpr(\"ADODB.Connection\")", sco.ProgIDArg())
	}
}

func TestScenario8SubtractionThenAdditionNormalizes(t *testing.T) {
	got := parseExprSrc(t, "1 - 2 + a")
	add, ok := got.(*ast.AddExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.AddExpr", got)
	}
	wantEvalInt(t, add.Left, -1)
	le, ok := add.Right.(*ast.LeftExpr)
	if !ok || le.SymName != "a" {
		t.Errorf("Right = %+v, want LeftExpr(\"a\")", add.Right)
	}
}
