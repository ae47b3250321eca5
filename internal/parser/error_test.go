package parser

import (
	"strings"
	"testing"
)

func TestParserErrorReportIncludesSourceLineCaretAndChain(t *testing.T) {
	src := "<%\nDim\n%>"
	p := New(src, WithFilename("page.asp"))
	defer p.Close(nil)

	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("ParseProgram() error = nil, want a ParserError")
	}
	pe, ok := err.(*ParserError)
	if !ok {
		t.Fatalf("err is %T, want *ParserError", err)
	}
	if pe.Source != src {
		t.Errorf("pe.Source = %q, want the full document", pe.Source)
	}
	if pe.File != "page.asp" {
		t.Errorf("pe.File = %q, want %q", pe.File, "page.asp")
	}
	if pe.Chain.Depth() == 0 {
		t.Fatal("pe.Chain is empty, want the enclosing productions")
	}

	report := pe.Report(false)
	if !strings.Contains(report, "page.asp") {
		t.Errorf("Report() = %q, want it to name the file", report)
	}
	if !strings.Contains(report, "Dim") {
		t.Errorf("Report() = %q, want it to quote the offending source line", report)
	}
	if !strings.Contains(report, "^") {
		t.Errorf("Report() = %q, want a caret indicator", report)
	}
	if !strings.Contains(report, "while parsing:") {
		t.Errorf("Report() = %q, want the production chain appended", report)
	}
}

func TestParserErrorReportWithoutFilenameOmitsHeader(t *testing.T) {
	p := New("<%\nDim\n%>")
	defer p.Close(nil)

	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("ParseProgram() error = nil, want a ParserError")
	}
	pe := err.(*ParserError)
	report := pe.Report(false)
	if !strings.HasPrefix(report, "Error at line") {
		t.Errorf("Report() = %q, want it to start with the filename-less header", report)
	}
}
