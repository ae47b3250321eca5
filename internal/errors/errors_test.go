package errors

import (
	"strings"
	"testing"

	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

func TestSourceErrorFormat(t *testing.T) {
	tests := []struct {
		name        string
		pos         lexer.Position
		message     string
		source      string
		file        string
		wantContain []string
	}{
		{
			name:    "with file",
			pos:     lexer.Position{Line: 1, Column: 8},
			message: `unexpected token at Response.Write("hi"`,
			source:  `Response.Write("hi"`,
			file:    "page.asp",
			wantContain: []string{
				"Error in page.asp:1:8",
				"   1 | Response.Write(\"hi\"",
				"^",
				`unexpected token at Response.Write("hi"`,
			},
		},
		{
			name:    "without file",
			pos:     lexer.Position{Line: 3, Column: 1},
			message: "unclosed script region",
			source:  "<%\nx = 1\n%",
			file:    "",
			wantContain: []string{
				"Error at line 3:1",
				"   3 | %",
				"^",
				"unclosed script region",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewSourceError(tt.pos, tt.message, tt.source, tt.file)
			got := e.Format(false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() = %q, want it to contain %q", got, want)
				}
			}
			if got != e.Error() {
				t.Errorf("Error() = %q, want it to match Format(false)", e.Error())
			}
		})
	}
}

func TestSourceErrorFormatColor(t *testing.T) {
	e := NewSourceError(lexer.Position{Line: 1, Column: 1}, "bad token", "x", "")
	got := e.Format(true)
	if !strings.Contains(got, "\033[1;31m") {
		t.Errorf("Format(true) = %q, want ANSI red-bold caret", got)
	}
	if !strings.Contains(got, "\033[1m") {
		t.Errorf("Format(true) = %q, want ANSI bold message", got)
	}
}

func TestSourceErrorFormatWithContextShowsSurroundingLines(t *testing.T) {
	e := NewSourceError(lexer.Position{Line: 3, Column: 1}, "bad token",
		"line1\nline2\nline3\nline4\nline5", "")
	got := e.FormatWithContext(1, false)
	for _, want := range []string{"line2", "line3", "line4"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatWithContext() = %q, want it to contain %q", got, want)
		}
	}
	if strings.Contains(got, "line1") || strings.Contains(got, "line5") {
		t.Errorf("FormatWithContext() = %q, want context clamped to 1 line each side", got)
	}
}

func TestSourceErrorFormatWithContextClampsAtDocumentBounds(t *testing.T) {
	e := NewSourceError(lexer.Position{Line: 1, Column: 1}, "bad token", "only line", "")
	got := e.FormatWithContext(3, false)
	if !strings.Contains(got, "only line") {
		t.Errorf("FormatWithContext() = %q, want the single source line", got)
	}
}

func TestFormatErrorsSingleVsMultiple(t *testing.T) {
	single := []*SourceError{NewSourceError(lexer.Position{Line: 1, Column: 1}, "a", "x", "")}
	if got := FormatErrors(single, false); strings.Contains(got, "Error 1 of") {
		t.Errorf("FormatErrors() with one error = %q, want no numbered header", got)
	}

	multi := []*SourceError{
		NewSourceError(lexer.Position{Line: 1, Column: 1}, "first", "x", ""),
		NewSourceError(lexer.Position{Line: 2, Column: 1}, "second", "x\ny", ""),
	}
	got := FormatErrors(multi, false)
	if !strings.Contains(got, "[Error 1 of 2]") || !strings.Contains(got, "[Error 2 of 2]") {
		t.Errorf("FormatErrors() = %q, want numbered headers for both errors", got)
	}
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("FormatErrors() = %q, want both messages", got)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if got := FormatErrors(nil, false); got != "" {
		t.Errorf("FormatErrors(nil) = %q, want empty string", got)
	}
	if got := FormatErrorsWithContext(nil, 1, false); got != "" {
		t.Errorf("FormatErrorsWithContext(nil) = %q, want empty string", got)
	}
}

func TestFormatErrorsWithContextMultiple(t *testing.T) {
	multi := []*SourceError{
		NewSourceError(lexer.Position{Line: 1, Column: 1}, "first", "a\nb\nc", ""),
		NewSourceError(lexer.Position{Line: 3, Column: 1}, "second", "a\nb\nc", ""),
	}
	got := FormatErrorsWithContext(multi, 1, false)
	if !strings.Contains(got, "[Error 1 of 2]") || !strings.Contains(got, "[Error 2 of 2]") {
		t.Errorf("FormatErrorsWithContext() = %q, want numbered headers", got)
	}
}
