package parser

import (
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

// ParseProgram is the top-level entry point: it drives the tokenizer
// through template text and script regions, merging consecutive
// OutputText runs, enforcing that a ProcessingDirective (if present) is
// the document's very first statement, and resolving include directives
// through the configured IncludeResolver.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	defer p.enter("program")()

	if _, err := p.tok.Advance(); err != nil {
		return nil, p.wrapErr(newParserError(ErrInternal, p.pos(), "tokenizer: %v", err))
	}

	var stmts []ast.GlobalStmt
	seenAny := false
	for !p.is(lexer.EOF) {
		switch {
		case p.is(lexer.FILE_TEXT), p.is(lexer.DELIM_START_OUTPUT), p.is(lexer.HTML_START_COMMENT):
			chunk, err := p.parseOutputText()
			if err != nil {
				return nil, err
			}
			if len(stmts) > 0 {
				if prev, ok := stmts[len(stmts)-1].(*ast.OutputText); ok {
					stmts[len(stmts)-1] = prev.Merge(chunk)
					seenAny = true
					continue
				}
			}
			stmts = append(stmts, chunk)

		case p.is(lexer.DELIM_START_PROCESSING):
			if seenAny {
				return nil, p.wrapErr(newParserError(ErrIllFormedDecl, p.pos(),
					"processing directive must be the first statement in the document"))
			}
			d, err := p.parseProcessingDirective()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, d)

		case p.is(lexer.DELIM_START_SCRIPT):
			if err := p.advance(); err != nil {
				return nil, err
			}
			p.tok.SetMode(lexer.ScriptMode)
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			for !p.is(lexer.DELIM_END) && !p.is(lexer.EOF) {
				gs, err := p.parseGlobalStmt()
				if err != nil {
					return nil, err
				}
				stmts = append(stmts, gs)
				if err := p.skipNewlines(); err != nil {
					return nil, err
				}
			}
			if p.is(lexer.EOF) {
				return nil, p.wrapErr(newParserError(ErrUnclosedScriptMode, p.pos(), "script mode left unclosed at end of document"))
			}
			if err := p.advance(); err != nil { // consume %>
				return nil, err
			}
			p.tok.SetMode(lexer.TemplateMode)

		default:
			return nil, p.wrapErr(newExpectedErr(p.pos(), "template text or script delimiter", p.current(), p.source))
		}
		seenAny = true
	}

	prog := &ast.Program{Stmts: stmts}
	prog.SetSpan(lexer.Span{Start: 0, Stop: len(p.source)})
	return prog, nil
}

// parseProcessingDirective parses `<%@ key=value[, ...] %>`.
func (p *Parser) parseProcessingDirective() (*ast.ProcessingDirective, error) {
	start := p.current().Span.Start
	if err := p.advance(); err != nil { // consume <%@
		return nil, err
	}
	p.tok.SetMode(lexer.ScriptMode)
	var settings []ast.ProcessingSetting
	for !p.is(lexer.DELIM_END) && !p.is(lexer.EOF) {
		tok := p.current()
		if !tok.Kind.IsIdentifier() {
			return nil, p.wrapErr(newExpectedErr(p.pos(), "setting name", tok, p.source))
		}
		key := p.text(true)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		valTok := p.current()
		value := p.text(false)
		if valTok.Kind == lexer.LITERAL_STRING && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		settings = append(settings, ast.ProcessingSetting{Key: key, Value: value})
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(lexer.DELIM_END); err != nil {
		return nil, err
	}
	p.tok.SetMode(lexer.TemplateMode)
	n := &ast.ProcessingDirective{Settings: settings}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseOutputText accumulates one run of template text: verbatim FILE_TEXT
// chunks, `<%= expr %>` output directives, and include directives, each
// recorded in StitchOrder to preserve the original interleaving.
func (p *Parser) parseOutputText() (*ast.OutputText, error) {
	start := p.current().Span.Start
	out := &ast.OutputText{}
	for {
		switch {
		case p.is(lexer.FILE_TEXT):
			tok := p.current()
			out.Chunks = append(out.Chunks, ast.RawChunk{Text: tok.Text(p.source)})
			out.Chunks[len(out.Chunks)-1].SetSpan(tok.Span)
			out.StitchOrder = append(out.StitchOrder, false)
			if err := p.advance(); err != nil {
				return nil, err
			}

		case p.is(lexer.DELIM_START_OUTPUT):
			if err := p.advance(); err != nil {
				return nil, err
			}
			p.tok.SetMode(lexer.ScriptMode)
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			val, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			if err := p.expect(lexer.DELIM_END); err != nil {
				return nil, err
			}
			p.tok.SetMode(lexer.TemplateMode)
			dir := ast.OutputDirective{Value: val}
			dir.SetSpan(val.Span())
			out.Directives = append(out.Directives, dir)
			out.StitchOrder = append(out.StitchOrder, true)

		case p.is(lexer.HTML_START_COMMENT):
			text, err := p.parseIncludeOrPassthrough()
			if err != nil {
				return nil, err
			}
			if text != nil {
				out.Chunks = append(out.Chunks, *text)
				out.StitchOrder = append(out.StitchOrder, false)
			}

		default:
			out.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
			return out, nil
		}
	}
}

// parseIncludeOrPassthrough consumes one HTML_START_COMMENT token. If the
// tokenizer queued the full include sequence (INCLUDE_KW/TYPE/PATH/
// HTML_END_COMMENT), it resolves the include via the configured
// IncludeResolver and returns the resolved text as a single RawChunk (the
// text is not parsed); resolution failures are reported as diagnostics and
// the include degrades to an empty chunk.
func (p *Parser) parseIncludeOrPassthrough() (*ast.RawChunk, error) {
	commentTok := p.current()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.is(lexer.INCLUDE_KW) {
		// An ordinary HTML comment: pass the opening marker through as
		// literal text; scanTemplate will have emitted everything up to
		// it (and will emit the rest) as separate FILE_TEXT runs.
		chunk := &ast.RawChunk{Text: commentTok.Text(p.source)}
		chunk.SetSpan(commentTok.Span)
		return chunk, nil
	}
	if err := p.advance(); err != nil { // consume #include
		return nil, err
	}
	if !p.is(lexer.INCLUDE_TYPE) {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "file or virtual", p.current(), p.source))
	}
	kindWord := p.text(true)
	kind := ast.IncludeFileType
	if kindWord == "virtual" {
		kind = ast.IncludeVirtual
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.is(lexer.INCLUDE_PATH) {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "include path", p.current(), p.source))
	}
	path := p.text(false)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.is(lexer.HTML_END_COMMENT) {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "-->", p.current(), p.source))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.includes == nil {
		p.sink.Report(Diagnostic{Pos: p.pos(), Message: fmt.Sprintf("no include resolver configured for %q", path)})
		return &ast.RawChunk{}, nil
	}
	text, err := p.includes.Resolve(kind, path)
	if err != nil {
		p.sink.Report(Diagnostic{Pos: p.pos(), Message: fmt.Sprintf("include %q: %v", path, err)})
		return &ast.RawChunk{}, nil
	}
	chunk := &ast.RawChunk{Text: text}
	return chunk, nil
}
