// Package lexer implements the mode-switching character cursor and
// tokenizer for Classic ASP/VBScript source: a byte-level cursor with
// typed character-class predicates (Cursor), and a token-builder state
// machine (Tokenizer) that alternates between template text and script
// token production across ASP delimiters.
package lexer

import (
	"fmt"
	"strings"
)

// Mode is the tokenizer's current scanning mode.
type Mode int

const (
	TemplateMode Mode = iota
	ScriptMode
)

// TokenizerError is fatal for the current document: it carries the
// offending character (if any) and the location at which scanning failed.
type TokenizerError struct {
	Message string
	Pos     Position
}

func (e *TokenizerError) Error() string {
	return fmt.Sprintf("tokenizer error at %s: %s", e.Pos, e.Message)
}

func newTokenizerError(pos Position, format string, args ...any) *TokenizerError {
	return &TokenizerError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Tokenizer is a pushdown state machine producing a lazy token stream. It
// owns a Cursor for the duration of its scope; see Open/Close.
type Tokenizer struct {
	cur    *Cursor
	source string
	mode   Mode
	cur_   Token // current token (last produced by Advance)
	have   bool
	verify bool    // try_consume default casefold behavior note
	pending []Token // queued tokens from an already-scanned include directive
}

// TokenizerOption configures a Tokenizer at construction.
type TokenizerOption func(*Tokenizer)

// WithStartMode overrides the initial scanning mode (default TemplateMode).
func WithStartMode(m Mode) TokenizerOption {
	return func(t *Tokenizer) { t.mode = m }
}

// New opens a Tokenizer over source. Callers must call Close when done.
func New(source string, opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{
		cur:    Open(source),
		source: source,
		mode:   TemplateMode,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close releases the underlying cursor.
func (t *Tokenizer) Close(err error) error {
	return t.cur.Close(err)
}

// Mode reports the tokenizer's current scanning mode.
func (t *Tokenizer) Mode() Mode { return t.mode }

// SetMode forces the scanning mode; used by the program driver at ASP
// delimiter boundaries.
func (t *Tokenizer) SetMode(m Mode) { t.mode = m }

// TokenizerMark is an opaque snapshot usable with Reset for backtracking.
type TokenizerMark struct {
	cs      CursorState
	mode    Mode
	current Token
	have    bool
	pending []Token
}

// Mark snapshots the tokenizer's full state.
func (t *Tokenizer) Mark() (TokenizerMark, error) {
	cs, err := t.cur.Save()
	if err != nil {
		return TokenizerMark{}, err
	}
	return TokenizerMark{cs: cs, mode: t.mode, current: t.cur_, have: t.have, pending: append([]Token{}, t.pending...)}, nil
}

// Reset rewinds the tokenizer to a previously captured Mark.
func (t *Tokenizer) Reset(m TokenizerMark) error {
	if err := t.cur.Restore(m.cs); err != nil {
		return err
	}
	t.mode, t.cur_, t.have = m.mode, m.current, m.have
	t.pending = append([]Token{}, m.pending...)
	return nil
}

// Current returns the last token produced by Advance. Calling it before
// the first Advance returns the zero Token.
func (t *Tokenizer) Current() Token { return t.cur_ }

// GetTokenCode returns the current token's source slice, optionally
// casefolded (lower-cased) for case-insensitive comparisons.
func (t *Tokenizer) GetTokenCode(casefold bool) string {
	code := t.cur_.Text(t.source)
	if casefold {
		return strings.ToLower(code)
	}
	return code
}

// Advance produces the next token, dispatching on the current mode.
func (t *Tokenizer) Advance() (Token, error) {
	if len(t.pending) > 0 {
		tok := t.pending[0]
		t.pending = t.pending[1:]
		t.cur_ = tok
		t.have = true
		return tok, nil
	}
	exhausted, err := t.cur.Exhausted()
	if err != nil {
		return Token{}, err
	}
	if exhausted {
		t.cur_ = Token{Kind: EOF, Span: Span{Start: len(t.source), Stop: len(t.source)}, Debug: ptr(t.cur.Position())}
		t.have = true
		return t.cur_, nil
	}
	var tok Token
	if t.mode == TemplateMode {
		tok, err = t.scanTemplate()
	} else {
		tok, err = t.scanScript()
	}
	if err != nil {
		return Token{}, err
	}
	t.cur_ = tok
	t.have = true
	return tok, nil
}

func ptr[T any](v T) *T { return &v }

// ---- template-text scanning ----

func (t *Tokenizer) scanTemplate() (Token, error) {
	startIdx, _ := t.cur.CurrentIdx()
	startPos := t.cur.Position()

	if t.peekLiteral("<%@") {
		return t.consumeLiteral(DELIM_START_PROCESSING, "<%@", startIdx, startPos)
	}
	if t.peekLiteral("<%=") {
		return t.consumeLiteral(DELIM_START_OUTPUT, "<%=", startIdx, startPos)
	}
	if t.peekLiteral("<%") {
		return t.consumeLiteral(DELIM_START_SCRIPT, "<%", startIdx, startPos)
	}
	if t.peekLiteral("<!--") && t.peekIncludeAhead() {
		return t.scanIncludeDirective()
	}

	// Otherwise accumulate FILE_TEXT up to (not including) the next
	// delimiter or include comment.
	for {
		exhausted, err := t.cur.Exhausted()
		if err != nil {
			return Token{}, err
		}
		if exhausted {
			break
		}
		if t.peekLiteral("<%") || (t.peekLiteral("<!--") && t.peekIncludeAhead()) {
			break
		}
		ch, _, _ := t.cur.CurrentChar()
		if ch == '\n' {
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
			if err := t.cur.AdvanceLine(); err != nil {
				return Token{}, err
			}
			continue
		}
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}
	stopIdx, _ := t.cur.CurrentIdx()
	return Token{Kind: FILE_TEXT, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) peekLiteral(lit string) bool {
	idx, _ := t.cur.CurrentIdx()
	return strings.HasPrefix(t.source[idx:], lit)
}

func (t *Tokenizer) peekIncludeAhead() bool {
	idx, _ := t.cur.CurrentIdx()
	rest := t.source[idx:]
	if !strings.HasPrefix(rest, "<!--") {
		return false
	}
	body := rest[len("<!--"):]
	if end := strings.Index(body, "-->"); end != -1 {
		body = body[:end]
	}
	return strings.HasPrefix(strings.TrimSpace(body), "#include")
}

func (t *Tokenizer) consumeLiteral(kind TokenKind, lit string, startIdx int, startPos Position) (Token, error) {
	for range lit {
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}
	stopIdx, _ := t.cur.CurrentIdx()
	switch kind {
	case DELIM_START_SCRIPT, DELIM_START_PROCESSING, DELIM_START_OUTPUT:
		t.mode = ScriptMode
	case DELIM_END:
		t.mode = TemplateMode
	}
	return Token{Kind: kind, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

// pending holds the tokens still to be yielded for the include directive
// currently being unpacked; scanTemplate enters scanIncludeDirective only
// when peekIncludeAhead sees a comment whose body opens with "#include",
// and a directive that is unterminated or missing its type, "=" or quoted
// path is still reported as a TokenizerError there.
// INCLUDE_KW/INCLUDE_TYPE/INCLUDE_PATH/HTML_END_COMMENT are queued in one
// pass over the comment body and drained one per Advance call.

// scanIncludeDirective recognizes <!-- #include (file|virtual)="path" -->
// and yields its opening HTML_START_COMMENT token, queuing the remaining
// INCLUDE_KW, INCLUDE_TYPE, INCLUDE_PATH, HTML_END_COMMENT tokens for the
// driver to pull via subsequent Advance calls.
func (t *Tokenizer) scanIncludeDirective() (Token, error) {
	startIdx, _ := t.cur.CurrentIdx()
	startPos := t.cur.Position()
	idx, _ := t.cur.CurrentIdx()
	rest := t.source[idx:]

	closeRel := strings.Index(rest, "-->")
	if closeRel == -1 {
		return Token{}, newTokenizerError(startPos, "unterminated include directive comment")
	}
	body := rest[:closeRel+3]

	// Advance the cursor past "<!--".
	for range "<!--" {
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}
	afterStart, _ := t.cur.CurrentIdx()

	kwRel := strings.Index(body, "#include")
	typeRel := -1
	typeWord := ""
	for _, w := range []string{"file", "virtual"} {
		if r := strings.Index(strings.ToLower(body), w); r != -1 && (typeRel == -1 || r < typeRel) {
			typeRel, typeWord = r, w
		}
	}
	eqRel := strings.Index(body, "=")
	q1 := strings.IndexByte(body, '"')
	q2 := -1
	if q1 != -1 {
		if r := strings.IndexByte(body[q1+1:], '"'); r != -1 {
			q2 = q1 + 1 + r
		}
	}
	if kwRel == -1 || typeRel == -1 || eqRel == -1 || q1 == -1 || q2 == -1 {
		return Token{}, newTokenizerError(startPos, "malformed include directive")
	}

	kwStart := idx + kwRel
	kwStop := kwStart + len("#include")
	typeStart := idx + typeRel
	typeStop := typeStart + len(typeWord)
	pathStart := idx + q1 + 1
	pathStop := idx + q2
	endStart := idx + closeRel
	endStop := idx + closeRel + 3

	t.pending = []Token{
		{Kind: INCLUDE_KW, Span: Span{Start: kwStart, Stop: kwStop}, Debug: ptr(startPos)},
		{Kind: INCLUDE_TYPE, Span: Span{Start: typeStart, Stop: typeStop}, Debug: ptr(startPos)},
		{Kind: INCLUDE_PATH, Span: Span{Start: pathStart, Stop: pathStop}, Debug: ptr(startPos)},
		{Kind: HTML_END_COMMENT, Span: Span{Start: endStart, Stop: endStop}, Debug: ptr(startPos)},
	}
	// Jump the cursor straight to the comment close; the queued tokens
	// carry their own (already-known) spans.
	for t.mustIdx() < endStop {
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}

	return Token{Kind: HTML_START_COMMENT, Span: Span{Start: startIdx, Stop: afterStart}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) mustIdx() int {
	i, _ := t.cur.CurrentIdx()
	return i
}

// ---- script-mode scanning ----

func (t *Tokenizer) scanScript() (Token, error) {
	for {
		exhausted, err := t.cur.Exhausted()
		if err != nil {
			return Token{}, err
		}
		if exhausted {
			return Token{Kind: EOF, Span: Span{Start: len(t.source), Stop: len(t.source)}}, nil
		}

		startIdx, _ := t.cur.CurrentIdx()
		startPos := t.cur.Position()
		ch, _, _ := t.cur.CurrentChar()

		switch {
		case t.peekLiteral("%>"):
			return t.consumeLiteral(DELIM_END, "%>", startIdx, startPos)

		case ch == ' ' || ch == '\t':
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
			continue

		case ch == '_':
			// Line continuation: '_' WS* CRLF; any other '_' here is a
			// TokenizerError (an underscore can't start a bare
			// identifier in this grammar, so this is unambiguous).
			handled, err := t.tryLineContinuation()
			if err != nil {
				return Token{}, err
			}
			if handled {
				continue
			}
			return Token{}, newTokenizerError(startPos, "unexpected '_'")

		case ch == '\'':
			t.skipComment()
			continue

		case ch == ':' || ch == '\r' || ch == '\n':
			return t.scanNewline(startIdx, startPos)

		case isLetter(ch) || ch == '[':
			return t.scanIdentifierOrRem(startIdx, startPos)

		case ch == '.':
			return t.scanDotLeading(startIdx, startPos)

		case isDigit(ch):
			return t.scanNumber(startIdx, startPos)

		case ch == '"':
			return t.scanString(startIdx, startPos)

		case ch == '#':
			return t.scanDate(startIdx, startPos)

		case ch == '&':
			return t.scanAmp(startIdx, startPos)

		default:
			return t.scanSymbol(startIdx, startPos)
		}
	}
}

func (t *Tokenizer) tryLineContinuation() (bool, error) {
	mark, err := t.cur.Save()
	if err != nil {
		return false, err
	}
	if _, err := t.cur.Advance(); err != nil { // consume '_'
		return false, err
	}
	for {
		ok, err := t.cur.TryNextClass(WS)
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
	}
	ch, ok, _ := t.cur.CurrentChar()
	if !ok || (ch != '\r' && ch != '\n') {
		if err := t.cur.Restore(mark); err != nil {
			return false, err
		}
		return false, nil
	}
	if ch == '\r' {
		if _, err := t.cur.Advance(); err != nil {
			return false, err
		}
	}
	ch2, ok2, _ := t.cur.CurrentChar()
	if ok2 && ch2 == '\n' {
		if _, err := t.cur.Advance(); err != nil {
			return false, err
		}
	}
	if err := t.cur.AdvanceLine(); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tokenizer) skipComment() {
	for {
		exhausted, _ := t.cur.Exhausted()
		if exhausted {
			return
		}
		ch, _, _ := t.cur.CurrentChar()
		if ch == ':' || ch == '\r' || ch == '\n' {
			return
		}
		_, _ = t.cur.Advance()
	}
}

func (t *Tokenizer) scanNewline(startIdx int, startPos Position) (Token, error) {
	for {
		exhausted, err := t.cur.Exhausted()
		if err != nil {
			return Token{}, err
		}
		if exhausted {
			break
		}
		ch, _, _ := t.cur.CurrentChar()
		switch ch {
		case ':':
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
		case '\r':
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
			ch2, ok2, _ := t.cur.CurrentChar()
			if ok2 && ch2 == '\n' {
				if _, err := t.cur.Advance(); err != nil {
					return Token{}, err
				}
			}
			if err := t.cur.AdvanceLine(); err != nil {
				return Token{}, err
			}
		case '\n':
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
			if err := t.cur.AdvanceLine(); err != nil {
				return Token{}, err
			}
		default:
			stopIdx, _ := t.cur.CurrentIdx()
			return Token{Kind: NEWLINE, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
		}
	}
	stopIdx, _ := t.cur.CurrentIdx()
	return Token{Kind: NEWLINE, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) scanIdentifierOrRem(startIdx int, startPos Position) (Token, error) {
	leadingDot := false
	ch, _, _ := t.cur.CurrentChar()
	if ch == '[' {
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		for {
			ok, err := t.cur.Is(ID_NAME_CHAR)
			if err != nil {
				return Token{}, err
			}
			if !ok {
				break
			}
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
		}
		if err := t.cur.AssertNextChar(']'); err != nil {
			return Token{}, newTokenizerError(startPos, "%v", err)
		}
	} else {
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		for {
			ok, err := t.cur.Is(ID_TAIL)
			if err != nil {
				return Token{}, err
			}
			if !ok {
				break
			}
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
		}
	}
	idEnd, _ := t.cur.CurrentIdx()
	word := strings.ToLower(t.source[startIdx:idEnd])
	trailingDot := false
	if c, ok, _ := t.cur.CurrentChar(); ok && c == '.' {
		mark, _ := t.cur.Save()
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		nextIsID := false
		if c2, ok2, _ := t.cur.CurrentChar(); ok2 {
			nextIsID = isLetter(c2) || c2 == '['
		}
		if nextIsID {
			if word == "rem" {
				return Token{}, newTokenizerError(startPos, "dotted identifier may not end in Rem")
			}
			trailingDot = true
		} else {
			if err := t.cur.Restore(mark); err != nil {
				return Token{}, err
			}
		}
	}
	if !trailingDot && word == "rem" {
		t.skipComment()
		return t.scanScript()
	}
	stopIdx, _ := t.cur.CurrentIdx()
	kind := IDENTIFIER
	switch {
	case leadingDot && trailingDot:
		kind = IDENTIFIER_DOTIDDOT
	case trailingDot:
		kind = IDENTIFIER_IDDOT
	case leadingDot:
		kind = IDENTIFIER_DOTID
	}
	return Token{Kind: kind, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) scanDotLeading(startIdx int, startPos Position) (Token, error) {
	mark, err := t.cur.Save()
	if err != nil {
		return Token{}, err
	}
	if _, err := t.cur.Advance(); err != nil { // consume '.'
		return Token{}, err
	}
	ch, ok, _ := t.cur.CurrentChar()
	switch {
	case ok && isDigit(ch):
		if err := t.cur.Restore(mark); err != nil {
			return Token{}, err
		}
		return t.scanNumber(startIdx, startPos)
	case ok && (isLetter(ch) || ch == '['):
		// .identifier (leading-dot form)
		idStart, _ := t.cur.CurrentIdx()
		idTok, err := t.scanIdentifierOrRem(idStart, startPos)
		if err != nil {
			return Token{}, err
		}
		kind := IDENTIFIER_DOTID
		if idTok.Kind == IDENTIFIER_IDDOT {
			kind = IDENTIFIER_DOTIDDOT
		}
		stopIdx, _ := t.cur.CurrentIdx()
		return Token{Kind: kind, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
	default:
		return Token{}, newTokenizerError(startPos, "'.' must be followed by a digit or identifier")
	}
}

func (t *Tokenizer) scanNumber(startIdx int, startPos Position) (Token, error) {
	isFloat := false
	for {
		ok, _ := t.cur.Is(DIGIT)
		if !ok {
			break
		}
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}
	if ch, ok, _ := t.cur.CurrentChar(); ok && ch == '.' {
		mark, _ := t.cur.Save()
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		if digOK, _ := t.cur.Is(DIGIT); digOK {
			isFloat = true
			for {
				ok, _ := t.cur.Is(DIGIT)
				if !ok {
					break
				}
				if _, err := t.cur.Advance(); err != nil {
					return Token{}, err
				}
			}
		} else {
			if err := t.cur.Restore(mark); err != nil {
				return Token{}, err
			}
		}
	}
	if ch, ok, _ := t.cur.CurrentChar(); ok && (ch == 'e' || ch == 'E') {
		mark, _ := t.cur.Save()
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		if ch2, ok2, _ := t.cur.CurrentChar(); ok2 && (ch2 == '+' || ch2 == '-') {
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
		}
		if digOK, _ := t.cur.Is(DIGIT); digOK {
			isFloat = true
			for {
				ok, _ := t.cur.Is(DIGIT)
				if !ok {
					break
				}
				if _, err := t.cur.Advance(); err != nil {
					return Token{}, err
				}
			}
		} else {
			if err := t.cur.Restore(mark); err != nil {
				return Token{}, err
			}
		}
	}
	stopIdx, _ := t.cur.CurrentIdx()
	kind := LITERAL_INT
	if isFloat {
		kind = LITERAL_FLOAT
	}
	return Token{Kind: kind, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) scanAmp(startIdx int, startPos Position) (Token, error) {
	if _, err := t.cur.Advance(); err != nil { // consume '&'
		return Token{}, err
	}
	ch, ok, _ := t.cur.CurrentChar()
	switch {
	case ok && (ch == 'h' || ch == 'H'):
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		if hexOK, _ := t.cur.Is(HEX_DIGIT); !hexOK {
			return Token{}, newTokenizerError(startPos, "expected hex digit after &H")
		}
		for {
			ok, _ := t.cur.Is(HEX_DIGIT)
			if !ok {
				break
			}
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
		}
		_, _ = t.cur.TryNextChar('&')
		stopIdx, _ := t.cur.CurrentIdx()
		return Token{Kind: LITERAL_HEX, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
	case ok && isOctDigit(ch):
		for {
			ok, _ := t.cur.Is(OCT_DIGIT)
			if !ok {
				break
			}
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
		}
		_, _ = t.cur.TryNextChar('&')
		stopIdx, _ := t.cur.CurrentIdx()
		return Token{Kind: LITERAL_OCT, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
	default:
		// Bare '&' is the concatenation SYMBOL.
		stopIdx, _ := t.cur.CurrentIdx()
		return Token{Kind: SYMBOL, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
	}
}

func (t *Tokenizer) scanString(startIdx int, startPos Position) (Token, error) {
	if _, err := t.cur.Advance(); err != nil { // consume opening '"'
		return Token{}, err
	}
	for {
		exhausted, err := t.cur.Exhausted()
		if err != nil {
			return Token{}, err
		}
		if exhausted {
			return Token{}, newTokenizerError(startPos, "unterminated string literal")
		}
		ch, _, _ := t.cur.CurrentChar()
		if ch == '"' {
			if _, err := t.cur.Advance(); err != nil {
				return Token{}, err
			}
			// Doubled quote is an escaped quote; keep scanning.
			if ch2, ok2, _ := t.cur.CurrentChar(); ok2 && ch2 == '"' {
				if _, err := t.cur.Advance(); err != nil {
					return Token{}, err
				}
				continue
			}
			break
		}
		if ch == '\r' || ch == '\n' {
			return Token{}, newTokenizerError(startPos, "unterminated string literal")
		}
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}
	stopIdx, _ := t.cur.CurrentIdx()
	return Token{Kind: LITERAL_STRING, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) scanDate(startIdx int, startPos Position) (Token, error) {
	if _, err := t.cur.Advance(); err != nil { // consume opening '#'
		return Token{}, err
	}
	for {
		ok, err := t.cur.Is(DATE_CHAR)
		if err != nil {
			return Token{}, err
		}
		if !ok {
			break
		}
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
	}
	if err := t.cur.AssertNextChar('#'); err != nil {
		return Token{}, newTokenizerError(startPos, "unterminated date literal")
	}
	stopIdx, _ := t.cur.CurrentIdx()
	return Token{Kind: LITERAL_DATE, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

func (t *Tokenizer) scanSymbol(startIdx int, startPos Position) (Token, error) {
	two := ""
	idx, _ := t.cur.CurrentIdx()
	if idx+2 <= len(t.source) {
		two = t.source[idx : idx+2]
	}
	switch two {
	case ">=", "=>", "<=", "=<", "<>":
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		if _, err := t.cur.Advance(); err != nil {
			return Token{}, err
		}
		stopIdx, _ := t.cur.CurrentIdx()
		return Token{Kind: SYMBOL, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
	}
	if _, err := t.cur.Advance(); err != nil {
		return Token{}, err
	}
	stopIdx, _ := t.cur.CurrentIdx()
	return Token{Kind: SYMBOL, Span: Span{Start: startIdx, Stop: stopIdx}, Debug: ptr(startPos)}, nil
}

// ---- parser-facing query/consume helpers ----

// TryTokenType reports whether Current() has the given kind.
func (t *Tokenizer) TryTokenType(kind TokenKind) bool {
	return t.cur_.Kind == kind
}

// TryMultipleTokenType reports whether Current() has any of the given kinds.
func (t *Tokenizer) TryMultipleTokenType(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if t.cur_.Kind == k {
			return true
		}
	}
	return false
}

// TryConsume conditionally advances past the current token if it has kind
// and, when code != "", its text matches code (casefolded when casefold is
// true; if useIn is true, code is treated as a set of acceptable
// single-character matches).
func (t *Tokenizer) TryConsume(kind TokenKind, code string, casefold bool, useIn bool) (bool, error) {
	if t.cur_.Kind != kind {
		return false, nil
	}
	if code != "" {
		text := t.GetTokenCode(casefold)
		match := code
		if casefold {
			match = strings.ToLower(code)
		}
		if useIn {
			if !strings.Contains(match, text) {
				return false, nil
			}
		} else if text != match {
			return false, nil
		}
	}
	if _, err := t.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

// AssertConsume consumes the current token or fails with a ParserError-shaped error.
func (t *Tokenizer) AssertConsume(kind TokenKind, code string) error {
	ok, err := t.TryConsume(kind, code, true, false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected %s %q, got %s %q at %s",
			kind, code, t.cur_.Kind, t.GetTokenCode(false), t.cur_.Debug)
	}
	return nil
}

// TrySafeKeywordID reports whether the current token is an identifier
// spelling a safe keyword, returning its casefolded text.
func (t *Tokenizer) TrySafeKeywordID() (string, bool) {
	if !t.cur_.Kind.IsIdentifier() {
		return "", false
	}
	word := t.GetTokenCode(true)
	if IsSafeKeyword(word) {
		return word, true
	}
	return "", false
}

// TryKeywordID reports whether the current token spells any reserved or
// safe keyword, returning its casefolded text (used where the grammar
// permits a keyword in identifier position, e.g. `Property`).
func (t *Tokenizer) TryKeywordID() (string, bool) {
	if !t.cur_.Kind.IsIdentifier() {
		return "", false
	}
	word := t.GetTokenCode(true)
	if IsKeyword(word) {
		return word, true
	}
	return "", false
}
