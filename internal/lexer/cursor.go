package lexer

import (
	"fmt"
)

// CharClass names a predicate class tested against the cursor's current
// character.
type CharClass int

const (
	LETTER CharClass = iota
	DIGIT
	STRING_CHAR
	DATE_CHAR
	ID_NAME_CHAR
	HEX_DIGIT
	OCT_DIGIT
	WS
	ID_TAIL
)

// isPrintable reports membership in the historic grammar's printable set:
// {0xA0} union [0x20, 0x7F).
func isPrintable(ch byte) bool {
	return ch == 0xA0 || (ch >= 0x20 && ch < 0x7F)
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

// Cursor is a byte-level reader over ASP/VBScript source with typed
// character-class predicates and line/column bookkeeping. It is not safe
// for use before Open or after Close.
type Cursor struct {
	source    string
	currentCh byte
	currentOK bool
	idx       int
	lineNo    int
	lineStart int
	open      bool
}

// CursorState is an opaque snapshot of a Cursor's position, usable with
// Restore to implement parser backtracking.
type CursorState struct {
	idx       int
	lineNo    int
	lineStart int
}

// ErrCursorClosed is returned by every Cursor method once the cursor has
// been closed (or before it has been opened).
var ErrCursorClosed = fmt.Errorf("cursor: used outside of its active scope")

// Open acquires a Cursor over source. Callers must call Close when done;
// using any other method before Open or after Close returns
// ErrCursorClosed.
func Open(source string) *Cursor {
	c := &Cursor{source: source, lineNo: 1, lineStart: 0, open: true}
	c.load()
	return c
}

// Close releases the cursor. Subsequent method calls return
// ErrCursorClosed. err, if non-nil, is attached to a diagnostic describing
// the current character and position at the moment of closing.
func (c *Cursor) Close(err error) error {
	if !c.open {
		return ErrCursorClosed
	}
	c.open = false
	if err != nil {
		return fmt.Errorf("cursor closed at %s near %q: %w", c.Position(), c.currentRune(), err)
	}
	return nil
}

func (c *Cursor) load() {
	if c.idx >= len(c.source) {
		c.currentOK = false
		return
	}
	c.currentCh = c.source[c.idx]
	c.currentOK = true
}

func (c *Cursor) currentRune() string {
	if !c.currentOK {
		return ""
	}
	return string(c.currentCh)
}

// Exhausted reports whether the cursor has consumed the entire source.
func (c *Cursor) Exhausted() (bool, error) {
	if !c.open {
		return false, ErrCursorClosed
	}
	return !c.currentOK, nil
}

// CurrentChar returns the character at the cursor, and whether one exists.
func (c *Cursor) CurrentChar() (byte, bool, error) {
	if !c.open {
		return 0, false, ErrCursorClosed
	}
	return c.currentCh, c.currentOK, nil
}

// CurrentIdx returns the cursor's current byte offset into the source.
func (c *Cursor) CurrentIdx() (int, error) {
	if !c.open {
		return 0, ErrCursorClosed
	}
	return c.idx, nil
}

// Position returns the cursor's current 1-based line/column.
func (c *Cursor) Position() Position {
	return Position{Line: c.lineNo, Column: c.idx - c.lineStart + 1}
}

// Save captures the cursor's state for later restoration (backtracking).
func (c *Cursor) Save() (CursorState, error) {
	if !c.open {
		return CursorState{}, ErrCursorClosed
	}
	return CursorState{idx: c.idx, lineNo: c.lineNo, lineStart: c.lineStart}, nil
}

// Restore rewinds the cursor to a previously saved state.
func (c *Cursor) Restore(s CursorState) error {
	if !c.open {
		return ErrCursorClosed
	}
	c.idx, c.lineNo, c.lineStart = s.idx, s.lineNo, s.lineStart
	c.load()
	return nil
}

// Advance moves forward one byte and reports whether any input remains.
func (c *Cursor) Advance() (bool, error) {
	if !c.open {
		return false, ErrCursorClosed
	}
	if !c.currentOK {
		return false, nil
	}
	c.idx++
	c.load()
	return c.currentOK, nil
}

// AdvanceLine records a newline boundary: increments lineNo and sets
// lineStart to the current index. Callers invoke this after consuming the
// newline character(s) themselves.
func (c *Cursor) AdvanceLine() error {
	if !c.open {
		return ErrCursorClosed
	}
	c.lineNo++
	c.lineStart = c.idx
	return nil
}

// Is tests the current character against a named class. Returns false
// (not an error) at end of input.
func (c *Cursor) Is(class CharClass) (bool, error) {
	if !c.open {
		return false, ErrCursorClosed
	}
	if !c.currentOK {
		return false, nil
	}
	ch := c.currentCh
	switch class {
	case LETTER:
		return isLetter(ch), nil
	case DIGIT:
		return isDigit(ch), nil
	case STRING_CHAR:
		return ch != '"', nil
	case DATE_CHAR:
		return isPrintable(ch) && ch != '#', nil
	case ID_NAME_CHAR:
		return isPrintable(ch) && ch != '[' && ch != ']', nil
	case HEX_DIGIT:
		return isHexDigit(ch), nil
	case OCT_DIGIT:
		return isOctDigit(ch), nil
	case WS:
		return (ch == ' ' || ch == '\t') && ch != '\r' && ch != '\n', nil
	case ID_TAIL:
		return isLetter(ch) || isDigit(ch) || ch == '_', nil
	default:
		return false, nil
	}
}

// TryNextChar consumes the current character iff it equals want.
func (c *Cursor) TryNextChar(want byte) (bool, error) {
	if !c.open {
		return false, ErrCursorClosed
	}
	if !c.currentOK || c.currentCh != want {
		return false, nil
	}
	_, err := c.Advance()
	return true, err
}

// TryNextClass consumes the current character iff it belongs to class.
func (c *Cursor) TryNextClass(class CharClass) (bool, error) {
	ok, err := c.Is(class)
	if err != nil || !ok {
		return false, err
	}
	_, err = c.Advance()
	return true, err
}

// AssertNextChar consumes want or fails with a TokenizerError-shaped error.
func (c *Cursor) AssertNextChar(want byte) error {
	ok, err := c.TryNextChar(want)
	if err != nil {
		return err
	}
	if !ok {
		got, _, _ := c.CurrentChar()
		return fmt.Errorf("expected %q, got %q at %s", want, rune(got), c.Position())
	}
	return nil
}

// AssertNextClass consumes a character of class or fails.
func (c *Cursor) AssertNextClass(class CharClass) error {
	ok, err := c.TryNextClass(class)
	if err != nil {
		return err
	}
	if !ok {
		got, _, _ := c.CurrentChar()
		return fmt.Errorf("unexpected character %q at %s", rune(got), c.Position())
	}
	return nil
}
