package lexer

import "fmt"

// Position is a 1-based line/column location in a source document.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, Stop) into the source string.
type Span struct {
	Start int
	Stop  int
}

// TokenKind enumerates every kind of token the tokenizer can produce.
type TokenKind int

const (
	ILLEGAL TokenKind = iota
	EOF

	NEWLINE
	SYMBOL

	// Template-text / ASP delimiter tokens.
	FILE_TEXT
	DELIM_START_SCRIPT
	DELIM_START_PROCESSING
	DELIM_START_OUTPUT
	DELIM_END
	HTML_START_COMMENT
	HTML_END_COMMENT
	INCLUDE_KW
	INCLUDE_TYPE
	INCLUDE_PATH

	// Identifier variants (dot-adjacency encoded in the kind).
	IDENTIFIER
	IDENTIFIER_IDDOT
	IDENTIFIER_DOTID
	IDENTIFIER_DOTIDDOT

	// Literals.
	LITERAL_STRING
	LITERAL_INT
	LITERAL_HEX
	LITERAL_OCT
	LITERAL_FLOAT
	LITERAL_DATE
)

var tokenKindNames = map[TokenKind]string{
	ILLEGAL:                 "ILLEGAL",
	EOF:                     "EOF",
	NEWLINE:                 "NEWLINE",
	SYMBOL:                  "SYMBOL",
	FILE_TEXT:               "FILE_TEXT",
	DELIM_START_SCRIPT:      "DELIM_START_SCRIPT",
	DELIM_START_PROCESSING:  "DELIM_START_PROCESSING",
	DELIM_START_OUTPUT:      "DELIM_START_OUTPUT",
	DELIM_END:               "DELIM_END",
	HTML_START_COMMENT:      "HTML_START_COMMENT",
	HTML_END_COMMENT:        "HTML_END_COMMENT",
	INCLUDE_KW:              "INCLUDE_KW",
	INCLUDE_TYPE:            "INCLUDE_TYPE",
	INCLUDE_PATH:            "INCLUDE_PATH",
	IDENTIFIER:              "IDENTIFIER",
	IDENTIFIER_IDDOT:        "IDENTIFIER_IDDOT",
	IDENTIFIER_DOTID:        "IDENTIFIER_DOTID",
	IDENTIFIER_DOTIDDOT:     "IDENTIFIER_DOTIDDOT",
	LITERAL_STRING:          "LITERAL_STRING",
	LITERAL_INT:             "LITERAL_INT",
	LITERAL_HEX:             "LITERAL_HEX",
	LITERAL_OCT:             "LITERAL_OCT",
	LITERAL_FLOAT:           "LITERAL_FLOAT",
	LITERAL_DATE:            "LITERAL_DATE",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsIdentifier reports whether k is one of the four identifier subkinds.
func (k TokenKind) IsIdentifier() bool {
	switch k {
	case IDENTIFIER, IDENTIFIER_IDDOT, IDENTIFIER_DOTID, IDENTIFIER_DOTIDDOT:
		return true
	default:
		return false
	}
}

// Token is an immutable lexical token: a kind, the source span it came
// from, and an optional line/column for diagnostics.
type Token struct {
	Kind  TokenKind
	Span  Span
	Debug *Position
}

// Text returns the token's literal source slice given the original source.
func (t Token) Text(source string) string {
	if t.Span.Start < 0 || t.Span.Stop > len(source) || t.Span.Start > t.Span.Stop {
		return ""
	}
	return source[t.Span.Start:t.Span.Stop]
}

func (t Token) String() string {
	return fmt.Sprintf("%s%s", t.Kind, t.Span)
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.Stop)
}
