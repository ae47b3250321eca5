package lexer

// SafeKeywords may still appear as identifiers in most grammar positions.
var SafeKeywords = map[string]bool{
	"default":  true,
	"erase":    true,
	"error":    true,
	"explicit": true,
	"property": true,
	"step":     true,
}

// ReservedKeywords can never be used as an identifier.
var ReservedKeywords = map[string]bool{
	"and": true, "byref": true, "byval": true, "call": true, "case": true,
	"class": true, "const": true, "dim": true, "do": true, "each": true,
	"else": true, "elseif": true, "empty": true, "end": true, "eqv": true,
	"exit": true, "false": true, "for": true, "function": true, "get": true,
	"goto": true, "if": true, "imp": true, "in": true, "is": true, "let": true,
	"loop": true, "mod": true, "new": true, "next": true, "not": true,
	"nothing": true, "null": true, "on": true, "option": true, "or": true,
	"preserve": true, "private": true, "public": true, "redim": true,
	"resume": true, "select": true, "set": true, "sub": true, "then": true,
	"to": true, "true": true, "until": true, "wend": true, "while": true,
	"with": true, "xor": true,
}

// IsKeyword reports whether casefolded word is reserved or safe.
func IsKeyword(word string) bool {
	return ReservedKeywords[word] || SafeKeywords[word]
}

// IsSafeKeyword reports whether casefolded word may double as an identifier.
func IsSafeKeyword(word string) bool {
	return SafeKeywords[word]
}

// IsReservedKeyword reports whether casefolded word can never be an identifier.
func IsReservedKeyword(word string) bool {
	return ReservedKeywords[word]
}

// CompareTag distinguishes the ten recognized comparison operators.
type CompareTag int

const (
	COMPARE_IS CompareTag = iota
	COMPARE_ISNOT
	COMPARE_GTEQ
	COMPARE_EQGT
	COMPARE_LTEQ
	COMPARE_EQLT
	COMPARE_GT
	COMPARE_LT
	COMPARE_LTGT
	COMPARE_EQ
)

var compareTagNames = map[CompareTag]string{
	COMPARE_IS:    "Is",
	COMPARE_ISNOT: "Is Not",
	COMPARE_GTEQ:  ">=",
	COMPARE_EQGT:  "=>",
	COMPARE_LTEQ:  "<=",
	COMPARE_EQLT:  "=<",
	COMPARE_GT:    ">",
	COMPARE_LT:    "<",
	COMPARE_LTGT:  "<>",
	COMPARE_EQ:    "=",
}

func (c CompareTag) String() string { return compareTagNames[c] }

// AccessModifier encodes a declaration's visibility, including the fused
// "Public Default" combination.
type AccessModifier int

const (
	AccessNone AccessModifier = iota
	AccessPrivate
	AccessPublic
	AccessPublicDefault
)

func (a AccessModifier) String() string {
	switch a {
	case AccessPrivate:
		return "Private"
	case AccessPublic:
		return "Public"
	case AccessPublicDefault:
		return "Public Default"
	default:
		return ""
	}
}
