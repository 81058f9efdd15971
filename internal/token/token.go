// Package token defines lexical tokens for Quill.
package token

// Type represents a lexical token type.
type Type uint8

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF
	HOSTCHUNK // one raw line of an embedded host-code section

	// Operators and delimiters
	operatorStart
	ASSIGN // =
	EQ     // ==
	NEQ    // !=
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	AND    // &&
	OR     // ||
	BANG   // !

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	DOT       // .
	operatorEnd

	// Keywords
	keywordStart
	VAR      // var
	ACTOR    // actor
	DIALOGUE // dialogue
	QUEST    // quest
	FUNC     // func
	ON       // on
	IF       // if
	ELSE     // else
	FOR      // for
	IN       // in
	WHILE    // while
	RETURN   // return
	NODE     // node
	TRUE     // true
	FALSE    // false
	NULL     // null
	keywordEnd

	// Literals
	IDENT  // identifier
	NUMBER // numeric literal
	STRING // string literal (raw, including quotes)
)

var names = map[Type]string{
	ILLEGAL:   "illegal",
	EOF:       "end of file",
	HOSTCHUNK: "host code",
	ASSIGN:    "=",
	EQ:        "==",
	NEQ:       "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	AND:       "&&",
	OR:        "||",
	BANG:      "!",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	DOT:       ".",
	VAR:       "var",
	ACTOR:     "actor",
	DIALOGUE:  "dialogue",
	QUEST:     "quest",
	FUNC:      "func",
	ON:        "on",
	IF:        "if",
	ELSE:      "else",
	FOR:       "for",
	IN:        "in",
	WHILE:     "while",
	RETURN:    "return",
	NODE:      "node",
	TRUE:      "true",
	FALSE:     "false",
	NULL:      "null",
	IDENT:     "identifier",
	NUMBER:    "number",
	STRING:    "string",
}

// String returns a human-readable name for the token type.
func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "unknown"
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Type) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a reserved keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal or identifier.
func (t Type) IsLiteral() bool {
	return t == IDENT || t == NUMBER || t == STRING
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Type{
	"var":      VAR,
	"actor":    ACTOR,
	"dialogue": DIALOGUE,
	"quest":    QUEST,
	"func":     FUNC,
	"on":       ON,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"in":       IN,
	"while":    WHILE,
	"return":   RETURN,
	"node":     NODE,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if the name is reserved, otherwise IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
