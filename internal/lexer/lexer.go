// Package lexer provides Quill source code tokenization.
//
// The lexer captures tokens in raw form: string literals keep their
// enclosing quotes and escape sequences, numbers keep their textual form.
// Decoding and coercion are the AST builder's job, so the concrete parse
// tree stays a faithful image of the source.
package lexer

import (
	"unicode/utf8"

	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/token"
)

// Token represents a scanned token with its type, location and raw text.
// For ILLEGAL tokens, Text carries the error message.
type Token struct {
	Type token.Type
	Loc  ast.Location
	Text string
}

// Lexer tokenizes Quill source code.
type Lexer struct {
	src     []byte
	ch      rune         // current character (0 at EOF)
	offset  int          // byte offset of the next character
	chSize  int          // byte size of the current character
	loc     ast.Location // location of the current character
	nextLoc ast.Location // location of the next character

	pending []Token // queued host-code chunk tokens
}

// New creates a new Lexer for the given source code. The file name is used
// only to label token locations.
func New(src []byte, filename string) *Lexer {
	l := &Lexer{
		src: src,
		nextLoc: ast.Location{
			File:   filename,
			Line:   1,
			Column: 1,
		},
	}
	l.next() // initialize first character
	return l
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	l.skipWhitespace()

	loc := l.loc

	if l.ch == 0 {
		return Token{Type: token.EOF, Loc: loc}
	}

	switch l.ch {
	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQ, Loc: loc, Text: "=="}
		}
		return Token{Type: token.ASSIGN, Loc: loc, Text: "="}

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NEQ, Loc: loc, Text: "!="}
		}
		return Token{Type: token.BANG, Loc: loc, Text: "!"}

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LE, Loc: loc, Text: "<="}
		}
		return Token{Type: token.LT, Loc: loc, Text: "<"}

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GE, Loc: loc, Text: ">="}
		}
		return Token{Type: token.GT, Loc: loc, Text: ">"}

	case '+':
		l.next()
		return Token{Type: token.PLUS, Loc: loc, Text: "+"}
	case '-':
		l.next()
		return Token{Type: token.MINUS, Loc: loc, Text: "-"}
	case '*':
		l.next()
		return Token{Type: token.STAR, Loc: loc, Text: "*"}

	case '/':
		// Could be division or a comment; comments are handled in
		// skipWhitespace, so a surviving '/' is always division.
		l.next()
		return Token{Type: token.SLASH, Loc: loc, Text: "/"}

	case '&':
		l.next()
		if l.ch == '&' {
			l.next()
			return Token{Type: token.AND, Loc: loc, Text: "&&"}
		}
		return Token{Type: token.ILLEGAL, Loc: loc, Text: "unexpected '&'"}

	case '|':
		l.next()
		if l.ch == '|' {
			l.next()
			return Token{Type: token.OR, Loc: loc, Text: "||"}
		}
		return Token{Type: token.ILLEGAL, Loc: loc, Text: "unexpected '|'"}

	case '%':
		if l.peek() == '{' {
			return l.scanHostSection(loc)
		}
		l.next()
		return Token{Type: token.ILLEGAL, Loc: loc, Text: "unexpected '%'"}

	case '(':
		l.next()
		return Token{Type: token.LPAREN, Loc: loc, Text: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Loc: loc, Text: ")"}
	case '{':
		l.next()
		return Token{Type: token.LBRACE, Loc: loc, Text: "{"}
	case '}':
		l.next()
		return Token{Type: token.RBRACE, Loc: loc, Text: "}"}
	case '[':
		l.next()
		return Token{Type: token.LBRACKET, Loc: loc, Text: "["}
	case ']':
		l.next()
		return Token{Type: token.RBRACKET, Loc: loc, Text: "]"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Loc: loc, Text: ","}
	case ';':
		l.next()
		return Token{Type: token.SEMICOLON, Loc: loc, Text: ";"}
	case ':':
		l.next()
		return Token{Type: token.COLON, Loc: loc, Text: ":"}
	case '.':
		l.next()
		return Token{Type: token.DOT, Loc: loc, Text: "."}

	case '"':
		return l.scanString(loc)

	default:
		if isDigit(l.ch) {
			return l.scanNumber(loc)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(loc)
		}
		ch := l.ch
		l.next()
		return Token{Type: token.ILLEGAL, Loc: loc, Text: "unexpected character " + quoteChar(ch)}
	}
}

// scanString scans a string literal and returns it in raw form, including
// the enclosing quotes. Escape sequences are not decoded here; a backslash
// merely prevents the following character from terminating the literal.
func (l *Lexer) scanString(loc ast.Location) Token {
	start := l.curOffset()
	l.next() // consume opening quote

	for l.ch != 0 && l.ch != '"' && l.ch != '\n' {
		if l.ch == '\\' {
			l.next()
			if l.ch == 0 || l.ch == '\n' {
				break
			}
		}
		l.next()
	}

	if l.ch != '"' {
		return Token{Type: token.ILLEGAL, Loc: loc, Text: "unterminated string literal"}
	}
	l.next() // consume closing quote

	return Token{Type: token.STRING, Loc: loc, Text: string(l.src[start:l.curOffset()])}
}

// scanNumber scans a numeric literal: digits with an optional fraction.
// The decimal point is only consumed when followed by a digit, so member
// access after a number stays unambiguous.
func (l *Lexer) scanNumber(loc ast.Location) Token {
	start := l.curOffset()

	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' && isDigit(rune(l.peek())) {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}

	return Token{Type: token.NUMBER, Loc: loc, Text: string(l.src[start:l.curOffset()])}
}

func (l *Lexer) scanIdent(loc ast.Location) Token {
	start := l.curOffset()
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.curOffset()])
	return Token{Type: token.LookupIdent(name), Loc: loc, Text: name}
}

// scanHostSection scans a %{ ... %} host-code section. The raw payload is
// split into one HOSTCHUNK token per source line (newlines included) so the
// builder can concatenate them without a separator. The builder, not the
// lexer, trims the payload.
func (l *Lexer) scanHostSection(loc ast.Location) Token {
	l.next() // consume '%'
	l.next() // consume '{'

	chunkLoc := l.loc
	start := l.curOffset()
	var chunks []Token

	flush := func(end int, withNewline bool) {
		text := string(l.src[start:end])
		if withNewline || text != "" {
			chunks = append(chunks, Token{Type: token.HOSTCHUNK, Loc: chunkLoc, Text: text})
		}
	}

	for {
		if l.ch == 0 {
			return Token{Type: token.ILLEGAL, Loc: loc, Text: "unterminated host code section"}
		}
		if l.ch == '%' && l.peek() == '}' {
			flush(l.curOffset(), false)
			l.next() // consume '%'
			l.next() // consume '}'
			break
		}
		if l.ch == '\n' {
			l.next() // newline belongs to the current chunk
			flush(l.curOffset(), true)
			chunkLoc = l.loc
			start = l.curOffset()
			continue
		}
		l.next()
	}

	if len(chunks) == 0 {
		// Empty section still produces one (empty) chunk so the parser
		// sees the section at all.
		chunks = append(chunks, Token{Type: token.HOSTCHUNK, Loc: chunkLoc})
	}

	l.pending = chunks[1:]
	return chunks[0]
}

// skipWhitespace skips spaces, newlines, and both comment forms.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.next()

		case l.ch == '/' && l.peek() == '/':
			for l.ch != 0 && l.ch != '\n' {
				l.next()
			}

		case l.ch == '/' && l.peek() == '*':
			l.next() // consume '/'
			l.next() // consume '*'
			for l.ch != 0 && !(l.ch == '*' && l.peek() == '/') {
				l.next()
			}
			if l.ch != 0 {
				l.next() // consume '*'
				l.next() // consume '/'
			}

		default:
			return
		}
	}
}

// curOffset returns the byte offset of the current character.
func (l *Lexer) curOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.offset - l.chSize
}

// peek returns the byte after the current character without consuming it.
// Callers only compare it against ASCII characters, which no UTF-8
// continuation or leading byte of a multi-byte rune can equal.
func (l *Lexer) peek() byte {
	if l.offset >= len(l.src) {
		return 0
	}
	return l.src[l.offset]
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = 0
		l.chSize = 0
		l.loc = l.nextLoc // EOF sits one past the last character
		return
	}

	l.loc = l.nextLoc

	// Columns count characters, not bytes.
	if l.src[l.offset] >= utf8.RuneSelf {
		r, size := utf8.DecodeRune(l.src[l.offset:])
		l.offset += size
		l.chSize = size
		l.nextLoc.Column++
		l.ch = r
		return
	}

	l.ch = rune(l.src[l.offset])
	l.chSize = 1
	l.offset++
	l.nextLoc.Column++

	if l.ch == '\n' {
		l.nextLoc.Line++
		l.nextLoc.Column = 1
	}
}

// Helper functions

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func quoteChar(ch rune) string {
	return "'" + string(ch) + "'"
}
