package token

import (
	"fmt"
)

// Token is one lexeme of a Lox program. Literal holds the decoded value of
// STRING (string) and NUMBER (float64) tokens and is nil otherwise.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func NewToken(t TokenType, lexeme string, literal any, line int) Token {
	return Token{Type: t, Lexeme: lexeme, Literal: literal, Line: line}
}

// NewTokenHeap is NewToken for call sites that need a stable *Token,
// e.g. synthetic tokens in tests and desugared AST nodes.
func NewTokenHeap(t TokenType, lexeme string, literal any, line int) *Token {
	tt := NewToken(t, lexeme, literal, line)
	return &tt
}

// IsEOF reports whether t terminates the stream.
func (t *Token) IsEOF() bool {
	return t.Type == EOF
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %#v, Line: %d}", t.Type, t.Lexeme, t.Literal, t.Line)
}

var (
	_ fmt.Stringer   = (*Token)(nil)
	_ fmt.GoStringer = (*Token)(nil)
)
