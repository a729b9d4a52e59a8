package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrParseError                                 = errors.New("parse error.")
	ErrParseUnexpectedToken                       = errors.New("Expect expression.")
	ErrParseUnexpectedVariableName                = errors.New("Expect variable name.")
	ErrParseUnexpectedPropertyName                = errors.New("Expect property name after '.'.")
	ErrParseUnexpectedSuperclassName              = errors.New("Expect superclass name.")
	ErrParseUnexpectedSuperDot                    = errors.New("Expect '.' after 'super'.")
	ErrParseUnexpectedSuperMethod                 = errors.New("Expect superclass method name.")
	ErrParseInvalidAssignmentTarget               = errors.New("Invalid assignment target.")
	ErrParseExpectedRightParenToken               = errors.New("Expect ')' after expression.")
	ErrParseExpectedRightParenArgsToken           = errors.New("Expect ')' after arguments.")
	ErrParseExpectedLeftParentIfToken             = errors.New("Expect '(' after 'if'.")
	ErrParseExpectedRightParentIfToken            = errors.New("Expect ')' after if condition.")
	ErrParseExpectedLeftParentWhileToken          = errors.New("Expect '(' after 'while'.")
	ErrParseExpectedRightParentWhileToken         = errors.New("Expect ')' after condition.")
	ErrParseExpectedLeftParentForToken            = errors.New("Expect '(' after 'for'.")
	ErrParseExpectedRightParentForToken           = errors.New("Expect ')' after for clauses.")
	ErrParseExpectedLeftCurlyClassToken           = errors.New("Expect '{' before class body.")
	ErrParseExpectedRightCurlyClassToken          = errors.New("Expect '}' after class body.")
	ErrParseExpectedRightCurlyBlockToken          = errors.New("Expect '}' after block.")
	ErrParseExpectedSemicolonTokenAfterPrintValue = errors.New("Expect ';' after value.")
	ErrParseExpectedSemicolonTokenAfterExpr       = errors.New("Expect ';' after expression.")
	ErrParseExpectedSemicolonTokenAfterVar        = errors.New("Expect ';' after variable declaration.")
	ErrParseExpectedSemicolonAfterForLoopCond     = errors.New("Expect ';' after loop condition.")
	ErrParseExpectedSemicolonTokenAfterReturn     = errors.New("Expect ';' after return value.")
	ErrParseUnexpectedParameterName               = errors.New("Expect parameter name.")
	ErrParseExpectedRightParentFunToken           = errors.New("Expect ')' after parameters.")
	ErrParseTooManyArguments                      = errors.New("Can't have more than 255 arguments.")
	ErrParseTooManyParameters                     = errors.New("Can't have more than 255 parameters.")
)

func ErrParseExpectedIdentifierKindError(kind string) error {
	return fmt.Errorf("Expect %s name.", kind)
}

func ErrParseExpectedLeftParenError(kind string) error {
	return fmt.Errorf("Expect '(' after %s name.", kind)
}

func ErrParseExpectedLeftBraceFunToken(kind string) error {
	return fmt.Errorf("Expect '{' before %s body.", kind)
}

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

type ParserError struct {
	tok   *token.Token
	cause error
}

// Token is the token the parser stopped at.
func (p *ParserError) Token() *token.Token {
	return p.tok
}

// Error implements error.
func (p *ParserError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %v", p.tok.Line, where(p.tok), p.cause)
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

func where(tok *token.Token) string {
	if tok.IsEOF() {
		return "at end"
	}
	return fmt.Sprintf("at '%s'", tok.Lexeme)
}

var (
	_ error     = (*ParserError)(nil)
	_ unwrapper = (*ParserError)(nil)
)
