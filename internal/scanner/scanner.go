package scanner

import (
	"strconv"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// Scanner turns source text into a token stream terminated by EOF.
type Scanner interface {
	Scan() ([]token.Token, error)
}

const eof = rune(0)

type scanner struct {
	source               []rune
	tokens               []token.Token
	start, current, line int
	hadError             bool
	reporter             loxerrors.ErrReporter
}

// NewScanner returns a new Scanner. Every lexical error is sent to reporter
// as it is found; Scan keeps going and only signals failure at the end.
func NewScanner(input string, reporter loxerrors.ErrReporter) Scanner {
	return &scanner{source: []rune(input), line: 1, reporter: reporter}
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))

	if s.hadError {
		return s.tokens, loxerrors.ErrScanError
	}
	return s.tokens, nil
}

func (s *scanner) scanToken() {
	switch c := s.advance(); c {
	case '(':
		s.emit(token.LEFT_PAREN)
	case ')':
		s.emit(token.RIGHT_PAREN)
	case '{':
		s.emit(token.LEFT_BRACE)
	case '}':
		s.emit(token.RIGHT_BRACE)
	case ',':
		s.emit(token.COMMA)
	case '.':
		s.emit(token.DOT)
	case '-':
		s.emit(token.MINUS)
	case '+':
		s.emit(token.PLUS)
	case ';':
		s.emit(token.SEMICOLON)
	case '*':
		s.emit(token.STAR)
	case '!':
		s.emit(s.either('=', token.BANG_EQUAL, token.BANG))
	case '=':
		s.emit(s.either('=', token.EQUAL_EQUAL, token.EQUAL))
	case '<':
		s.emit(s.either('=', token.LESS_EQUAL, token.LESS))
	case '>':
		s.emit(s.either('=', token.GREATER_EQUAL, token.GREATER))
	case '/':
		switch {
		case s.match('/'):
			s.lineComment()
		case s.match('*'):
			s.blockComment()
		default:
			s.emit(token.SLASH)
		}
	case ' ', '\r', '\t', '\n':
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.reportError(loxerrors.ErrScanUnexpectedCharacter)
		}
	}
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) peek() rune {
	return s.peekAt(0)
}

func (s *scanner) peekAt(offset int) rune {
	if s.current+offset >= len(s.source) {
		return eof
	}
	return s.source[s.current+offset]
}

// advance consumes one rune; line tracking happens here so multi-line
// strings and comments keep the counter right.
func (s *scanner) advance() rune {
	c := s.source[s.current]
	if c == '\n' {
		s.line++
	}
	s.current++
	return c
}

func (s *scanner) match(expected rune) bool {
	if s.isAtEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *scanner) either(next rune, matched, single token.TokenType) token.TokenType {
	if s.match(next) {
		return matched
	}
	return single
}

func (s *scanner) lexeme() string {
	return string(s.source[s.start:s.current])
}

func (s *scanner) emit(t token.TokenType) {
	s.emitLiteral(t, nil)
}

// The line of a token is the line its lexeme ends on; for a multi-line string
// that is the closing quote.
func (s *scanner) emitLiteral(t token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(t, s.lexeme(), literal, s.line))
}

func (s *scanner) lineComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// blockComment skips a /* */ comment; comments nest.
func (s *scanner) blockComment() {
	for depth := 1; depth > 0; {
		if s.isAtEnd() {
			s.reportError(loxerrors.ErrScanUnterminatedComment)
			return
		}
		switch {
		case s.peek() == '*' && s.peekAt(1) == '/':
			depth--
			s.current += 2
		case s.peek() == '/' && s.peekAt(1) == '*':
			depth++
			s.current += 2
		default:
			s.advance()
		}
	}
}

func (s *scanner) string() {
	for !s.isAtEnd() && s.peek() != '"' {
		s.advance()
	}
	if s.isAtEnd() {
		s.reportError(loxerrors.ErrScanUnterminatedString)
		return
	}
	s.advance()

	s.emitLiteral(token.STRING, string(s.source[s.start+1:s.current-1]))
}

func (s *scanner) number() {
	s.digits()
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance()
		s.digits()
	}

	value, err := strconv.ParseFloat(s.lexeme(), 64)
	if err != nil {
		s.reportError(err)
		return
	}
	s.emitLiteral(token.NUMBER, value)
}

func (s *scanner) digits() {
	for isDigit(s.peek()) {
		s.advance()
	}
}

func (s *scanner) identifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	s.emit(token.LookupIdent(s.lexeme()))
}

func (s *scanner) reportError(err error) {
	s.hadError = true
	s.reporter.ReportError(loxerrors.NewScanError(s.line, err))
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

var _ Scanner = (*scanner)(nil)
