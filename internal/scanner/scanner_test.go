package scanner_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/scanner"
	"github.com/leonardinius/treelox/internal/token"
)

func TestScanTokens(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{"1:EOF"}},
		{"punctuation", "(){},.*+-;/", []string{
			"1:LEFT_PAREN (", "1:RIGHT_PAREN )", "1:LEFT_BRACE {", "1:RIGHT_BRACE }",
			"1:COMMA ,", "1:DOT .", "1:STAR *", "1:PLUS +", "1:MINUS -", "1:SEMICOLON ;", "1:SLASH /",
			"1:EOF",
		}},
		{"bang", "!!", []string{"1:BANG !", "1:BANG !", "1:EOF"}},
		{"longest match", "!====", []string{"1:BANG_EQUAL !=", "1:EQUAL_EQUAL ==", "1:EQUAL =", "1:EOF"}},
		{"comparison", "< <= > >=", []string{"1:LESS <", "1:LESS_EQUAL <=", "1:GREATER >", "1:GREATER_EQUAL >=", "1:EOF"}},
		{"comparison at end", "<", []string{"1:LESS <", "1:EOF"}},
		{"line comment", "!//comment", []string{"1:BANG !", "1:EOF"}},
		{"block comment nested", "/* a /* b */ c */!", []string{"1:BANG !", "1:EOF"}},
		{"block comment lines", "/*\n\n*/ x", []string{"3:IDENTIFIER x", "3:EOF"}},
		{"whitespace", "! \r\t=", []string{"1:BANG !", "1:EQUAL =", "1:EOF"}},
		{"string", `"lox"`, []string{`1:STRING "lox" lox`, "1:EOF"}},
		{"empty string", `""`, []string{`1:STRING ""`, "1:EOF"}},
		{"multiline string", "\"a\nb\"", []string{"2:STRING \"a\nb\" a\nb", "2:EOF"}},
		{"integer", "0010", []string{"1:NUMBER 0010 10", "1:EOF"}},
		{"decimal", "12.34", []string{"1:NUMBER 12.34 12.34", "1:EOF"}},
		{"trailing dot", "12.", []string{"1:NUMBER 12 12", "1:DOT .", "1:EOF"}},
		{"leading dot", ".5", []string{"1:DOT .", "1:NUMBER 5 5", "1:EOF"}},
		{"identifiers", "_a1 orchid", []string{"1:IDENTIFIER _a1", "1:IDENTIFIER orchid", "1:EOF"}},
		{"lines", "a\nb\n\nc", []string{"1:IDENTIFIER a", "2:IDENTIFIER b", "4:IDENTIFIER c", "4:EOF"}},
		{
			"keywords",
			"and class else false for fun if nil or print return super this true var while",
			[]string{
				"1:AND and", "1:CLASS class", "1:ELSE else", "1:FALSE false", "1:FOR for", "1:FUN fun",
				"1:IF if", "1:NIL nil", "1:OR or", "1:PRINT print", "1:RETURN return", "1:SUPER super",
				"1:THIS this", "1:TRUE true", "1:VAR var", "1:WHILE while", "1:EOF",
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			out := new(strings.Builder)
			tokens, err := scanner.NewScanner(tc.input, loxerrors.NewErrReporter(out)).Scan()

			require.NoError(tt, err)
			assert.Empty(tt, out.String())
			assert.Equal(tt, tc.expected, render(tokens))
		})
	}
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name  string
		input string
		err   string
	}{
		{"unexpected character", "⌘", "[line 1] Error: Unexpected character."},
		{"unterminated string", `"abc`, "[line 1] Error: Unterminated string."},
		{"unterminated string lines", "\"a\nb", "[line 2] Error: Unterminated string."},
		{"unterminated comment", "/* a /* b */", "[line 1] Error: Unterminated comment."},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			out := new(strings.Builder)
			tokens, err := scanner.NewScanner(tc.input, loxerrors.NewErrReporter(out)).Scan()

			assert.ErrorIs(tt, err, loxerrors.ErrScanError)
			assert.Equal(tt, tc.err+"\n", out.String())
			assert.True(tt, tokens[len(tokens)-1].IsEOF())
		})
	}
}

func render(tokens []token.Token) []string {
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = strings.TrimSpace(fmt.Sprintf("%d:%s", tok.Line, tok))
	}
	return lines
}

func TestScanKeepsGoingAfterUnexpectedCharacter(t *testing.T) {
	t.Parallel()

	out := new(strings.Builder)
	s := scanner.NewScanner("var a = 1 @ 2;\n# print a;", loxerrors.NewErrReporter(out))
	tokens, err := s.Scan()

	require.ErrorIs(t, err, loxerrors.ErrScanError)
	assert.Equal(t, "[line 1] Error: Unexpected character.\n[line 2] Error: Unexpected character.\n", out.String())

	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	expected := []token.TokenType{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.NUMBER, token.SEMICOLON,
		token.PRINT, token.IDENTIFIER, token.SEMICOLON, token.EOF,
	}
	if diff := cmp.Diff(expected, types); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}
