package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/scanner"
	"github.com/leonardinius/treelox/internal/token"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		in   string
		ast  string
		err  string
	}{
		{name: `precedence`, in: `1 + 2 * 3 - 4 / 5;`, ast: "(; (- (+ 1 (* 2 3)) (/ 4 5)))\n"},
		{name: `comparison equality`, in: `1 < 2 == true;`, ast: "(; (== (< 1 2) true))\n"},
		{name: `logical`, in: `a or b and c;`, ast: "(; (or a (and b c)))\n"},
		{name: `unary`, in: `!-a;`, ast: "(; (! (- a)))\n"},
		{name: `assignment right assoc`, in: `a = b = 1;`, ast: "(; (= a (= b 1)))\n"},
		{name: `var`, in: `var a; var b = "s";`, ast: "(var a)\n(var b = \"s\")\n"},
		{name: `call chain`, in: `a(1)(2, 3).b.c(nil);`, ast: "(; (call (. (. (call (call a 1) 2 3) b) c) nil))\n"},
		{name: `set`, in: `a.b.c = 1;`, ast: "(; (= (. a b) c 1))\n"},
		{name: `this super`, in: `class A < B { m() { return super.m(this); } }`, ast: "(class A < B (fun m() (return (call (super m) this))))\n"},
		{name: `if else`, in: `if (a) print 1; else print 2;`, ast: "(if-else a (print 1) (print 2))\n"},
		{name: `while`, in: `while (a) { a = a - 1; }`, ast: "(while a (block (; (= a (- a 1)))))\n"},
		{name: `for desugared`, in: `for (var i = 0; i < 2; i = i + 1) print i;`, ast: "(block (var i = 0) (while (< i 2) (block (print i) (; (= i (+ i 1))))))\n"},
		{name: `for empty clauses`, in: `for (;;) print 1;`, ast: "(while true (print 1))\n"},
		{name: `fun`, in: `fun f(a, b) { return a + b; }`, ast: "(fun f(a b) (return (+ a b)))\n"},
		{name: `missing semicolon`, in: `print 1`, err: "[line 1] Error at end: Expect ';' after value."},
		{name: `missing expression`, in: `1 + ;`, err: "[line 1] Error at ';': Expect expression."},
		{name: `invalid assignment target`, in: `var a; (a) = 1;`, err: "[line 1] Error at '=': Invalid assignment target."},
		{name: `bad var name`, in: `var print;`, err: "[line 1] Error at 'print': Expect variable name."},
		{name: `superclass name`, in: `class A < {}`, err: "[line 1] Error at '{': Expect superclass name."},
		{name: `super dot`, in: `super;`, err: "[line 1] Error at ';': Expect '.' after 'super'."},
		{name: `unclosed block`, in: `{ print 1;`, err: "[line 1] Error at end: Expect '}' after block."},
		{name: `method body`, in: `class A { m() print 1; }`, err: "[line 1] Error at 'print': Expect '{' before method body."},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ast, out, err := parse(tc.in)
			if tc.err != "" {
				assert.ErrorIs(t, err, loxerrors.ErrParseError)
				assert.Contains(t, out, tc.err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.ast, ast)
				assert.Empty(t, out)
			}
		})
	}
}

func TestParseReportsEveryStatementError(t *testing.T) {
	t.Parallel()

	_, out, err := parse("var = 1;\nprint 2\nvar ok = 3;\nfun (){}")
	require.ErrorIs(t, err, loxerrors.ErrParseError)
	assert.Equal(t,
		"[line 1] Error at '=': Expect variable name.\n"+
			"[line 3] Error at 'var': Expect ';' after value.\n"+
			"[line 4] Error at '(': Expect function name.\n",
		out)
}

func TestParseTooManyArguments(t *testing.T) {
	t.Parallel()

	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	_, out, err := parse("f(" + strings.Join(args, ",") + ");")
	require.ErrorIs(t, err, loxerrors.ErrParseError)
	assert.Contains(t, out, "Error at '1': Can't have more than 255 arguments.")
}

func TestParseNodeIdentity(t *testing.T) {
	t.Parallel()

	stmts, err := parser.NewParser(scan(t, "a + a;"), loxerrors.NewErrReporter(new(strings.Builder))).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	binary := stmts[0].(*parser.StmtExpression).Expression.(*parser.ExprBinary)
	left := binary.Left.(*parser.ExprVariable)
	right := binary.Right.(*parser.ExprVariable)
	assert.Equal(t, left.Name.Lexeme, right.Name.Lexeme)
	assert.NotSame(t, left, right)
}

func parse(source string) (string, string, error) {
	out := new(strings.Builder)
	reporter := loxerrors.NewErrReporter(out)
	tokens, err := scanner.NewScanner(source, reporter).Scan()
	if err != nil {
		return "", out.String(), err
	}

	stmts, err := parser.NewParser(tokens, reporter).Parse()
	if err != nil {
		return "", out.String(), err
	}
	return parser.NewAstPrinter().PrintProgram(stmts), out.String(), nil
}

func scan(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := scanner.NewScanner(source, loxerrors.NewErrReporter(new(strings.Builder))).Scan()
	require.NoError(t, err)
	return tokens
}
