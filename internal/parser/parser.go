package parser

import (
	"fmt"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

const maxArguments = 255

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

type Parser interface {
	Parse() ([]Stmt, error)
}

type parser struct {
	tokens   []token.Token
	current  int
	err      error
	hadError bool
	reporter loxerrors.ErrReporter
}

func NewParser(tokens []token.Token, reporter loxerrors.ErrReporter) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:   tokens,
		current:  0,
		reporter: reporter,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, err: %#v}", p.tokens, p.current, p.err)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, err: %v}", len(p.tokens), p.err)
}

// Parse implements Parser.
//
// Every error is reported to the reporter. After a failed declaration the
// parser synchronizes on the next statement boundary and keeps going, so one
// run reports as many errors as it can; the statements are only returned when
// there were none.
func (p *parser) Parse() ([]Stmt, error) {
	var statements []Stmt
	for !p.isAtEnd() {
		stmt := p.declaration()
		if p.err != nil {
			p.reporter.ReportError(p.err)
			p.hadError = true
			p.err = nil
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	if p.hadError {
		return nilStatements, loxerrors.ErrParseError
	}
	return statements, nil
}

func (p *parser) declaration() Stmt {
	if p.match(token.CLASS) {
		return p.classDeclaration()
	}
	if p.match(token.FUN) {
		return p.function("function")
	}
	if p.match(token.VAR) {
		return p.varDeclaration()
	}

	return p.statement()
}

func (p *parser) classDeclaration() Stmt {
	name := p.consume(token.IDENTIFIER, loxerrors.ErrParseExpectedIdentifierKindError("class"))

	var superClass *ExprVariable
	if p.match(token.LESS) {
		superName := p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedSuperclassName)
		superClass = &ExprVariable{Name: superName}
	}

	p.consume(token.LEFT_BRACE, loxerrors.ErrParseExpectedLeftCurlyClassToken)

	var methods []*StmtFunction
	for !p.check(token.RIGHT_BRACE) && !p.isDone() {
		if method, ok := p.function("method").(*StmtFunction); ok {
			methods = append(methods, method)
		}
	}

	p.consume(token.RIGHT_BRACE, loxerrors.ErrParseExpectedRightCurlyClassToken)
	if p.err != nil {
		return nilStmt
	}

	return &StmtClass{Name: name, SuperClass: superClass, Methods: methods}
}

func (p *parser) function(kind string) Stmt {
	name := p.consume(token.IDENTIFIER, loxerrors.ErrParseExpectedIdentifierKindError(kind))
	p.consume(token.LEFT_PAREN, loxerrors.ErrParseExpectedLeftParenError(kind))

	var parameters []*token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(parameters) >= maxArguments {
				p.reportNonFatal(p.peek(), loxerrors.ErrParseTooManyParameters)
			}
			parameters = append(parameters, p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedParameterName))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParentFunToken)

	p.consume(token.LEFT_BRACE, loxerrors.ErrParseExpectedLeftBraceFunToken(kind))
	body := p.blockStatement()
	if p.err != nil {
		return nilStmt
	}

	return &StmtFunction{Name: name, Parameters: parameters, Body: body}
}

func (p *parser) varDeclaration() Stmt {
	name := p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedVariableName)

	var initializer Expr = nilExpr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterVar)
	if p.err != nil {
		return nilStmt
	}

	return &StmtVar{Name: name, Initializer: initializer}
}

func (p *parser) statement() Stmt {
	if p.match(token.FOR) {
		return p.forStatement()
	}
	if p.match(token.IF) {
		return p.ifStatement()
	}
	if p.match(token.PRINT) {
		return p.printStatement()
	}
	if p.match(token.RETURN) {
		return p.returnStatement()
	}
	if p.match(token.WHILE) {
		return p.whileStatement()
	}
	if p.match(token.LEFT_BRACE) {
		block := p.blockStatement()
		return &StmtBlock{Statements: block}
	}

	return p.expressionStatement()
}

func (p *parser) ifStatement() Stmt {
	p.consume(token.LEFT_PAREN, loxerrors.ErrParseExpectedLeftParentIfToken)
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParentIfToken)

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}

	return &StmtIf{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// forStatement desugars into a while loop wrapped in blocks:
//
//	{ initializer; while (condition) { body; increment; } }
func (p *parser) forStatement() Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, loxerrors.ErrParseExpectedLeftParentForToken)

	var initializer Stmt
	if p.match(token.SEMICOLON) {
		initializer = nilStmt
	} else if p.match(token.VAR) {
		initializer = p.varDeclaration()
	} else {
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonAfterForLoopCond)

	var increment Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParentForToken)

	body := p.statement()
	if p.err != nil {
		return nilStmt
	}

	if increment != nilExpr {
		body = &StmtBlock{
			Statements: []Stmt{body, &StmtExpression{Expression: increment}},
		}
	}
	if condition == nilExpr {
		condition = &ExprLiteral{Value: true}
	}
	body = &StmtWhile{Keyword: keyword, Condition: condition, Body: body}
	if initializer != nilStmt {
		body = &StmtBlock{Statements: []Stmt{initializer, body}}
	}
	return body
}

func (p *parser) printStatement() Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterPrintValue)

	return &StmtPrint{Expression: expr}
}

func (p *parser) returnStatement() Stmt {
	keyword := p.previous()

	var value Expr = nilExpr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterReturn)

	return &StmtReturn{Keyword: keyword, Value: value}
}

func (p *parser) whileStatement() Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, loxerrors.ErrParseExpectedLeftParentWhileToken)
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParentWhileToken)

	body := p.statement()

	return &StmtWhile{Keyword: keyword, Condition: condition, Body: body}
}

func (p *parser) blockStatement() []Stmt {
	var stmts []Stmt

	for !p.check(token.RIGHT_BRACE) && !p.isDone() {
		stmts = append(stmts, p.declaration())
	}

	p.consume(token.RIGHT_BRACE, loxerrors.ErrParseExpectedRightCurlyBlockToken)
	if p.err != nil {
		return nilStatements
	}

	return stmts
}

func (p *parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterExpr)

	return &StmtExpression{Expression: expr}
}

func (p *parser) expression() Expr {
	return p.assignment()
}

func (p *parser) assignment() Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ExprVariable:
			return &ExprAssign{Name: target.Name, Value: value}
		case *ExprGet:
			return &ExprSet{Instance: target.Instance, Name: target.Name, Value: value}
		}

		// Not fatal: the parser is not confused, there is no need to synchronize.
		p.reportNonFatal(equals, loxerrors.ErrParseInvalidAssignmentTarget)
	}

	return expr
}

func (p *parser) logicOr() Expr {
	expr := p.logicAnd()

	for p.match(token.OR) {
		operator := p.previous()
		right := p.logicAnd()
		expr = &ExprLogical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) logicAnd() Expr {
	expr := p.equality()

	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ExprLogical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) equality() Expr {
	expr := p.comparison()

	for p.anyMatch(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) comparison() Expr {
	expr := p.term()

	for p.anyMatch(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) term() Expr {
	expr := p.factor()

	for p.anyMatch(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) factor() Expr {
	expr := p.unary()

	for p.anyMatch(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) unary() Expr {
	if p.anyMatch(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ExprUnary{
			Operator: operator,
			Right:    right,
		}
	}

	return p.call()
}

func (p *parser) call() Expr {
	expr := p.primary()

	for {
		if p.match(token.LEFT_PAREN) {
			expr = p.finishCall(expr)
		} else if p.match(token.DOT) {
			name := p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedPropertyName)
			expr = &ExprGet{Instance: expr, Name: name}
		} else {
			break
		}
	}

	return expr
}

func (p *parser) finishCall(callee Expr) Expr {
	var arguments []Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(arguments) >= maxArguments {
				p.reportNonFatal(p.peek(), loxerrors.ErrParseTooManyArguments)
			}
			arguments = append(arguments, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren := p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParenArgsToken)

	return &ExprCall{Callee: callee, Paren: paren, Arguments: arguments}
}

func (p *parser) primary() Expr {
	if p.match(token.FALSE) {
		return &ExprLiteral{Value: false}
	}
	if p.match(token.TRUE) {
		return &ExprLiteral{Value: true}
	}
	if p.match(token.NIL) {
		return &ExprLiteral{Value: nil}
	}

	if p.anyMatch(token.NUMBER, token.STRING) {
		tok := p.previous()
		return &ExprLiteral{Value: tok.Literal}
	}

	if p.match(token.SUPER) {
		keyword := p.previous()
		p.consume(token.DOT, loxerrors.ErrParseUnexpectedSuperDot)
		method := p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedSuperMethod)
		return &ExprSuper{Keyword: keyword, Method: method}
	}

	if p.match(token.THIS) {
		return &ExprThis{Keyword: p.previous()}
	}

	if p.match(token.IDENTIFIER) {
		tok := p.previous()
		return &ExprVariable{Name: tok}
	}

	return p.grouping()
}

func (p *parser) grouping() Expr {
	if p.match(token.LEFT_PAREN) {
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParenToken)
		return &ExprGrouping{Expression: expr}
	}

	return p.reportExprError(loxerrors.ErrParseUnexpectedToken)
}

func (p *parser) anyMatch(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

// consume advances over the expected token or records err at the current one.
// Once an error is recorded it is a no-op, so callers may chain consumes and
// check p.err once.
func (p *parser) consume(tokType token.TokenType, err error) *token.Token {
	if p.check(tokType) {
		return p.advance()
	}
	p.reportTokenExprError(p.peek(), err)
	return p.peek()
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isDone() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// Be carefull with isAtEnd, it does not check for parse errors.
// Use isDone instead.
// isAtEnd is used from top level Parse, synchronize and advance only.
func (p *parser) isAtEnd() bool {
	return p.peek().IsEOF()
}

func (p *parser) isDone() bool {
	// at the end, OR, have errors
	return p.isAtEnd() || p.err != nil
}

func (p *parser) reportExprError(err error) Expr {
	return p.reportTokenExprError(p.peek(), err)
}

func (p *parser) reportTokenExprError(tok *token.Token, err error) Expr {
	if p.err != nil {
		return nilExpr
	}
	p.err = loxerrors.NewParseError(tok, err)
	return nilExpr
}

func (p *parser) reportNonFatal(tok *token.Token, err error) {
	if p.err != nil {
		return
	}
	p.hadError = true
	p.reporter.ReportError(loxerrors.NewParseError(tok, err))
}

func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS,
			token.FUN,
			token.VAR,
			token.FOR,
			token.IF,
			token.WHILE,
			token.PRINT,
			token.RETURN:
			return
		}

		p.advance()
	}
}

var (
	_ Parser         = (*parser)(nil)
	_ fmt.Stringer   = (*parser)(nil)
	_ fmt.GoStringer = (*parser)(nil)
)
