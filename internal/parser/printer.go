package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// AstPrinter renders trees in a parenthesized prefix notation, e.g.
// `(* (- 123) (group 45.67))`.
type AstPrinter struct{}

// printed lets the printer ride on the Value-returning visitor interfaces.
type printed string

func (printed) Type() ValueType { return ValueStringType }

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

func (p *AstPrinter) Print(expr Expr) string {
	return p.expr(expr)
}

func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	return p.stmt(stmt)
}

// PrintProgram prints one top-level statement per line.
func (p *AstPrinter) PrintProgram(stmts []Stmt) string {
	out := new(strings.Builder)
	for _, stmt := range stmts {
		_, _ = out.WriteString(p.stmt(stmt))
		_, _ = out.WriteString("\n")
	}
	return out.String()
}

// VisitExprAssign implements ExprVisitor.
func (p *AstPrinter) VisitExprAssign(exprAssign *ExprAssign) (Value, error) {
	return p.parenthesize("=", exprAssign.Name.Lexeme, exprAssign.Value), nil
}

// VisitExprBinary implements ExprVisitor.
func (p *AstPrinter) VisitExprBinary(exprBinary *ExprBinary) (Value, error) {
	return p.parenthesize(exprBinary.Operator.Lexeme, exprBinary.Left, exprBinary.Right), nil
}

// VisitExprCall implements ExprVisitor.
func (p *AstPrinter) VisitExprCall(exprCall *ExprCall) (Value, error) {
	parts := []any{exprCall.Callee}
	for _, arg := range exprCall.Arguments {
		parts = append(parts, arg)
	}
	return p.parenthesize("call", parts...), nil
}

// VisitExprGet implements ExprVisitor.
func (p *AstPrinter) VisitExprGet(exprGet *ExprGet) (Value, error) {
	return p.parenthesize(".", exprGet.Instance, exprGet.Name.Lexeme), nil
}

// VisitExprGrouping implements ExprVisitor.
func (p *AstPrinter) VisitExprGrouping(exprGrouping *ExprGrouping) (Value, error) {
	return p.parenthesize("group", exprGrouping.Expression), nil
}

// VisitExprLiteral implements ExprVisitor.
func (p *AstPrinter) VisitExprLiteral(exprLiteral *ExprLiteral) (Value, error) {
	switch v := exprLiteral.Value.(type) {
	case nil:
		return printed("nil"), nil
	case string:
		return printed(strconv.Quote(v)), nil
	case float64:
		return printed(strconv.FormatFloat(v, 'f', -1, 64)), nil
	}
	return printed(fmt.Sprintf("%v", exprLiteral.Value)), nil
}

// VisitExprLogical implements ExprVisitor.
func (p *AstPrinter) VisitExprLogical(exprLogical *ExprLogical) (Value, error) {
	return p.parenthesize(exprLogical.Operator.Lexeme, exprLogical.Left, exprLogical.Right), nil
}

// VisitExprSet implements ExprVisitor.
func (p *AstPrinter) VisitExprSet(exprSet *ExprSet) (Value, error) {
	return p.parenthesize("=", exprSet.Instance, exprSet.Name.Lexeme, exprSet.Value), nil
}

// VisitExprSuper implements ExprVisitor.
func (p *AstPrinter) VisitExprSuper(exprSuper *ExprSuper) (Value, error) {
	return p.parenthesize("super", exprSuper.Method.Lexeme), nil
}

// VisitExprThis implements ExprVisitor.
func (p *AstPrinter) VisitExprThis(exprThis *ExprThis) (Value, error) {
	return printed("this"), nil
}

// VisitExprUnary implements ExprVisitor.
func (p *AstPrinter) VisitExprUnary(exprUnary *ExprUnary) (Value, error) {
	return p.parenthesize(exprUnary.Operator.Lexeme, exprUnary.Right), nil
}

// VisitExprVariable implements ExprVisitor.
func (p *AstPrinter) VisitExprVariable(exprVariable *ExprVariable) (Value, error) {
	return printed(exprVariable.Name.Lexeme), nil
}

// VisitStmtBlock implements StmtVisitor.
func (p *AstPrinter) VisitStmtBlock(stmtBlock *StmtBlock) (Value, error) {
	return p.parenthesize("block", p.stmts(stmtBlock.Statements)...), nil
}

// VisitStmtClass implements StmtVisitor.
func (p *AstPrinter) VisitStmtClass(stmtClass *StmtClass) (Value, error) {
	parts := []any{stmtClass.Name.Lexeme}
	if stmtClass.SuperClass != nil {
		parts = append(parts, "<", stmtClass.SuperClass.Name.Lexeme)
	}
	for _, method := range stmtClass.Methods {
		parts = append(parts, Stmt(method))
	}
	return p.parenthesize("class", parts...), nil
}

// VisitStmtExpression implements StmtVisitor.
func (p *AstPrinter) VisitStmtExpression(stmtExpression *StmtExpression) (Value, error) {
	return p.parenthesize(";", stmtExpression.Expression), nil
}

// VisitStmtFunction implements StmtVisitor.
func (p *AstPrinter) VisitStmtFunction(stmtFunction *StmtFunction) (Value, error) {
	params := make([]string, len(stmtFunction.Parameters))
	for i, param := range stmtFunction.Parameters {
		params[i] = param.Lexeme
	}
	parts := []any{stmtFunction.Name.Lexeme + "(" + strings.Join(params, " ") + ")"}
	parts = append(parts, p.stmts(stmtFunction.Body)...)
	return p.parenthesize("fun", parts...), nil
}

// VisitStmtIf implements StmtVisitor.
func (p *AstPrinter) VisitStmtIf(stmtIf *StmtIf) (Value, error) {
	if stmtIf.ElseBranch == nil {
		return p.parenthesize("if", stmtIf.Condition, stmtIf.ThenBranch), nil
	}
	return p.parenthesize("if-else", stmtIf.Condition, stmtIf.ThenBranch, stmtIf.ElseBranch), nil
}

// VisitStmtPrint implements StmtVisitor.
func (p *AstPrinter) VisitStmtPrint(stmtPrint *StmtPrint) (Value, error) {
	return p.parenthesize("print", stmtPrint.Expression), nil
}

// VisitStmtReturn implements StmtVisitor.
func (p *AstPrinter) VisitStmtReturn(stmtReturn *StmtReturn) (Value, error) {
	if stmtReturn.Value == nil {
		return printed("(return)"), nil
	}
	return p.parenthesize("return", stmtReturn.Value), nil
}

// VisitStmtVar implements StmtVisitor.
func (p *AstPrinter) VisitStmtVar(stmtVar *StmtVar) (Value, error) {
	if stmtVar.Initializer == nil {
		return p.parenthesize("var", stmtVar.Name.Lexeme), nil
	}
	return p.parenthesize("var", stmtVar.Name.Lexeme, "=", stmtVar.Initializer), nil
}

// VisitStmtWhile implements StmtVisitor.
func (p *AstPrinter) VisitStmtWhile(stmtWhile *StmtWhile) (Value, error) {
	return p.parenthesize("while", stmtWhile.Condition, stmtWhile.Body), nil
}

// parenthesize accepts sub-expressions, sub-statements and plain strings.
func (p *AstPrinter) parenthesize(name string, parts ...any) printed {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, part := range parts {
		_, _ = out.WriteString(" ")
		switch part := part.(type) {
		case Expr:
			_, _ = out.WriteString(p.expr(part))
		case Stmt:
			_, _ = out.WriteString(p.stmt(part))
		case string:
			_, _ = out.WriteString(part)
		default:
			_, _ = fmt.Fprintf(out, "%v", part)
		}
	}
	_, _ = out.WriteString(")")
	return printed(out.String())
}

func (p *AstPrinter) stmts(stmts []Stmt) []any {
	parts := make([]any, len(stmts))
	for i, stmt := range stmts {
		parts[i] = stmt
	}
	return parts
}

func (p *AstPrinter) expr(expr Expr) string {
	if expr == nil {
		return "<nil>"
	}
	v, _ := expr.Accept(p)
	return string(v.(printed))
}

func (p *AstPrinter) stmt(stmt Stmt) string {
	if stmt == nil {
		return "<nil>"
	}
	v, _ := stmt.Accept(p)
	return string(v.(printed))
}

var (
	_ ExprVisitor = (*AstPrinter)(nil)
	_ StmtVisitor = (*AstPrinter)(nil)
)
