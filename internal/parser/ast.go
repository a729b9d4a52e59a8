package parser

import "github.com/leonardinius/treelox/internal/token"

// ExprVisitor is implemented by every pass over expressions.
// Nodes are always handled by pointer: the pointer is the node identity.
type ExprVisitor interface {
	VisitExprAssign(exprAssign *ExprAssign) (Value, error)
	VisitExprBinary(exprBinary *ExprBinary) (Value, error)
	VisitExprCall(exprCall *ExprCall) (Value, error)
	VisitExprGet(exprGet *ExprGet) (Value, error)
	VisitExprGrouping(exprGrouping *ExprGrouping) (Value, error)
	VisitExprLiteral(exprLiteral *ExprLiteral) (Value, error)
	VisitExprLogical(exprLogical *ExprLogical) (Value, error)
	VisitExprSet(exprSet *ExprSet) (Value, error)
	VisitExprSuper(exprSuper *ExprSuper) (Value, error)
	VisitExprThis(exprThis *ExprThis) (Value, error)
	VisitExprUnary(exprUnary *ExprUnary) (Value, error)
	VisitExprVariable(exprVariable *ExprVariable) (Value, error)
}

// StmtVisitor is implemented by every pass over statements.
type StmtVisitor interface {
	VisitStmtBlock(stmtBlock *StmtBlock) (Value, error)
	VisitStmtClass(stmtClass *StmtClass) (Value, error)
	VisitStmtExpression(stmtExpression *StmtExpression) (Value, error)
	VisitStmtFunction(stmtFunction *StmtFunction) (Value, error)
	VisitStmtIf(stmtIf *StmtIf) (Value, error)
	VisitStmtPrint(stmtPrint *StmtPrint) (Value, error)
	VisitStmtReturn(stmtReturn *StmtReturn) (Value, error)
	VisitStmtVar(stmtVar *StmtVar) (Value, error)
	VisitStmtWhile(stmtWhile *StmtWhile) (Value, error)
}

type Expr interface {
	Accept(v ExprVisitor) (Value, error)
}

type Stmt interface {
	Accept(v StmtVisitor) (Value, error)
}

type ExprAssign struct {
	Name  *token.Token
	Value Expr
}

type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

type ExprCall struct {
	Callee    Expr
	Paren     *token.Token
	Arguments []Expr
}

type ExprGet struct {
	Instance Expr
	Name     *token.Token
}

type ExprGrouping struct {
	Expression Expr
}

// ExprLiteral holds nil, bool, float64 or string.
type ExprLiteral struct {
	Value any
}

type ExprLogical struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

type ExprSet struct {
	Instance Expr
	Name     *token.Token
	Value    Expr
}

type ExprSuper struct {
	Keyword *token.Token
	Method  *token.Token
}

type ExprThis struct {
	Keyword *token.Token
}

type ExprUnary struct {
	Operator *token.Token
	Right    Expr
}

type ExprVariable struct {
	Name *token.Token
}

type StmtBlock struct {
	Statements []Stmt
}

type StmtClass struct {
	Name       *token.Token
	SuperClass *ExprVariable
	Methods    []*StmtFunction
}

type StmtExpression struct {
	Expression Expr
}

type StmtFunction struct {
	Name       *token.Token
	Parameters []*token.Token
	Body       []Stmt
}

type StmtIf struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

type StmtPrint struct {
	Expression Expr
}

type StmtReturn struct {
	Keyword *token.Token
	Value   Expr
}

type StmtVar struct {
	Name        *token.Token
	Initializer Expr
}

// StmtWhile is also the target of the for-loop desugaring; Keyword is the
// 'while' or 'for' token.
type StmtWhile struct {
	Keyword   *token.Token
	Condition Expr
	Body      Stmt
}

func (e *ExprAssign) Accept(v ExprVisitor) (Value, error)   { return v.VisitExprAssign(e) }
func (e *ExprBinary) Accept(v ExprVisitor) (Value, error)   { return v.VisitExprBinary(e) }
func (e *ExprCall) Accept(v ExprVisitor) (Value, error)     { return v.VisitExprCall(e) }
func (e *ExprGet) Accept(v ExprVisitor) (Value, error)      { return v.VisitExprGet(e) }
func (e *ExprGrouping) Accept(v ExprVisitor) (Value, error) { return v.VisitExprGrouping(e) }
func (e *ExprLiteral) Accept(v ExprVisitor) (Value, error)  { return v.VisitExprLiteral(e) }
func (e *ExprLogical) Accept(v ExprVisitor) (Value, error)  { return v.VisitExprLogical(e) }
func (e *ExprSet) Accept(v ExprVisitor) (Value, error)      { return v.VisitExprSet(e) }
func (e *ExprSuper) Accept(v ExprVisitor) (Value, error)    { return v.VisitExprSuper(e) }
func (e *ExprThis) Accept(v ExprVisitor) (Value, error)     { return v.VisitExprThis(e) }
func (e *ExprUnary) Accept(v ExprVisitor) (Value, error)    { return v.VisitExprUnary(e) }
func (e *ExprVariable) Accept(v ExprVisitor) (Value, error) { return v.VisitExprVariable(e) }

func (s *StmtBlock) Accept(v StmtVisitor) (Value, error)      { return v.VisitStmtBlock(s) }
func (s *StmtClass) Accept(v StmtVisitor) (Value, error)      { return v.VisitStmtClass(s) }
func (s *StmtExpression) Accept(v StmtVisitor) (Value, error) { return v.VisitStmtExpression(s) }
func (s *StmtFunction) Accept(v StmtVisitor) (Value, error)   { return v.VisitStmtFunction(s) }
func (s *StmtIf) Accept(v StmtVisitor) (Value, error)         { return v.VisitStmtIf(s) }
func (s *StmtPrint) Accept(v StmtVisitor) (Value, error)      { return v.VisitStmtPrint(s) }
func (s *StmtReturn) Accept(v StmtVisitor) (Value, error)     { return v.VisitStmtReturn(s) }
func (s *StmtVar) Accept(v StmtVisitor) (Value, error)        { return v.VisitStmtVar(s) }
func (s *StmtWhile) Accept(v StmtVisitor) (Value, error)      { return v.VisitStmtWhile(s) }

var (
	_ Expr = (*ExprAssign)(nil)
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprCall)(nil)
	_ Expr = (*ExprGet)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprLogical)(nil)
	_ Expr = (*ExprSet)(nil)
	_ Expr = (*ExprSuper)(nil)
	_ Expr = (*ExprThis)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprVariable)(nil)

	_ Stmt = (*StmtBlock)(nil)
	_ Stmt = (*StmtClass)(nil)
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtFunction)(nil)
	_ Stmt = (*StmtIf)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtReturn)(nil)
	_ Stmt = (*StmtVar)(nil)
	_ Stmt = (*StmtWhile)(nil)
)
