package interpreter

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

// Resolver is the static pass run between parsing and execution. It records
// the scope distance of every local variable, this and super reference into
// the interpreter and reports scoping errors.
type Resolver interface {
	Resolve(ctx context.Context, statements []parser.Stmt) error
}

type VarState int

const (
	VarStateDeclared VarState = iota
	VarStateDefined
	VarStateRead
)

type FunctionType int

const (
	FnTypeNone FunctionType = iota
	FnTypeFunction
	FnTypeMethod
	FnTypeInitializer
)

type ClassType int

const (
	CTypeNone ClassType = iota
	CTypeClass
	CTypeSubclass
)

const (
	ProfileDefault = "default"
	ProfileStrict  = "strict"
)

type ResolverVariable struct {
	Name  *token.Token
	State VarState
}

type resolver struct {
	ctx             context.Context
	interpreter     *interpreter
	scopes          *list.List
	err             []error
	currentFunction FunctionType
	currentClass    ClassType
	profile         string
}

// profiles lists the errors each profile suppresses.
var profiles = map[string][]error{
	ProfileDefault: {
		loxerrors.ErrResolveLocalVariableNotUsed,
	},
	ProfileStrict: {},
}

// NewResolver binds a resolver to the interpreter that will run the resolved
// program. An unknown profile falls back to ProfileDefault.
func NewResolver(interpreterInstance Interpreter, profile string) Resolver {
	interpreterPtr, ok := interpreterInstance.(*interpreter)
	if !ok {
		panic("failed to cast interpreter to struct *interpreter")
	}

	if _, ok := profiles[profile]; !ok {
		profile = ProfileDefault
	}

	return &resolver{
		ctx:             context.Background(),
		interpreter:     interpreterPtr,
		scopes:          list.New(),
		currentFunction: FnTypeNone,
		currentClass:    CTypeNone,
		profile:         profile,
	}
}

// Resolve implements Resolver. Every error is reported as it is found and
// resolution carries on; the returned error joins ErrResolveError with all of
// them.
func (r *resolver) Resolve(ctx context.Context, statements []parser.Stmt) error {
	r.ctx = ctx
	r.err = nil
	r.scopes.Init()
	r.currentFunction = FnTypeNone
	r.currentClass = CTypeNone

	r.resolveStmts(statements)

	if len(r.err) == 0 {
		return nil
	}
	return errors.Join(append([]error{loxerrors.ErrResolveError}, r.err...)...)
}

// VisitStmtBlock implements parser.StmtVisitor.
func (r *resolver) VisitStmtBlock(stmtBlock *parser.StmtBlock) (Value, error) {
	r.beginScope()
	defer r.endScope()
	r.resolveStmts(stmtBlock.Statements)
	return nil, nil
}

// VisitStmtClass implements parser.StmtVisitor.
func (r *resolver) VisitStmtClass(stmtClass *parser.StmtClass) (Value, error) {
	enclosingClass := r.currentClass
	defer func() { r.currentClass = enclosingClass }()
	r.currentClass = CTypeClass

	r.declare(stmtClass.Name)
	r.define(stmtClass.Name)

	if stmtClass.SuperClass != nil && stmtClass.Name.Lexeme == stmtClass.SuperClass.Name.Lexeme {
		r.reportError(stmtClass.SuperClass.Name, loxerrors.ErrResolveClassCantInheritFromItself)
	}
	if stmtClass.SuperClass != nil {
		r.currentClass = CTypeSubclass
		r.resolveExpr(stmtClass.SuperClass)

		r.beginScope()
		defer r.endScope()
		r.defineInternal("super")
	}

	r.beginScope()
	defer r.endScope()

	r.defineInternal("this")

	for _, method := range stmtClass.Methods {
		functionType := FnTypeMethod
		if method.Name.Lexeme == "init" {
			functionType = FnTypeInitializer
		}
		r.resolveFunction(method, functionType)
	}

	return nil, nil
}

// VisitStmtExpression implements parser.StmtVisitor.
func (r *resolver) VisitStmtExpression(stmtExpression *parser.StmtExpression) (Value, error) {
	r.resolveExpr(stmtExpression.Expression)
	return nil, nil
}

// VisitStmtFunction implements parser.StmtVisitor.
func (r *resolver) VisitStmtFunction(stmtFunction *parser.StmtFunction) (Value, error) {
	// defined before the body so the function can refer to itself
	r.declare(stmtFunction.Name)
	r.define(stmtFunction.Name)

	r.resolveFunction(stmtFunction, FnTypeFunction)
	return nil, nil
}

// VisitStmtIf implements parser.StmtVisitor.
func (r *resolver) VisitStmtIf(stmtIf *parser.StmtIf) (Value, error) {
	r.resolveExpr(stmtIf.Condition)
	r.resolveStmt(stmtIf.ThenBranch)
	if stmtIf.ElseBranch != nil {
		r.resolveStmt(stmtIf.ElseBranch)
	}
	return nil, nil
}

// VisitStmtPrint implements parser.StmtVisitor.
func (r *resolver) VisitStmtPrint(stmtPrint *parser.StmtPrint) (Value, error) {
	r.resolveExpr(stmtPrint.Expression)
	return nil, nil
}

// VisitStmtReturn implements parser.StmtVisitor.
func (r *resolver) VisitStmtReturn(stmtReturn *parser.StmtReturn) (Value, error) {
	if r.currentFunction == FnTypeNone {
		r.reportError(stmtReturn.Keyword, loxerrors.ErrResolveReturnOutsideFunction)
	}

	if stmtReturn.Value != nil {
		if r.currentFunction == FnTypeInitializer {
			r.reportError(stmtReturn.Keyword, loxerrors.ErrResolveCantReturnValueFromInitializer)
		}
		r.resolveExpr(stmtReturn.Value)
	}
	return nil, nil
}

// VisitStmtVar implements parser.StmtVisitor.
func (r *resolver) VisitStmtVar(stmtVar *parser.StmtVar) (Value, error) {
	r.declare(stmtVar.Name)
	if stmtVar.Initializer != nil {
		r.resolveExpr(stmtVar.Initializer)
	}
	r.define(stmtVar.Name)
	return nil, nil
}

// VisitStmtWhile implements parser.StmtVisitor.
func (r *resolver) VisitStmtWhile(stmtWhile *parser.StmtWhile) (Value, error) {
	r.resolveExpr(stmtWhile.Condition)
	r.resolveStmt(stmtWhile.Body)
	return nil, nil
}

// VisitExprAssign implements parser.ExprVisitor.
func (r *resolver) VisitExprAssign(exprAssign *parser.ExprAssign) (Value, error) {
	r.resolveExpr(exprAssign.Value)
	r.resolveLocal(exprAssign, exprAssign.Name, false)
	return nil, nil
}

// VisitExprBinary implements parser.ExprVisitor.
func (r *resolver) VisitExprBinary(exprBinary *parser.ExprBinary) (Value, error) {
	r.resolveExpr(exprBinary.Left)
	r.resolveExpr(exprBinary.Right)
	return nil, nil
}

// VisitExprCall implements parser.ExprVisitor.
func (r *resolver) VisitExprCall(exprCall *parser.ExprCall) (Value, error) {
	r.resolveExpr(exprCall.Callee)
	for _, arg := range exprCall.Arguments {
		r.resolveExpr(arg)
	}
	return nil, nil
}

// VisitExprGet implements parser.ExprVisitor.
func (r *resolver) VisitExprGet(exprGet *parser.ExprGet) (Value, error) {
	r.resolveExpr(exprGet.Instance)
	return nil, nil
}

// VisitExprGrouping implements parser.ExprVisitor.
func (r *resolver) VisitExprGrouping(exprGrouping *parser.ExprGrouping) (Value, error) {
	r.resolveExpr(exprGrouping.Expression)
	return nil, nil
}

// VisitExprLiteral implements parser.ExprVisitor.
func (r *resolver) VisitExprLiteral(exprLiteral *parser.ExprLiteral) (Value, error) {
	return nil, nil
}

// VisitExprLogical implements parser.ExprVisitor.
func (r *resolver) VisitExprLogical(exprLogical *parser.ExprLogical) (Value, error) {
	r.resolveExpr(exprLogical.Left)
	r.resolveExpr(exprLogical.Right)
	return nil, nil
}

// VisitExprSet implements parser.ExprVisitor.
func (r *resolver) VisitExprSet(exprSet *parser.ExprSet) (Value, error) {
	r.resolveExpr(exprSet.Value)
	r.resolveExpr(exprSet.Instance)
	return nil, nil
}

// VisitExprSuper implements parser.ExprVisitor.
func (r *resolver) VisitExprSuper(exprSuper *parser.ExprSuper) (Value, error) {
	switch r.currentClass {
	case CTypeSubclass:
	case CTypeNone:
		r.reportError(exprSuper.Keyword, loxerrors.ErrResolveCantUseSuperOutsideClass)
	default:
		r.reportError(exprSuper.Keyword, loxerrors.ErrResolveCantUseSuperInClassWithNoSuperclass)
	}

	r.resolveLocal(exprSuper, exprSuper.Keyword, true)
	return nil, nil
}

// VisitExprThis implements parser.ExprVisitor.
func (r *resolver) VisitExprThis(exprThis *parser.ExprThis) (Value, error) {
	if r.currentClass == CTypeNone {
		r.reportError(exprThis.Keyword, loxerrors.ErrResolveThisOutsideClass)
		return nil, nil
	}
	r.resolveLocal(exprThis, exprThis.Keyword, true)
	return nil, nil
}

// VisitExprUnary implements parser.ExprVisitor.
func (r *resolver) VisitExprUnary(exprUnary *parser.ExprUnary) (Value, error) {
	r.resolveExpr(exprUnary.Right)
	return nil, nil
}

// VisitExprVariable implements parser.ExprVisitor.
func (r *resolver) VisitExprVariable(exprVariable *parser.ExprVariable) (Value, error) {
	if state, ok := r.peekScopeVar(exprVariable.Name.Lexeme); ok && state.State == VarStateDeclared {
		r.reportError(exprVariable.Name, loxerrors.ErrResolveCantInitVarSelfReference)
	}
	r.resolveLocal(exprVariable, exprVariable.Name, true)
	return nil, nil
}

func (r *resolver) beginScope() {
	r.scopes.PushBack(map[string]*ResolverVariable{})
}

func (r *resolver) endScope() {
	if scope, ok := r.peekScope(); ok {
		for _, variable := range scope {
			if variable.State == VarStateDefined {
				r.reportError(variable.Name, loxerrors.ErrResolveLocalVariableNotUsed)
			}
		}
	}

	r.scopes.Remove(r.scopes.Back())
}

func (r *resolver) resolveStmts(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt parser.Stmt) {
	_, _ = stmt.Accept(r)
}

func (r *resolver) resolveExpr(expr parser.Expr) {
	_, _ = expr.Accept(r)
}

func (r *resolver) resolveFunction(function *parser.StmtFunction, declaration FunctionType) {
	enclosingFunction := r.currentFunction
	r.beginScope()
	r.currentFunction = declaration

	defer func() { r.currentFunction = enclosingFunction }()
	defer r.endScope()

	for _, param := range function.Parameters {
		r.declare(param)
		r.define(param)
	}

	r.resolveStmts(function.Body)
}

// resolveLocal records the distance to the innermost scope declaring the
// name. Names found in no scope are left to global lookup.
func (r *resolver) resolveLocal(expr parser.Expr, tok *token.Token, isRead bool) {
	back := r.scopes.Back()
	for distance := 0; back != nil; distance++ {
		scope := r.scopeFromListElem(back)
		if variable, ok := scope[tok.Lexeme]; ok {
			r.interpreter.resolve(expr, distance)
			r.interpreter.logger.DebugContext(r.ctx, "resolved local",
				slog.String("name", tok.Lexeme),
				slog.Int("line", tok.Line),
				slog.Int("distance", distance),
			)

			if isRead {
				variable.State = VarStateRead
			}
			return
		}
		back = back.Prev()
	}
}

func (r *resolver) declare(tok *token.Token) {
	if scope, ok := r.peekScope(); ok {
		if _, ok := scope[tok.Lexeme]; ok {
			r.reportError(tok, loxerrors.ErrResolveCantDuplicateVariableDefinition)
		}
		scope[tok.Lexeme] = &ResolverVariable{Name: tok, State: VarStateDeclared}
	}
}

func (r *resolver) define(tok *token.Token) {
	if scope, ok := r.peekScope(); ok {
		scope[tok.Lexeme].State = VarStateDefined
	}
}

func (r *resolver) defineInternal(name string) {
	if scope, ok := r.peekScope(); ok {
		scope[name] = &ResolverVariable{Name: nil, State: VarStateRead}
	}
}

func (r *resolver) peekScope() (map[string]*ResolverVariable, bool) {
	if r.scopes.Len() == 0 {
		return nil, false
	}
	return r.scopeFromListElem(r.scopes.Back()), true
}

func (r *resolver) peekScopeVar(name string) (*ResolverVariable, bool) {
	if scope, ok := r.peekScope(); ok {
		if value, ok := scope[name]; ok {
			return value, true
		}
	}
	return nil, false
}

func (r *resolver) scopeFromListElem(el *list.Element) map[string]*ResolverVariable {
	return el.Value.(map[string]*ResolverVariable)
}

func (r *resolver) reportError(tok *token.Token, err error) {
	for _, ignoredError := range profiles[r.profile] {
		if errors.Is(err, ignoredError) {
			return
		}
	}

	resolveErr := loxerrors.NewResolveError(tok, err)
	r.interpreter.opts.reporter.ReportError(resolveErr)
	r.err = append(r.err, resolveErr)
}

func (r *resolver) String() string {
	w := new(strings.Builder)

	index := 0
	delimiter := ""
	for element := r.scopes.Front(); element != nil; element = element.Next() {
		_, _ = fmt.Fprintf(w, "%s%d{%v}", delimiter, index, r.scopeFromListElem(element))
		index++
		delimiter = " ->"
	}

	return fmt.Sprintf("resolver{profile: %s, err: %v, scopes: %s}", r.profile, r.err, w)
}

var (
	_ parser.ExprVisitor = (*resolver)(nil)
	_ parser.StmtVisitor = (*resolver)(nil)
	_ Resolver           = (*resolver)(nil)
	_ fmt.Stringer       = (*resolver)(nil)
)
