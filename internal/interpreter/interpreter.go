package interpreter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

type Interpreter interface {
	// Interpret runs statements against the interpreter's persistent global
	// state. It returns the display form of the last top-level expression
	// statement, "nil" when there is none. A runtime error is reported and
	// stops execution; state built up to that point stays.
	Interpret(ctx context.Context, statements []parser.Stmt) (string, error)
}

type interpreter struct {
	opts    *interpreterOpts
	logger  *slog.Logger
	globals *environment
	env     *environment
	locals  map[parser.Expr]int
	ctx     context.Context
	depth   int
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	opts := newInterpreterOpts(options...)
	defineStd(opts.globals)

	return &interpreter{
		opts:    opts,
		logger:  opts.logger,
		globals: opts.globals,
		env:     opts.globals,
		locals:  make(map[parser.Expr]int),
		ctx:     context.Background(),
	}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, statements []parser.Stmt) (string, error) {
	i.ctx = ctx
	defer func() { i.ctx = context.Background() }()

	var last Value = NilValue
	for _, stmt := range statements {
		var err error
		if stmtExpression, ok := stmt.(*parser.StmtExpression); ok {
			last, err = i.evaluate(stmtExpression.Expression)
		} else {
			_, err = i.execute(stmt)
		}

		if err != nil {
			if i.logger.Enabled(ctx, slog.LevelDebug) {
				i.logger.DebugContext(ctx, "runtime error",
					slog.Any("err", err),
					slog.String("globals", i.globals.String()),
				)
			}
			i.opts.reporter.ReportError(err)
			return "", err
		}
	}

	return stringify(last), nil
}

// resolve records the distance the resolver computed for a local reference.
func (i *interpreter) resolve(expr parser.Expr, depth int) {
	i.locals[expr] = depth
}

// VisitExprAssign implements parser.ExprVisitor.
func (i *interpreter) VisitExprAssign(exprAssign *parser.ExprAssign) (Value, error) {
	value, err := i.evaluate(exprAssign.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[exprAssign]; ok {
		i.env.AssignAt(distance, exprAssign.Name, value)
		return value, nil
	}

	if err := i.globals.Assign(exprAssign.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

// VisitExprBinary implements parser.ExprVisitor.
func (i *interpreter) VisitExprBinary(exprBinary *parser.ExprBinary) (Value, error) {
	left, err := i.evaluate(exprBinary.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(exprBinary.Right)
	if err != nil {
		return nil, err
	}

	operator := exprBinary.Operator
	switch operator.Type {
	case token.EQUAL_EQUAL:
		return ValueBool(isEqual(left, right)), nil
	case token.BANG_EQUAL:
		return ValueBool(!isEqual(left, right)), nil
	case token.PLUS:
		return i.plus(operator, left, right)
	}

	leftNum, rightNum, err := i.checkNumberOperands(operator, left, right)
	if err != nil {
		return nil, err
	}

	switch operator.Type {
	case token.MINUS:
		return leftNum - rightNum, nil
	case token.SLASH:
		return leftNum / rightNum, nil
	case token.STAR:
		return leftNum * rightNum, nil
	case token.GREATER:
		return ValueBool(leftNum > rightNum), nil
	case token.GREATER_EQUAL:
		return ValueBool(leftNum >= rightNum), nil
	case token.LESS:
		return ValueBool(leftNum < rightNum), nil
	case token.LESS_EQUAL:
		return ValueBool(leftNum <= rightNum), nil
	}

	panic(fmt.Sprintf("unexpected binary operator %v", operator))
}

func (i *interpreter) plus(operator *token.Token, left, right Value) (Value, error) {
	switch left := left.(type) {
	case ValueFloat:
		if right, ok := right.(ValueFloat); ok {
			return left + right, nil
		}
	case ValueString:
		if right, ok := right.(ValueString); ok {
			return left + right, nil
		}
	}

	return nil, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandsMustNumbersOrStrings)
}

// VisitExprCall implements parser.ExprVisitor.
func (i *interpreter) VisitExprCall(exprCall *parser.ExprCall) (Value, error) {
	callee, err := i.evaluate(exprCall.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(exprCall.Arguments))
	for _, argument := range exprCall.Arguments {
		value, err := i.evaluate(argument)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, loxerrors.NewRuntimeError(exprCall.Paren, loxerrors.ErrRuntimeCalleeMustBeCallable)
	}

	if arity := int(callable.Arity()); arity != len(arguments) {
		return nil, loxerrors.NewRuntimeError(exprCall.Paren, loxerrors.ErrRuntimeCalleeArityError(arity, len(arguments)))
	}

	return i.call(exprCall.Paren, callable, arguments)
}

func (i *interpreter) call(paren *token.Token, callable Callable, arguments []Value) (Value, error) {
	if i.ctx.Err() != nil {
		return nil, loxerrors.NewRuntimeError(paren, loxerrors.ErrRuntimeInterrupted)
	}

	i.depth++
	defer func() { i.depth-- }()

	if i.opts.maxCallDepth > 0 && i.depth > i.opts.maxCallDepth {
		return nil, loxerrors.NewRuntimeError(paren, loxerrors.ErrRuntimeStackOverflow)
	}

	if i.logger.Enabled(i.ctx, slog.LevelDebug) {
		i.logger.DebugContext(i.ctx, "call",
			slog.String("callee", fmt.Sprintf("%#v", callable)),
			slog.Int("line", paren.Line),
			slog.Int("depth", i.depth),
		)
	}

	return callable.Call(i, arguments)
}

// VisitExprGet implements parser.ExprVisitor.
func (i *interpreter) VisitExprGet(exprGet *parser.ExprGet) (Value, error) {
	value, err := i.evaluate(exprGet.Instance)
	if err != nil {
		return nil, err
	}

	if instance, ok := value.(*LoxInstance); ok {
		return instance.Get(exprGet.Name)
	}

	return nil, loxerrors.NewRuntimeError(exprGet.Name, loxerrors.ErrRuntimeOnlyInstancesHaveProperties)
}

// VisitExprGrouping implements parser.ExprVisitor.
func (i *interpreter) VisitExprGrouping(exprGrouping *parser.ExprGrouping) (Value, error) {
	return i.evaluate(exprGrouping.Expression)
}

// VisitExprLiteral implements parser.ExprVisitor.
func (i *interpreter) VisitExprLiteral(exprLiteral *parser.ExprLiteral) (Value, error) {
	return literalValue(exprLiteral.Value), nil
}

// VisitExprLogical implements parser.ExprVisitor.
func (i *interpreter) VisitExprLogical(exprLogical *parser.ExprLogical) (Value, error) {
	left, err := i.evaluate(exprLogical.Left)
	if err != nil {
		return nil, err
	}

	if exprLogical.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return i.evaluate(exprLogical.Right)
}

// VisitExprSet implements parser.ExprVisitor.
func (i *interpreter) VisitExprSet(exprSet *parser.ExprSet) (Value, error) {
	object, err := i.evaluate(exprSet.Instance)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*LoxInstance)
	if !ok {
		return nil, loxerrors.NewRuntimeError(exprSet.Name, loxerrors.ErrRuntimeOnlyInstancesHaveFields)
	}

	value, err := i.evaluate(exprSet.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(exprSet.Name, value)
	return value, nil
}

// VisitExprSuper implements parser.ExprVisitor. The superclass sits at the
// resolved distance and this one frame closer.
func (i *interpreter) VisitExprSuper(exprSuper *parser.ExprSuper) (Value, error) {
	distance := i.locals[exprSuper]

	superValue, err := i.env.GetAt(distance, "super")
	if err != nil {
		return nil, loxerrors.NewRuntimeError(exprSuper.Keyword, err)
	}
	thisValue, err := i.env.GetAt(distance-1, "this")
	if err != nil {
		return nil, loxerrors.NewRuntimeError(exprSuper.Keyword, err)
	}

	superClass := superValue.(*LoxClass)
	method := superClass.FindMethod(exprSuper.Method.Lexeme)
	if method == nil {
		return nil, loxerrors.NewRuntimeError(exprSuper.Method, loxerrors.ErrRuntimeUndefinedPropertyError(exprSuper.Method.Lexeme))
	}

	return method.Bind(thisValue.(*LoxInstance)), nil
}

// VisitExprThis implements parser.ExprVisitor.
func (i *interpreter) VisitExprThis(exprThis *parser.ExprThis) (Value, error) {
	return i.lookUpVariable(exprThis.Keyword, exprThis)
}

// VisitExprUnary implements parser.ExprVisitor.
func (i *interpreter) VisitExprUnary(exprUnary *parser.ExprUnary) (Value, error) {
	right, err := i.evaluate(exprUnary.Right)
	if err != nil {
		return nil, err
	}

	switch exprUnary.Operator.Type {
	case token.BANG:
		return ValueBool(!isTruthy(right)), nil
	case token.MINUS:
		if num, ok := right.(ValueFloat); ok {
			return -num, nil
		}
		return nil, loxerrors.NewRuntimeError(exprUnary.Operator, loxerrors.ErrRuntimeOperandMustBeNumber)
	}

	panic(fmt.Sprintf("unexpected unary operator %v", exprUnary.Operator))
}

// VisitExprVariable implements parser.ExprVisitor.
func (i *interpreter) VisitExprVariable(exprVariable *parser.ExprVariable) (Value, error) {
	return i.lookUpVariable(exprVariable.Name, exprVariable)
}

// VisitStmtBlock implements parser.StmtVisitor.
func (i *interpreter) VisitStmtBlock(stmtBlock *parser.StmtBlock) (Value, error) {
	return i.executeBlock(stmtBlock.Statements, i.env.Nest())
}

// VisitStmtClass implements parser.StmtVisitor.
func (i *interpreter) VisitStmtClass(stmtClass *parser.StmtClass) (Value, error) {
	var superClass *LoxClass
	if stmtClass.SuperClass != nil {
		value, err := i.evaluate(stmtClass.SuperClass)
		if err != nil {
			return nil, err
		}

		var ok bool
		if superClass, ok = value.(*LoxClass); !ok {
			return nil, loxerrors.NewRuntimeError(stmtClass.SuperClass.Name, loxerrors.ErrRuntimeSuperClassMustBeClass)
		}
	}

	i.env.Define(stmtClass.Name.Lexeme, NilValue)

	methodsEnv := i.env
	if superClass != nil {
		methodsEnv = methodsEnv.Nest()
		methodsEnv.Define("super", superClass)
	}

	methods := make(map[string]*LoxFunction, len(stmtClass.Methods))
	for _, method := range stmtClass.Methods {
		methods[method.Name.Lexeme] = NewLoxFunction(method, methodsEnv, method.Name.Lexeme == initializerName)
	}

	class := NewLoxClass(stmtClass.Name.Lexeme, superClass, methods)
	i.logger.DebugContext(i.ctx, "class",
		slog.String("name", class.Name),
		slog.Int("methods", len(methods)),
		slog.Bool("subclass", superClass != nil),
	)
	return nil, i.env.Assign(stmtClass.Name, class)
}

// VisitStmtExpression implements parser.StmtVisitor.
func (i *interpreter) VisitStmtExpression(stmtExpression *parser.StmtExpression) (Value, error) {
	_, err := i.evaluate(stmtExpression.Expression)
	return nil, err
}

// VisitStmtFunction implements parser.StmtVisitor.
func (i *interpreter) VisitStmtFunction(stmtFunction *parser.StmtFunction) (Value, error) {
	function := NewLoxFunction(stmtFunction, i.env, false)
	i.env.Define(stmtFunction.Name.Lexeme, function)
	return nil, nil
}

// VisitStmtIf implements parser.StmtVisitor.
func (i *interpreter) VisitStmtIf(stmtIf *parser.StmtIf) (Value, error) {
	condition, err := i.evaluate(stmtIf.Condition)
	if err != nil {
		return nil, err
	}

	if isTruthy(condition) {
		return i.execute(stmtIf.ThenBranch)
	} else if stmtIf.ElseBranch != nil {
		return i.execute(stmtIf.ElseBranch)
	}

	return nil, nil
}

// VisitStmtPrint implements parser.StmtVisitor.
func (i *interpreter) VisitStmtPrint(stmtPrint *parser.StmtPrint) (Value, error) {
	value, err := i.evaluate(stmtPrint.Expression)
	if err != nil {
		return nil, err
	}

	_, err = fmt.Fprintln(i.opts.stdout, stringify(value))
	return nil, err
}

// VisitStmtReturn implements parser.StmtVisitor.
func (i *interpreter) VisitStmtReturn(stmtReturn *parser.StmtReturn) (Value, error) {
	var value Value = NilValue
	if stmtReturn.Value != nil {
		var err error
		if value, err = i.evaluate(stmtReturn.Value); err != nil {
			return nil, err
		}
	}

	return &returnValue{value: value}, nil
}

// VisitStmtVar implements parser.StmtVisitor.
func (i *interpreter) VisitStmtVar(stmtVar *parser.StmtVar) (Value, error) {
	var value Value = NilValue
	if stmtVar.Initializer != nil {
		var err error
		if value, err = i.evaluate(stmtVar.Initializer); err != nil {
			return nil, err
		}
	}

	i.env.Define(stmtVar.Name.Lexeme, value)
	return nil, nil
}

// VisitStmtWhile implements parser.StmtVisitor.
func (i *interpreter) VisitStmtWhile(stmtWhile *parser.StmtWhile) (Value, error) {
	for {
		if i.ctx.Err() != nil {
			return nil, loxerrors.NewRuntimeError(stmtWhile.Keyword, loxerrors.ErrRuntimeInterrupted)
		}

		condition, err := i.evaluate(stmtWhile.Condition)
		if err != nil {
			return nil, err
		}
		if !isTruthy(condition) {
			return nil, nil
		}

		if ret, err := i.execute(stmtWhile.Body); err != nil || ret != nil {
			return ret, err
		}
	}
}

func (i *interpreter) evaluate(expr parser.Expr) (Value, error) {
	return expr.Accept(i)
}

// execute yields a *returnValue while a return statement unwinds and nil
// once the statement ran to completion.
func (i *interpreter) execute(stmt parser.Stmt) (Value, error) {
	return stmt.Accept(i)
}

// executeBlock runs statements in env and restores the previous environment
// however the block exits.
func (i *interpreter) executeBlock(statements []parser.Stmt, env *environment) (Value, error) {
	previous := i.env
	defer func() { i.env = previous }()
	i.env = env

	for _, stmt := range statements {
		if ret, err := i.execute(stmt); err != nil || ret != nil {
			return ret, err
		}
	}

	return nil, nil
}

func (i *interpreter) lookUpVariable(name *token.Token, expr parser.Expr) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		value, err := i.env.GetAt(distance, name.Lexeme)
		if err != nil {
			return nil, loxerrors.NewRuntimeError(name, err)
		}
		return value, nil
	}

	return i.globals.Get(name)
}

func (i *interpreter) checkNumberOperands(operator *token.Token, left, right Value) (ValueFloat, ValueFloat, error) {
	leftNum, leftOk := left.(ValueFloat)
	rightNum, rightOk := right.(ValueFloat)
	if !leftOk || !rightOk {
		return 0, 0, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbers)
	}

	return leftNum, rightNum, nil
}

var (
	_ Interpreter        = (*interpreter)(nil)
	_ parser.ExprVisitor = (*interpreter)(nil)
	_ parser.StmtVisitor = (*interpreter)(nil)
)
