package interpreter

import (
	"fmt"

	"github.com/leonardinius/treelox/internal/parser"
)

// LoxFunction is a user function or method together with the environment it
// closes over.
type LoxFunction struct {
	Declaration   *parser.StmtFunction
	Closure       *environment
	IsInitializer bool
}

func NewLoxFunction(declaration *parser.StmtFunction, closure *environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{
		Declaration:   declaration,
		Closure:       closure,
		IsInitializer: isInitializer,
	}
}

// Bind returns a copy of the method whose closure defines this as instance.
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := f.Closure.Nest()
	env.Define("this", instance)
	return NewLoxFunction(f.Declaration, env, f.IsInitializer)
}

// Type implements Value.
func (f *LoxFunction) Type() parser.ValueType {
	return parser.ValueCallableType
}

// Arity implements Callable.
func (f *LoxFunction) Arity() Arity {
	return Arity(len(f.Declaration.Parameters))
}

// Call implements Callable. An initializer yields the bound instance no
// matter how its body ends.
func (f *LoxFunction) Call(interpreter *interpreter, arguments []Value) (Value, error) {
	env := f.Closure.Nest()
	for i, param := range f.Declaration.Parameters {
		env.Define(param.Lexeme, arguments[i])
	}

	ret, err := interpreter.executeBlock(f.Declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this")
	}

	if ret, ok := ret.(*returnValue); ok {
		return ret.value, nil
	}

	return NilValue, nil
}

func (f *LoxFunction) callable() {}

func (f *LoxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

func (f *LoxFunction) GoString() string {
	return fmt.Sprintf("<fn %s/%s>", f.Declaration.Name.Lexeme, f.Arity())
}

var (
	_ Callable       = (*LoxFunction)(nil)
	_ fmt.Stringer   = (*LoxFunction)(nil)
	_ fmt.GoStringer = (*LoxFunction)(nil)
)
