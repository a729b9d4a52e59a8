package interpreter

import (
	"fmt"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

const initializerName = "init"

type LoxClass struct {
	Name       string
	SuperClass *LoxClass
	Methods    map[string]*LoxFunction
}

func NewLoxClass(name string, superClass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{
		Name:       name,
		SuperClass: superClass,
		Methods:    methods,
	}
}

// FindMethod looks in the class first, then up the superclass chain.
func (c *LoxClass) FindMethod(name string) *LoxFunction {
	for class := c; class != nil; class = class.SuperClass {
		if method, ok := class.Methods[name]; ok {
			return method
		}
	}

	return nil
}

// Type implements Value.
func (c *LoxClass) Type() parser.ValueType {
	return parser.ValueClassType
}

// Arity implements Callable.
func (c *LoxClass) Arity() Arity {
	if initializer := c.FindMethod(initializerName); initializer != nil {
		return initializer.Arity()
	}

	return 0
}

// Call implements Callable. Calling a class constructs an instance and runs
// init on it, if any.
func (c *LoxClass) Call(interpreter *interpreter, arguments []Value) (Value, error) {
	instance := NewLoxInstance(c)
	if initializer := c.FindMethod(initializerName); initializer != nil {
		if _, err := initializer.Bind(instance).Call(interpreter, arguments); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (c *LoxClass) callable() {}

func (c *LoxClass) String() string {
	return c.Name
}

func (c *LoxClass) GoString() string {
	if c.SuperClass != nil {
		return fmt.Sprintf("<class %s < %s>", c.Name, c.SuperClass.Name)
	}
	return fmt.Sprintf("<class %s>", c.Name)
}

type LoxInstance struct {
	Class  *LoxClass
	Fields map[string]Value
}

func NewLoxInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{
		Class:  class,
		Fields: make(map[string]Value),
	}
}

// Get returns the field if present, else the class method bound to the
// instance. Fields shadow methods.
func (i *LoxInstance) Get(name *token.Token) (Value, error) {
	if value, ok := i.Fields[name.Lexeme]; ok {
		return value, nil
	}

	if method := i.Class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}

	return nil, loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedPropertyError(name.Lexeme))
}

func (i *LoxInstance) Set(name *token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}

// Type implements Value.
func (i *LoxInstance) Type() parser.ValueType {
	return parser.ValueObjectType
}

func (i *LoxInstance) String() string {
	return i.Class.Name + " instance"
}

var (
	_ Callable       = (*LoxClass)(nil)
	_ fmt.Stringer   = (*LoxClass)(nil)
	_ fmt.GoStringer = (*LoxClass)(nil)
	_ Value          = (*LoxInstance)(nil)
	_ fmt.Stringer   = (*LoxInstance)(nil)
)
