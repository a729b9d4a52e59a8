package interpreter

import (
	"fmt"
	"strconv"

	"github.com/leonardinius/treelox/internal/parser"
)

// Arity is the exact number of arguments a callable accepts.
type Arity int

func (a Arity) String() string {
	return strconv.Itoa(int(a))
}

// Callable is the capability shared by native functions, user functions and
// classes. The set is closed: only this package implements it.
type Callable interface {
	Value
	Arity() Arity
	Call(interpreter *interpreter, arguments []Value) (Value, error)

	callable()
}

// NativeFunction is a builtin implemented in Go.
type NativeFunction struct {
	Name  string
	arity Arity
	fn    func(interpreter *interpreter, arguments []Value) (Value, error)
}

func NewNativeFunction(name string, arity Arity, fn func(interpreter *interpreter, arguments []Value) (Value, error)) *NativeFunction {
	return &NativeFunction{Name: name, arity: arity, fn: fn}
}

// Type implements Value.
func (n *NativeFunction) Type() parser.ValueType {
	return parser.ValueCallableType
}

// Arity implements Callable.
func (n *NativeFunction) Arity() Arity {
	return n.arity
}

// Call implements Callable.
func (n *NativeFunction) Call(interpreter *interpreter, arguments []Value) (Value, error) {
	return n.fn(interpreter, arguments)
}

func (n *NativeFunction) callable() {}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

func (n *NativeFunction) GoString() string {
	return fmt.Sprintf("<native fn %s/%s>", n.Name, n.arity)
}

var (
	_ Callable       = (*NativeFunction)(nil)
	_ fmt.Stringer   = (*NativeFunction)(nil)
	_ fmt.GoStringer = (*NativeFunction)(nil)
)
