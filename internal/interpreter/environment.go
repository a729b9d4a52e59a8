package interpreter

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// environment is one frame of the lexical scope chain. Frames are shared by
// pointer: a closure keeps its defining frame alive and sees every later
// mutation of it. Bindings are never removed.
type environment struct {
	enclosing *environment
	values    map[string]Value
}

func NewEnvironment() *environment {
	return &environment{}
}

// Define binds name in this frame, overwriting any previous binding here.
func (e *environment) Define(name string, value Value) {
	if e.values == nil {
		e.values = make(map[string]Value)
	}
	e.values[name] = value
}

func (e *environment) Get(name *token.Token) (Value, error) {
	for self := e; self != nil; self = self.enclosing {
		if value, ok := self.values[name.Lexeme]; ok {
			return value, nil
		}
	}

	return nil, e.undefinedVariable(name)
}

// Assign updates the nearest frame that already binds name.
func (e *environment) Assign(name *token.Token, value Value) error {
	for self := e; self != nil; self = self.enclosing {
		if _, ok := self.values[name.Lexeme]; ok {
			self.values[name.Lexeme] = value
			return nil
		}
	}

	return e.undefinedVariable(name)
}

// GetAt reads name from the frame distance hops up, without searching.
func (e *environment) GetAt(distance int, name string) (Value, error) {
	if value, ok := e.Ancestor(distance).values[name]; ok {
		return value, nil
	}

	return nil, loxerrors.ErrRuntimeUndefinedVariableError(name)
}

func (e *environment) AssignAt(distance int, name *token.Token, value Value) {
	e.Ancestor(distance).Define(name.Lexeme, value)
}

// Ancestor walks exactly distance enclosing links. The distance comes from
// the resolver and is never larger than the chain.
func (e *environment) Ancestor(distance int) *environment {
	self := e
	for distance > 0 {
		self = self.enclosing
		distance--
	}

	return self
}

func (e *environment) Nest() *environment {
	env := NewEnvironment()
	env.enclosing = e
	return env
}

func (e *environment) Enclosing() *environment {
	return e.enclosing
}

func (e *environment) undefinedVariable(name *token.Token) error {
	return loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedVariableError(name.Lexeme))
}

// String dumps the chain innermost first, names sorted within a frame.
func (e *environment) String() string {
	w := new(strings.Builder)

	for self := e; self != nil; self = self.enclosing {
		names := maps.Keys(self.values)
		slices.Sort(names)

		_, _ = w.WriteString("{")
		for idx, name := range names {
			if idx > 0 {
				_, _ = w.WriteString(",")
			}
			_, _ = fmt.Fprintf(w, "%s=%s", name, stringify(self.values[name]))
		}
		_, _ = w.WriteString("}")
		if self.enclosing != nil {
			_, _ = w.WriteString(" -> ")
		}
	}

	return w.String()
}

var _ fmt.Stringer = (*environment)(nil)
