package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrRuntimeOperandMustBeNumber          = errors.New("Operand must be a number.")
	ErrRuntimeOperandsMustBeNumbers        = errors.New("Operands must be numbers.")
	ErrRuntimeOperandsMustNumbersOrStrings = errors.New("Operands must be two numbers or two strings.")
	ErrRuntimeUndefinedVariable            = errors.New("Undefined variable")
	ErrRuntimeUndefinedProperty            = errors.New("Undefined property")
	ErrRuntimeCalleeMustBeCallable         = errors.New("Can only call functions and classes.")
	ErrRuntimeCalleeArity                  = errors.New("wrong number of arguments")
	ErrRuntimeOnlyInstancesHaveProperties  = errors.New("Only instances have properties.")
	ErrRuntimeOnlyInstancesHaveFields      = errors.New("Only instances have fields.")
	ErrRuntimeSuperClassMustBeClass        = errors.New("Superclass must be a class.")
	ErrRuntimeStackOverflow                = errors.New("Stack overflow.")
	ErrRuntimeInterrupted                  = errors.New("Interrupted.")
)

// The message-bearing errors below keep the plain Lox wording in Error()
// and still match their sentinel via errors.Is.

func ErrRuntimeCalleeArityError(expectedArity int, actualArity int) error {
	return &messageError{
		msg:      fmt.Sprintf("Expected %d arguments but got %d.", expectedArity, actualArity),
		sentinel: ErrRuntimeCalleeArity,
	}
}

func ErrRuntimeUndefinedPropertyError(name string) error {
	return &messageError{
		msg:      fmt.Sprintf("Undefined property '%s'.", name),
		sentinel: ErrRuntimeUndefinedProperty,
	}
}

func ErrRuntimeUndefinedVariableError(name string) error {
	return &messageError{
		msg:      fmt.Sprintf("Undefined variable '%s'.", name),
		sentinel: ErrRuntimeUndefinedVariable,
	}
}

func NewRuntimeError(tok *token.Token, cause error) error {
	return &RuntimeError{tok, cause}
}

type RuntimeError struct {
	tok   *token.Token
	cause error
}

// Token is the token that triggered the error.
func (r *RuntimeError) Token() *token.Token {
	return r.tok
}

// Message is the error text without the line suffix.
func (r *RuntimeError) Message() string {
	return r.cause.Error()
}

// Error implements error.
func (r *RuntimeError) Error() string {
	return fmt.Sprintf("%v\n[line %d]", r.cause, r.tok.Line)
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

type messageError struct {
	msg      string
	sentinel error
}

func (m *messageError) Error() string {
	return m.msg
}

func (m *messageError) Unwrap() error {
	return m.sentinel
}

var (
	_ error     = (*RuntimeError)(nil)
	_ unwrapper = (*RuntimeError)(nil)
	_ unwrapper = (*messageError)(nil)
)
