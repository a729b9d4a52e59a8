package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrResolveError                               = errors.New("resolve error.")
	ErrResolveCantInitVarSelfReference            = errors.New("Can't read local variable in its own initializer.")
	ErrResolveCantDuplicateVariableDefinition     = errors.New("Already a variable with this name in this scope.")
	ErrResolveReturnOutsideFunction               = errors.New("Can't return from top-level code.")
	ErrResolveCantReturnValueFromInitializer      = errors.New("Can't return a value from an initializer.")
	ErrResolveThisOutsideClass                    = errors.New("Can't use 'this' outside of a class.")
	ErrResolveCantUseSuperOutsideClass            = errors.New("Can't use 'super' outside of a class.")
	ErrResolveCantUseSuperInClassWithNoSuperclass = errors.New("Can't use 'super' in a class with no superclass.")
	ErrResolveClassCantInheritFromItself          = errors.New("A class can't inherit from itself.")
	ErrResolveLocalVariableNotUsed                = errors.New("Local variable is not used.")
)

func NewResolveError(tok *token.Token, cause error) error {
	return &ResolverError{tok: tok, cause: cause}
}

// ResolverError is a static error found by the resolver pass.
type ResolverError struct {
	tok   *token.Token
	cause error
}

func (r *ResolverError) Token() *token.Token {
	return r.tok
}

// Error implements error.
func (r *ResolverError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %v", r.tok.Line, where(r.tok), r.cause)
}

func (r *ResolverError) Unwrap() error {
	return r.cause
}

var (
	_ error     = (*ResolverError)(nil)
	_ unwrapper = (*ResolverError)(nil)
)
