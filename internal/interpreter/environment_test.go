package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

func ident(lexeme string) *token.Token {
	return token.NewTokenHeap(token.IDENTIFIER, lexeme, nil, 1)
}

func TestEnvironmentGet(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", ValueFloat(1))
	global.Define("shadowed", ValueString("global"))

	local := global.Nest()
	local.Define("shadowed", ValueString("local"))
	local.Define("b", NilValue)

	testcases := []struct {
		name     string
		env      *environment
		variable string
		expected Value
		err      error
	}{
		{name: "own frame", env: global, variable: "a", expected: ValueFloat(1)},
		{name: "enclosing frame", env: local, variable: "a", expected: ValueFloat(1)},
		{name: "shadowed", env: local, variable: "shadowed", expected: ValueString("local")},
		{name: "nil is defined", env: local, variable: "b", expected: NilValue},
		{name: "undefined", env: local, variable: "c", err: loxerrors.ErrRuntimeUndefinedVariable},
		{name: "inner invisible to outer", env: global, variable: "b", err: loxerrors.ErrRuntimeUndefinedVariable},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := tc.env.Get(ident(tc.variable))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestEnvironmentAssign(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", ValueFloat(1))
	local := global.Nest()

	require.NoError(t, local.Assign(ident("a"), ValueFloat(2)))
	assert.Equal(t, "{} -> {a=2}", local.String())

	err := local.Assign(ident("missing"), ValueFloat(3))
	assert.ErrorIs(t, err, loxerrors.ErrRuntimeUndefinedVariable)
	assert.EqualError(t, err, "Undefined variable 'missing'.\n[line 1]")
}

func TestEnvironmentDefineOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", ValueFloat(1))
	env.Define("a", ValueString("two"))

	value, err := env.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, ValueString("two"), value)
}

func TestEnvironmentAt(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", ValueString("global"))
	middle := global.Nest()
	middle.Define("a", ValueString("middle"))
	inner := middle.Nest()

	assert.Same(t, inner, inner.Ancestor(0))
	assert.Same(t, middle, inner.Ancestor(1))
	assert.Same(t, global, inner.Ancestor(2))
	assert.Same(t, middle, inner.Enclosing())

	value, err := inner.GetAt(2, "a")
	require.NoError(t, err)
	assert.Equal(t, ValueString("global"), value)

	_, err = inner.GetAt(0, "a")
	assert.ErrorIs(t, err, loxerrors.ErrRuntimeUndefinedVariable)

	inner.AssignAt(1, ident("a"), ValueBool(true))
	assert.Equal(t, "{} -> {a=true} -> {a=global}", inner.String())
}

func TestEnvironmentClosureSharing(t *testing.T) {
	frame := NewEnvironment()
	frame.Define("x", ValueFloat(1))
	captured := frame.Nest()

	require.NoError(t, frame.Assign(ident("x"), ValueFloat(5)))

	value, err := captured.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, ValueFloat(5), value)
}
