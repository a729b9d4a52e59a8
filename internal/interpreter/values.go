package interpreter

import (
	"math"
	"strconv"

	"github.com/leonardinius/treelox/internal/parser"
)

// Value alias, not type redefinition.
type Value = parser.Value

// The scalar variants. Callables (*NativeFunction, *LoxFunction, *LoxClass)
// and *LoxInstance are the reference variants; all of them are comparable, so
// two Values can always be checked with ==.
type (
	ValueNil    struct{}
	ValueBool   bool
	ValueFloat  float64
	ValueString string
)

var NilValue = ValueNil{}

// Type implements parser.Value.
func (v ValueNil) Type() parser.ValueType {
	return parser.ValueNilType
}

// Type implements parser.Value.
func (v ValueBool) Type() parser.ValueType {
	return parser.ValueBoolType
}

// Type implements parser.Value.
func (v ValueFloat) Type() parser.ValueType {
	return parser.ValueFloatType
}

// Type implements parser.Value.
func (v ValueString) Type() parser.ValueType {
	return parser.ValueStringType
}

func (v ValueNil) String() string {
	return "nil"
}

func (v ValueBool) String() string {
	return strconv.FormatBool(bool(v))
}

// String drops the fractional part of integral numbers: 3, not 3.0.
func (v ValueFloat) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v ValueString) String() string {
	return string(v)
}

// returnValue is the unwind signal of a return statement. Statement execution
// yields it instead of nil; blocks and loops stop and pass it up unchanged and
// the nearest LoxFunction.Call unwraps it. It never escapes a call.
type returnValue struct {
	value Value
}

// Type implements parser.Value.
func (r *returnValue) Type() parser.ValueType {
	return r.value.Type()
}

func literalValue(literal any) Value {
	switch v := literal.(type) {
	case nil:
		return NilValue
	case bool:
		return ValueBool(v)
	case float64:
		return ValueFloat(v)
	case string:
		return ValueString(v)
	}
	panic("unexpected literal type")
}

func isTruthy(value Value) bool {
	switch v := value.(type) {
	case nil, ValueNil:
		return false
	case ValueBool:
		return bool(v)
	}
	return true
}

func isEqual(left, right Value) bool {
	return left == right
}

func stringify(value Value) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case interface{ String() string }:
		return v.String()
	}
	panic("value without display form")
}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueFloat(0)
	_ Value = ValueString("")
	_ Value = (*returnValue)(nil)
)
