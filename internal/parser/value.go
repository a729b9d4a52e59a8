package parser

type ValueType uint

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueFloatType
	ValueStringType
	ValueCallableType
	ValueClassType
	ValueObjectType
)

var valueTypeNames = [...]string{
	ValueNilType:      "nil",
	ValueBoolType:     "boolean",
	ValueFloatType:    "number",
	ValueStringType:   "string",
	ValueCallableType: "function",
	ValueClassType:    "class",
	ValueObjectType:   "instance",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "unknown"
}

// Value is a runtime value. Visitors produce them; the interpreter owns the
// concrete variants.
type Value interface {
	Type() ValueType
}
