package interpreter

import (
	"time"
)

// StdFnClock returns the wall clock in seconds.
func StdFnClock(interpreter *interpreter, arguments []Value) (Value, error) {
	return ValueFloat(float64(time.Now().UnixMilli()) / 1000), nil
}

func defineStd(globals *environment) {
	globals.Define("clock", NewNativeFunction("clock", 0, StdFnClock))
}
