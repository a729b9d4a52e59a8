// Package loxerrors holds the error values of every treelox phase: the
// sentinel messages, the token-carrying wrappers that render them in the
// "[line N] Error ..." layout and the ErrReporter sink they are sent to.
package loxerrors

// unwrapper is satisfied by every wrapper here so errors.Is and errors.As
// reach the sentinel message.
type unwrapper interface {
	Unwrap() error
}
