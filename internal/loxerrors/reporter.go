package loxerrors

import (
	"fmt"
	"io"
)

// ErrReporter is the single sink every phase reports its errors to.
type ErrReporter interface {
	// ReportError prints a user facing scan, parse, resolve or runtime error.
	ReportError(err error)
	// ReportPanic prints an internal failure that escaped as a panic.
	ReportPanic(err error)
}

type errReporter struct {
	w io.Writer
}

// NewErrReporter writes one error per line to w.
func NewErrReporter(w io.Writer) ErrReporter {
	return &errReporter{w: w}
}

func (e *errReporter) ReportError(err error) {
	fmt.Fprintln(e.w, err)
}

func (e *errReporter) ReportPanic(err error) {
	fmt.Fprintf(e.w, "FATAL %v\n", err)
}

var _ ErrReporter = (*errReporter)(nil)
