package interpreter

import (
	"io"
	"log/slog"
	"os"

	"github.com/leonardinius/treelox/internal/loxerrors"
)

// DefaultMaxCallDepth bounds nested calls; deeper recursion fails with a
// runtime error instead of exhausting the Go stack.
const DefaultMaxCallDepth = 1 << 14

type interpreterOpts struct {
	globals      *environment
	stdout       io.Writer
	stderr       io.Writer
	reporter     loxerrors.ErrReporter
	logger       *slog.Logger
	maxCallDepth int
}

type InterpreterOption func(*interpreterOpts)

func WithGlobals(globals *environment) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.globals = globals
	}
}

func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

// WithStderr sets where the default error reporter writes.
func WithStderr(stderr io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stderr = stderr
	}
}

func WithErrorReporter(reporter loxerrors.ErrReporter) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.reporter = reporter
	}
}

func WithLogger(logger *slog.Logger) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.logger = logger
	}
}

// WithMaxCallDepth limits call nesting. Zero or less disables the limit.
func WithMaxCallDepth(depth int) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.maxCallDepth = depth
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := &interpreterOpts{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		maxCallDepth: DefaultMaxCallDepth,
	}

	for _, opt := range options {
		opt(opts)
	}

	if opts.globals == nil {
		opts.globals = NewEnvironment()
	}
	if opts.reporter == nil {
		opts.reporter = loxerrors.NewErrReporter(opts.stderr)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return opts
}
