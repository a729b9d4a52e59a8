package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/leonardinius/treelox/internal/interpreter"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/scanner"
)

// Exit codes follow sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

var errInternal = errors.New("internal error")

type LoxApp struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	reporter    loxerrors.ErrReporter
	config      Config
	printAST    bool
	interpreter interpreter.Interpreter
	resolver    interpreter.Resolver
}

type AppOption func(*LoxApp)

// WithIO replaces the process standard streams.
func WithIO(stdin io.ReadCloser, stdout, stderr io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stdin = stdin
		app.stdout = stdout
		app.stderr = stderr
	}
}

func NewLoxApp(options ...AppOption) *LoxApp {
	app := &LoxApp{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range options {
		opt(app)
	}
	app.reporter = loxerrors.NewErrReporter(app.stderr)

	return app
}

func (app *LoxApp) Main(args []string) int {
	flags := flag.NewFlagSet("treelox", flag.ContinueOnError)
	flags.SetOutput(app.stderr)
	flags.Usage = func() {
		fmt.Fprintln(app.stderr, "Usage: treelox [flags] [script]")
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "YAML config `file` (default $HOME/"+defaultConfigName+")")
	strict := flags.Bool("strict", false, "report local variables that are never read")
	debug := flags.Bool("debug", false, "trace resolution and calls to stderr")
	printAST := flags.Bool("ast", false, "print the syntax tree instead of running")
	maxCallDepth := flags.Int("max-call-depth", interpreter.DefaultMaxCallDepth, "maximum call nesting, 0 disables the limit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(app.stderr, "treelox: %v\n", err)
		return ExitUsage
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			cfg.Strict = *strict
		case "debug":
			cfg.Debug = *debug
		case "max-call-depth":
			cfg.MaxCallDepth = *maxCallDepth
		}
	})
	app.printAST = *printAST
	app.setup(cfg)

	switch flags.NArg() {
	case 0:
		return app.runPrompt()
	case 1:
		return app.runFile(flags.Arg(0))
	default:
		flags.Usage()
		return ExitUsage
	}
}

func (app *LoxApp) setup(cfg Config) {
	app.config = cfg

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(app.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	app.interpreter = interpreter.NewInterpreter(
		interpreter.WithStdout(app.stdout),
		interpreter.WithErrorReporter(app.reporter),
		interpreter.WithLogger(logger),
		interpreter.WithMaxCallDepth(cfg.MaxCallDepth),
	)
	app.resolver = interpreter.NewResolver(app.interpreter, cfg.resolverProfile())
}

func (app *LoxApp) runFile(scriptPath string) int {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(app.stderr, "treelox: %v\n", err)
		return ExitIOErr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = app.run(ctx, string(bytes))
	return exitCode(err)
}

// run takes one unit of source through every phase. Each phase reports its
// own errors; the returned error only classifies the failure. The string is
// the value to echo, empty unless the last statement is an expression.
func (app *LoxApp) run(ctx context.Context, input string) (echo string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errInternal, r)
			app.reporter.ReportPanic(err)
		}
	}()

	tokens, err := scanner.NewScanner(input, app.reporter).Scan()
	if err != nil {
		return "", err
	}

	statements, err := parser.NewParser(tokens, app.reporter).Parse()
	if err != nil {
		return "", err
	}

	if app.printAST {
		_, err = fmt.Fprint(app.stdout, parser.NewAstPrinter().PrintProgram(statements))
		return "", err
	}

	if err := app.resolver.Resolve(ctx, statements); err != nil {
		return "", err
	}

	out, err := app.interpreter.Interpret(ctx, statements)
	if err != nil {
		return "", err
	}

	if len(statements) > 0 {
		if _, ok := statements[len(statements)-1].(*parser.StmtExpression); ok {
			return out, nil
		}
	}
	return "", nil
}

func exitCode(err error) int {
	var runtimeErr *loxerrors.RuntimeError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, loxerrors.ErrScanError),
		errors.Is(err, loxerrors.ErrParseError),
		errors.Is(err, loxerrors.ErrResolveError):
		return ExitDataErr
	case errors.As(err, &runtimeErr), errors.Is(err, errInternal):
		return ExitSoftware
	}

	return ExitIOErr
}
