package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/scanner"
	"github.com/leonardinius/treelox/internal/token"
)

const continuationPrompt = "... "

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

func (app *LoxApp) runPrompt() int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            app.config.Prompt,
		HistoryFile:       app.config.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             app.stdin,
		Stdout:            app.stdout,
		Stderr:            app.stderr,
	})
	if err != nil {
		fmt.Fprintf(app.stderr, "treelox: %v\n", err)
		return ExitIOErr
	}

	return app.repl(rl)
}

// repl reads statements until EOF. An unfinished block, string or block
// comment continues on the next line. Errors are reported and the session goes on with whatever
// state the failed line left behind.
func (app *LoxApp) repl(rl lineReader) int {
	defer rl.Close()

	var pending strings.Builder
	more := false

	for {
		if more {
			rl.SetPrompt(continuationPrompt)
		} else {
			rl.SetPrompt(app.config.Prompt)
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			more = false
			continue
		}
		if errors.Is(err, io.EOF) {
			return ExitOK
		}
		if err != nil {
			fmt.Fprintf(app.stderr, "treelox: %v\n", err)
			return ExitIOErr
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		source := pending.String()
		if more = incomplete(source); more {
			continue
		}

		pending.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		app.evalLine(source)
	}
}

// incomplete reports whether source ends inside a block, a string or a block
// comment. Braces are counted on tokens so the ones in strings and comments
// do not count.
func incomplete(source string) bool {
	reporter := &collectingReporter{}
	tokens, _ := scanner.NewScanner(source, reporter).Scan()
	for _, err := range reporter.errs {
		if errors.Is(err, loxerrors.ErrScanUnterminatedString) || errors.Is(err, loxerrors.ErrScanUnterminatedComment) {
			return true
		}
	}

	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LEFT_BRACE:
			depth++
		case token.RIGHT_BRACE:
			depth--
		}
	}
	return depth > 0
}

// collectingReporter keeps scan errors instead of printing them; the full
// entry is scanned again, with the real reporter, once it is complete.
type collectingReporter struct {
	errs []error
}

func (c *collectingReporter) ReportError(err error) {
	c.errs = append(c.errs, err)
}

func (c *collectingReporter) ReportPanic(err error) {
	c.errs = append(c.errs, err)
}

// evalLine runs one REPL entry; SIGINT cancels it without leaving the REPL.
func (app *LoxApp) evalLine(source string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if out, err := app.run(ctx, source); err == nil && out != "" {
		fmt.Fprintln(app.stdout, out)
	}
}
