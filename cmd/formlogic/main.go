// Command formlogic validates and evaluates form documents.
//
//	formlogic validate [-json] FILE...
//	formlogic eval -form FILE [-responses JSON|FILE|-] [-query QUERY]
//	formlogic watch FILE
//	formlogic schema
//	formlogic prefill-url -form FILE -base URL [-values JSON|FILE|-]
//
// Logging, locale, currency and the rating range are configured with the
// FORMLOGIC_* environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

var errInvalid = errors.New("form is invalid")

const usage = `usage: formlogic <command> [flags]

commands:
  validate     check form documents and report errors and warnings
  eval         evaluate a form against responses and URL parameters
  watch        re-validate a form document whenever it changes
  schema       print the JSON Schema of form documents
  prefill-url  build a link that prefills a form
`

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	handler, err := cfg.Handler(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, cfg: cfg, logger: slog.New(handler)}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	var cmdErr error
	switch args[0] {
	case "validate":
		cmdErr = c.validate(args[1:])
	case "eval":
		cmdErr = c.eval(ctx, args[1:])
	case "watch":
		cmdErr = c.watch(ctx, args[1:])
	case "schema":
		cmdErr = c.schema()
	case "prefill-url":
		cmdErr = c.prefillURL(args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	switch {
	case cmdErr == nil:
		return exitOK
	case errors.Is(cmdErr, errInvalid):
		return exitInvalid
	case errors.Is(cmdErr, errUsage):
		fmt.Fprintln(stderr, cmdErr)
		return exitUsage
	default:
		c.logger.ErrorContext(ctx, "command failed", "command", args[0], "error", cmdErr)
		fmt.Fprintln(stderr, cmdErr)
		return exitInvalid
	}
}
