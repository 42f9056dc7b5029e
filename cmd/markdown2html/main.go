// Command markdown2html converts a Markdown file to HTML.
//
// Usage:
//
//	markdown2html <input> <output>
//
// Inputs compressed with xz or gzip are decompressed automatically. The output
// is always plain HTML. Both arguments are taken as paths even when they start
// with a dash. Set MARKDOWN2HTML_LOG_LEVEL=debug to trace a run on stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/markdown2html/core/errors"
	"github.com/FocuswithJustin/markdown2html/core/markdown"
	"github.com/FocuswithJustin/markdown2html/internal/fileutil"
	"github.com/FocuswithJustin/markdown2html/internal/logging"
	"github.com/FocuswithJustin/markdown2html/internal/validation"
)

const usage = "Usage: markdown2html README.md README.html"

// CLI defines the command-line interface for markdown2html.
type CLI struct {
	Input  string   `arg:"" name:"input" help:"Markdown file to convert"`
	Output string   `arg:"" name:"output" help:"HTML file to write, replaced if it exists"`
	Extra  []string `arg:"" optional:"" name:"ignored" help:"Further arguments are ignored"`

	// Positionals follow a "--" inserted by run, so this is set from the
	// environment only.
	LogLevel string `name:"log-level" env:"MARKDOWN2HTML_LOG_LEVEL" enum:"debug,info,warn,error" default:"warn" hidden:""`
}

// Run converts c.Input into c.Output.
func (c *CLI) Run(ctx context.Context) error {
	if !fileutil.Exists(c.Input) {
		return errors.NewMissingInput(c.Input, nil)
	}
	if err := validation.ValidatePath(c.Output); err != nil {
		return errors.NewValidation("output", err.Error(), err)
	}

	start := time.Now()
	doc, err := fileutil.ReadDocument(c.Input)
	if err != nil {
		logging.ConversionFailed(ctx, "read", err, "path", c.Input)
		return errors.NewIO("read", c.Input, err)
	}
	logging.ConversionStart(ctx, c.Input, c.Output, len(doc.Lines),
		"compression", string(doc.Compression),
		"size", doc.Size,
	)

	out, err := fileutil.Create(c.Output)
	if err != nil {
		logging.ConversionFailed(ctx, "create", err, "path", c.Output)
		return errors.NewIO("create", c.Output, err)
	}

	conv := markdown.New(markdown.Config{Logger: logging.LoggerFromContext(ctx)})
	if err := conv.ConvertContext(ctx, out, doc.Lines); err != nil {
		out.Close()
		logging.ConversionFailed(ctx, "write", err, "path", c.Output)
		return errors.NewIO("write", c.Output, err)
	}
	if err := out.Close(); err != nil {
		logging.ConversionFailed(ctx, "close", err, "path", c.Output)
		return errors.NewIO("write", c.Output, err)
	}

	logging.ConversionComplete(ctx, c.Input, c.Output, doc.BLAKE3, out.BLAKE3(), out.BytesWritten(), time.Since(start))
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("markdown2html"),
		kong.Description("Convert a Markdown file to HTML."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		return report(stderr, err)
	}

	_, err = parser.Parse(positional(args))
	if exitCode >= 0 {
		// --help
		return exitCode
	}
	if err != nil {
		return report(stderr, errors.NewUsage(usage, err))
	}

	logging.InitLoggerWithWriter(stderr, logging.ParseLevel(cli.LogLevel), logging.FormatJSON)
	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	return report(stderr, cli.Run(ctx))
}

// positional stops kong from reading dash-prefixed paths as flags. A leading
// -h or --help still shows help.
func positional(args []string) []string {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return args
	}
	return append([]string{"--"}, args...)
}

// report writes the diagnostic for err, if any, and returns the exit code.
func report(stderr io.Writer, err error) int {
	if err != nil {
		fmt.Fprintln(stderr, errors.UserMessage(err))
	}
	return errors.ExitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
