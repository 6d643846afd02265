// Package cli parses command-line arguments for the pupt binary.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/apowers313/pupt/internal/render"
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	DocPath     string
	AnswersPath string
	Format      render.Format
	Trim        render.TrimMode
	Indent      string
	MaxDepth    int
	Strict      bool
	TargetModel string
	LogFormat   string
	LogLevel    string
}

// Parse processes command-line arguments. It returns the populated Config,
// a boolean indicating the program should exit cleanly (help shown), or an
// ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("pupt", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pupt - renders prompt component documents.

Usage:
  pupt [options] DOC_PATH

Arguments:
  DOC_PATH
    Path to a compiled document tree (.json).

Options:
`)
		flagSet.PrintDefaults()
	}

	answersFlag := flagSet.String("answers", "", "Path to a YAML file of pre-seeded answers.")
	formatFlag := flagSet.String("format", "markdown", "Delimiter style. Options: 'markdown', 'xml' or 'plain'.")
	noTrimFlag := flagSet.Bool("no-trim", false, "Keep leading/trailing whitespace in the output.")
	indentFlag := flagSet.String("indent", "  ", "Indentation unit used by structural components.")
	maxDepthFlag := flagSet.Int("max-depth", render.DefaultMaxDepth, "Maximum tree depth before the render fails closed.")
	strictFlag := flagSet.Bool("strict", false, "Report components that declare no prop schema.")
	modelFlag := flagSet.String("model", "", "Target model name exposed to components as an environment fact.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	format := render.Format(strings.ToLower(*formatFlag))
	switch format {
	case render.FormatMarkdown, render.FormatXML, render.FormatPlain:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid format %q", *formatFlag)}
	}

	trim := render.TrimOuter
	if *noTrimFlag {
		trim = render.TrimNone
	}

	return &Config{
		DocPath:     flagSet.Arg(0),
		AnswersPath: *answersFlag,
		Format:      format,
		Trim:        trim,
		Indent:      *indentFlag,
		MaxDepth:    *maxDepthFlag,
		Strict:      *strictFlag,
		TargetModel: *modelFlag,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
	}, false, nil
}
