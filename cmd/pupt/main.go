package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/apowers313/pupt/internal/app"
	"github.com/apowers313/pupt/internal/cli"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/wire"
)

// main is the entrypoint for the pupt binary.
func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the real logic so tests and error handling stay simple.
func run(outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	var answers map[string]cty.Value
	if cfg.AnswersPath != "" {
		answers, err = cli.LoadAnswers(cfg.AnswersPath)
		if err != nil {
			return err
		}
	}

	docData, err := os.ReadFile(cfg.DocPath)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	puptApp := app.New(errW, &app.Config{
		LogFormat: cfg.LogFormat,
		LogLevel:  cfg.LogLevel,
	})

	root, err := wire.Decode(docData, puptApp.Catalog())
	if err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}

	result := puptApp.RenderDocument(context.Background(), root, render.Options{
		Format:   cfg.Format,
		Trim:     cfg.Trim,
		Indent:   cfg.Indent,
		MaxDepth: cfg.MaxDepth,
		Strict:   cfg.Strict,
		Answers:  answers,
		Env:      &render.EnvironmentFacts{TargetModel: cfg.TargetModel},
	})

	fmt.Fprintln(outW, result.Text)

	for _, act := range result.PostExecution {
		payload, merr := ctyjson.Marshal(act.Payload, act.Payload.Type())
		if merr != nil {
			payload = []byte("{}")
		}
		fmt.Fprintf(errW, "action %s: %s\n", act.Kind, payload)
	}

	if !result.OK {
		for _, re := range result.Errors {
			fmt.Fprintln(errW, re.Error())
		}
		return &cli.ExitError{
			Code:    1,
			Message: fmt.Sprintf("rendered with %d problem(s)", len(result.Errors)),
		}
	}
	return nil
}
