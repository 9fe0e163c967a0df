package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kemaleren/hamilton/internal/app"
	"github.com/kemaleren/hamilton/internal/cli"
)

// main is the entrypoint for the hamilton binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	hamiltonApp, err := app.NewApp(outW, errW, appConfig)
	if err != nil {
		return err
	}

	return hamiltonApp.Run(context.Background())
}
