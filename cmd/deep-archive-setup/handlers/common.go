package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// Factory function variables shared by the handlers - can be replaced in tests.
var (
	// commandAvailability resolves executables for dependency checks and transports.
	commandAvailability prerequisites.CommandAvailability = prerequisites.SystemPath

	// logOutput receives progress logs.
	logOutput io.Writer = os.Stderr

	// isTerminal reports whether progress logs go to an interactive terminal.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
)

// loadConfig loads configuration from configPath, or from the default file
// in the working directory when it exists, or from built-in defaults.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := config.FindConfigFile(".")
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the progress logger. Timestamps are added when output is
// not a terminal, so that captured logs can be correlated.
func newLogger(verbosity int) logr.Logger {
	out := logOutput
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(out, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(out, args)
	}, funcr.Options{
		LogTimestamp: !isTerminal(),
		Verbosity:    verbosity,
	})
}
