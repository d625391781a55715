package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/metrics"
	"github.com/deep-archive/setup/internal/orchestration"
	"github.com/deep-archive/setup/internal/provisioning"
)

// newOrchestrator creates the orchestrator for a run - can be replaced in tests.
var newOrchestrator = orchestration.New

// RunOptions holds the flags of the root command.
type RunOptions struct {
	ConfigPath  string
	JSON        bool
	Verbosity   int
	MetricsFile string
}

// Run performs the bootstrap. It returns an error when the run aborted so
// that the process exits non-zero; warnings alone never cause an error.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.MetricsFile != "" {
		if cfg.MetricsFile, err = config.ExpandPath(opts.MetricsFile); err != nil {
			return err
		}
	}

	logger := newLogger(opts.Verbosity).WithName("setup")

	orchOpts := orchestration.Options{
		Config:       cfg,
		Observer:     provisioning.NewObserver(logger),
		Availability: commandAvailability,
	}
	if cfg.MetricsFile != "" {
		orchOpts.Metrics = metrics.NewRecorder()
	}

	result := newOrchestrator(orchOpts).Run(ctx)

	if opts.JSON {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printRunSummary(result)
	}

	if !result.Succeeded() {
		return fmt.Errorf("bootstrap aborted: %w", result.Err)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printRunSummary prints a human-readable summary of the run.
func printRunSummary(r *orchestration.Result) {
	fmt.Println()
	if r.Succeeded() {
		fmt.Println("Environment ready")
	} else {
		fmt.Printf("Bootstrap aborted after %s\n", r.LastStage())
	}
	fmt.Println("-----------------")
	fmt.Printf("  Run:          %s\n", r.RunID)
	fmt.Printf("  Directories:  %d created, %d already present\n", len(r.Directories.Created), len(r.Directories.Present))
	if r.Dependencies.Platform != "" {
		fmt.Printf("  Dependencies: %d found, %d missing (%s)\n", len(r.Dependencies.Present), len(r.Dependencies.Missing), r.Dependencies.Platform)
	}
	if r.Artifacts.Transport != "" {
		fmt.Printf("  Artifacts:    %d downloaded, %d already present (via %s)\n", len(r.Artifacts.Downloaded), len(r.Artifacts.Satisfied), r.Artifacts.Transport)
	}
	if r.EnvFile != "" {
		fmt.Printf("  Model paths:  %s\n", r.EnvFile)
	}

	if len(r.Warnings) > 0 {
		fmt.Println()
		fmt.Printf("Warnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	if !r.Succeeded() {
		fmt.Println()
		fmt.Printf("Error: %s\n", r.Error)
		if hint := abortHint(r.ErrorKind); hint != "" {
			fmt.Println(hint)
		}
	}
	fmt.Println()
}

func abortHint(kind string) string {
	switch provisioning.Kind(kind) {
	case provisioning.KindTransportUnavailable:
		return "Install curl or wget, or configure the s3 mirror, then run again."
	case provisioning.KindDirectory:
		return "Remove or rename the file in the way, then run again."
	case provisioning.KindDownload:
		return "Delete the partially downloaded file before running again."
	default:
		return ""
	}
}
