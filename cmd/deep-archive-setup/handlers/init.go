package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// writeConfig writes the config to a file.
	writeConfig = config.Save

	// runWizard runs the interactive wizard.
	runWizard = wizard.Run

	// stdinIsTerminal reports whether the wizard can ask questions.
	stdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
)

// Init writes a configuration file to outputPath. On a terminal it asks for
// the transport order and the S3 mirror first; with useDefaults, or when
// stdin is not a terminal, the built-in configuration is written as is.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	if outputPath == "" {
		outputPath = config.DefaultConfigFilename
	}
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	cfg := config.Default()
	if !useDefaults && stdinIsTerminal() {
		printWelcome()

		result, err := runWizard(ctx)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
		cfg = wizard.BuildConfig(result)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("deep-archive-setup")
	fmt.Println("==================")
	fmt.Println()
	fmt.Println("Choose how the models are downloaded. Everything else keeps its default")
	fmt.Println("and can be edited in the generated file.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File:         %s\n", outputPath)
	fmt.Printf("  Directories:  %d\n", len(cfg.Directories))
	fmt.Printf("  Dependencies: %d\n", len(cfg.Dependencies))
	fmt.Printf("  Artifacts:    %d\n", len(cfg.Artifacts))
	fmt.Printf("  Transports:   %s\n", strings.Join(cfg.Transports, ", "))
	if cfg.S3Mirror.Bucket != "" {
		fmt.Printf("  S3 mirror:    s3://%s/%s\n", cfg.S3Mirror.Bucket, cfg.S3Mirror.ObjectKey(""))
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Review the file; S3 mirror credentials are read from DEEP_ARCHIVE_S3_ACCESS_KEY and DEEP_ARCHIVE_S3_SECRET_KEY")
	fmt.Println("  2. Run: deep-archive-setup")
}
