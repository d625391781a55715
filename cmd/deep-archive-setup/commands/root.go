// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/deep-archive/setup/cmd/deep-archive-setup/handlers"
)

// Root returns the root command for the deep-archive-setup CLI.
//
// Invoked without a subcommand it runs the bootstrap. It exits non-zero
// only when the run aborted; missing dependencies are reported as warnings.
//
// Flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect deep-archive-setup.yaml)
//	--json: Print the result as JSON
//	--verbose, -v: Log every directory, dependency and artifact (repeatable)
//	--metrics-file: Write a Prometheus textfile with the run outcome
func Root() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "deep-archive-setup",
		Short: "Prepare this host to run the deep-archive media pipeline",
		Long: `Prepare this host to run the deep-archive media pipeline.

The bootstrap:
  - Creates the working directories (models, input, output, data)
  - Checks for ffmpeg and xorriso and prints install hints for missing ones
  - Downloads the NSFW and tagger models with curl (or wget)
  - Writes the model paths to .env

It is safe to run repeatedly; existing directories and models are left alone.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: deep-archive-setup.yaml if present)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	cmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase log verbosity")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write a Prometheus textfile to this path")

	cmd.AddCommand(Check(&opts))
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
