package commands

import (
	"github.com/spf13/cobra"

	"github.com/deep-archive/setup/cmd/deep-archive-setup/handlers"
)

// Check returns the command that only probes dependencies. It shares the
// root's persistent --config and --json flags.
func Check(opts *handlers.RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that required tools are installed",
		Long: `Check that the executables the pipeline needs are on PATH.

Nothing is created or downloaded. Missing tools are listed with an install
command for this platform; the command still exits successfully.

Examples:
  deep-archive-setup check
  deep-archive-setup check --json`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Check(opts.ConfigPath, opts.JSON)
		},
	}
}
