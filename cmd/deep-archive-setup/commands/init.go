package commands

import (
	"github.com/spf13/cobra"

	"github.com/deep-archive/setup/cmd/deep-archive-setup/handlers"
)

// Init returns the command that writes an editable configuration file.
//
// Optional flags:
//
//	--output, -o: Output file path (default: deep-archive-setup.yaml)
//	--defaults: Skip the interactive wizard and write the built-in configuration
func Init() *cobra.Command {
	var (
		outputPath  string
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Long: `Write a configuration file to deep-archive-setup.yaml.

On a terminal a short wizard asks for the transport order and, if it
includes s3, the mirror location. Without a terminal, or with --defaults,
the built-in configuration is written unchanged.

Edit the file to change directories, model URLs or the transport order,
or to enable the S3 mirror. The bootstrap picks it up automatically when
run from the same directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "deep-archive-setup.yaml", "Output file path")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the built-in configuration without asking")

	return cmd
}
