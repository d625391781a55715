// Package main is the entry point for the deep-archive-setup CLI.
//
// deep-archive-setup prepares a host to run the deep-archive media pipeline:
// it creates the working directories, checks for ffmpeg and xorriso, and
// downloads the classification models. Running it again on a prepared host
// changes nothing.
//
// Commands: check, init, version, completion. With no command the bootstrap runs.
//
// For detailed usage information, run:
//
//	deep-archive-setup --help
package main

import (
	"fmt"
	"os"

	"github.com/deep-archive/setup/cmd/deep-archive-setup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
