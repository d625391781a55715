package handlers

import (
	"fmt"
	"sort"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/provisioning/dependencies"
	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// CheckReport is the JSON form of the check command's output.
type CheckReport struct {
	Platform string       `json:"platform"`
	Tools    []ToolStatus `json:"tools"`

	// ModelPaths are the model locations recorded by the last successful
	// run, keyed by env variable.
	ModelPaths      map[string]string `json:"model_paths,omitempty"`
	ModelPathsError string            `json:"model_paths_error,omitempty"`
}

// ToolStatus is the state of a single dependency.
type ToolStatus struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

// Check probes the configured dependencies and prints where each one was
// found or how to install it. Missing tools are not an error.
func Check(configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	results := prerequisites.Check(dependencies.Tools(cfg.Dependencies),
		prerequisites.WithAvailability(commandAvailability))

	report := CheckReport{Platform: results.Platform, Tools: []ToolStatus{}}
	for _, r := range results.Results {
		status := ToolStatus{Name: r.Tool.Name, Found: r.Found, Path: r.Path}
		if !r.Found {
			status.Hint = r.Tool.Hint(results.Platform)
		}
		report.Tools = append(report.Tools, status)
	}
	report.ModelPaths, report.ModelPathsError = modelPaths(cfg)

	if jsonOutput {
		return printJSON(report)
	}
	printCheckReport(report)
	return nil
}

// modelPaths reads the env file written by the bootstrap. A missing or
// incomplete file is reported, not returned as an error.
func modelPaths(cfg *config.Config) (map[string]string, string) {
	env := cfg.ModelEnv()
	if cfg.EnvFile == "" || len(env) == 0 {
		return nil, ""
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	paths, err := config.LoadModelPaths(cfg.EnvFile, keys...)
	if err != nil {
		return nil, err.Error()
	}
	return paths, ""
}

func printCheckReport(report CheckReport) {
	fmt.Printf("Platform: %s\n\n", report.Platform)
	missing := 0
	for _, tool := range report.Tools {
		if tool.Found {
			fmt.Printf("  [ok]      %-10s %s\n", tool.Name, tool.Path)
			continue
		}
		missing++
		fmt.Printf("  [missing] %-10s %s\n", tool.Name, tool.Hint)
	}
	fmt.Println()
	if missing == 0 {
		fmt.Println("All dependencies found.")
	} else {
		fmt.Printf("%d dependency(ies) missing. The bootstrap still runs, but the pipeline needs them.\n", missing)
	}

	switch {
	case report.ModelPathsError != "":
		fmt.Printf("\nModel paths: not recorded (%s). Run deep-archive-setup first.\n", report.ModelPathsError)
	case len(report.ModelPaths) > 0:
		fmt.Println("\nModel paths:")
		keys := make([]string, 0, len(report.ModelPaths))
		for key := range report.ModelPaths {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s=%s\n", key, report.ModelPaths[key])
		}
	}
}
