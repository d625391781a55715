// Package prerequisites checks that the external executables the media
// pipeline shells out to are reachable on PATH.
//
// Missing tools never fail a check: they are collected in [CheckResults]
// together with a platform-specific install hint so the caller can warn and
// carry on.
package prerequisites

import (
	"fmt"
	"os/exec"
	"sort"
)

// Tool represents an external executable the pipeline may need.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string

	// Hints maps a platform identifier (see DetectPlatform) to an install command.
	Hints map[string]string
}

// Hint returns the install instruction for platform. An exact match wins,
// then the operating system part of the identifier ("linux" for
// "linux/debian"), then a generic message.
func (t Tool) Hint(platform string) string {
	if hint, ok := t.Hints[platform]; ok {
		return hint
	}
	if hint, ok := t.Hints[osOf(platform)]; ok {
		return hint
	}
	if t.InstallURL != "" {
		return fmt.Sprintf("install %s with your package manager (see %s)", t.Name, t.InstallURL)
	}
	return fmt.Sprintf("install %s with your package manager", t.Name)
}

// CommandAvailability answers whether an executable can be found.
type CommandAvailability interface {
	LookPath(name string) (string, error)
}

// LookPathFunc adapts a function to CommandAvailability.
type LookPathFunc func(name string) (string, error)

// LookPath implements CommandAvailability.
func (f LookPathFunc) LookPath(name string) (string, error) {
	return f(name)
}

// SystemPath resolves executables through the process PATH.
var SystemPath CommandAvailability = LookPathFunc(exec.LookPath)

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Platform string
	Results  []CheckResult
	Missing  []Tool
}

// HasMissing reports whether any tool was not found.
func (r *CheckResults) HasMissing() bool {
	return len(r.Missing) > 0
}

// PresentNames returns the sorted names of the tools that were found.
func (r *CheckResults) PresentNames() []string {
	var names []string
	for _, res := range r.Results {
		if res.Found {
			names = append(names, res.Tool.Name)
		}
	}
	sort.Strings(names)
	return names
}

// MissingNames returns the sorted names of the tools that were not found.
func (r *CheckResults) MissingNames() []string {
	names := make([]string, 0, len(r.Missing))
	for _, tool := range r.Missing {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	return names
}

type checkOptions struct {
	availability CommandAvailability
	platform     string
}

// CheckOption configures Check.
type CheckOption func(*checkOptions)

// WithAvailability replaces the PATH lookup, typically with a fake in tests.
func WithAvailability(a CommandAvailability) CheckOption {
	return func(o *checkOptions) {
		o.availability = a
	}
}

// WithPlatform overrides the detected platform identifier used for hints.
func WithPlatform(platform string) CheckOption {
	return func(o *checkOptions) {
		o.platform = platform
	}
}

// Check verifies that the specified tools are available. It never fails;
// absent tools are reported in Missing.
func Check(tools []Tool, opts ...CheckOption) *CheckResults {
	o := &checkOptions{availability: SystemPath}
	for _, opt := range opts {
		opt(o)
	}
	if o.platform == "" {
		o.platform = DetectPlatform()
	}

	results := &CheckResults{Platform: o.platform}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := o.availability.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}
