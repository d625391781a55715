package transport

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// Runner executes an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, name string, args ...string) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) error {
	return f(ctx, name, args...)
}

// ExecRunner runs commands with os/exec and reports their output on failure.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	// #nosec G204 - the binary is one of the fixed transport names
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return nil
}

// CommandTransport downloads by running an external HTTP client.
type CommandTransport struct {
	name         string
	args         func(url, dest string) []string
	availability prerequisites.CommandAvailability
	runner       Runner
}

// Curl returns a transport backed by curl. Redirects are followed and HTTP
// errors fail the fetch.
func Curl(availability prerequisites.CommandAvailability, runner Runner) *CommandTransport {
	return &CommandTransport{
		name: "curl",
		args: func(url, dest string) []string {
			return []string{"-fL", "--silent", "--show-error", "-o", dest, url}
		},
		availability: availability,
		runner:       runner,
	}
}

// Wget returns a transport backed by wget.
func Wget(availability prerequisites.CommandAvailability, runner Runner) *CommandTransport {
	return &CommandTransport{
		name: "wget",
		args: func(url, dest string) []string {
			return []string{"-q", "-O", dest, url}
		},
		availability: availability,
		runner:       runner,
	}
}

// Name implements Transport.
func (t *CommandTransport) Name() string { return t.name }

// Available implements Transport.
func (t *CommandTransport) Available() bool {
	if t.availability == nil {
		return false
	}
	_, err := t.availability.LookPath(t.name)
	return err == nil
}

// Args returns the arguments passed to the binary for a fetch.
func (t *CommandTransport) Args(url, dest string) []string {
	return t.args(url, dest)
}

// Fetch implements Transport.
func (t *CommandTransport) Fetch(ctx context.Context, url, dest string) error {
	if err := t.runner.Run(ctx, t.name, t.Args(url, dest)...); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return nil
}
