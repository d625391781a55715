package handlers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/deep-archive/setup/internal/orchestration"
	testutil "github.com/deep-archive/setup/internal/testing"
	"github.com/deep-archive/setup/internal/transport"
)

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// useWorkspace runs the test inside an empty directory with stubbed
// collaborators. Logs are captured in the returned buffer.
func useWorkspace(t *testing.T, installed ...string) *bytes.Buffer {
	t.Helper()
	t.Chdir(t.TempDir())

	origAvailability := commandAvailability
	origLogOutput := logOutput
	origIsTerminal := isTerminal
	origStdinIsTerminal := stdinIsTerminal
	t.Cleanup(func() {
		commandAvailability = origAvailability
		logOutput = origLogOutput
		isTerminal = origIsTerminal
		stdinIsTerminal = origStdinIsTerminal
	})

	logs := &bytes.Buffer{}
	commandAvailability = testutil.StaticAvailability(installed...)
	logOutput = logs
	isTerminal = func() bool { return true }
	stdinIsTerminal = func() bool { return false }
	return logs
}

// useTransports makes runs use the given transports instead of curl and wget.
func useTransports(t *testing.T, transports ...transport.Transport) {
	t.Helper()
	orig := newOrchestrator
	t.Cleanup(func() { newOrchestrator = orig })

	newOrchestrator = func(opts orchestration.Options) *orchestration.Orchestrator {
		opts.Transports = transports
		opts.Platform = "linux/debian"
		opts.Executable = func() (string, error) { return "", errors.New("not available in tests") }
		return orig(opts)
	}
}
