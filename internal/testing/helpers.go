package testing

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// StaticAvailability reports exactly the listed binaries as installed.
func StaticAvailability(installed ...string) prerequisites.CommandAvailability {
	found := make(map[string]bool, len(installed))
	for _, name := range installed {
		found[name] = true
	}
	return prerequisites.LookPathFunc(func(name string) (string, error) {
		if found[name] {
			return filepath.Join("/usr/local/bin", name), nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	})
}

// WriteFile creates path with content, including parent directories.
func WriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 - test path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}
