package orchestration

import (
	"fmt"
	"os"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/provisioning"
)

const finalizePhaseName = "finalize"

var osExecutable = os.Executable

// finalizePhase runs once every artifact is present. Nothing it does can
// abort the run.
type finalizePhase struct {
	executable func() (string, error)
}

func newFinalizePhase(executable func() (string, error)) *finalizePhase {
	return &finalizePhase{executable: executable}
}

func (p *finalizePhase) Name() string { return finalizePhaseName }

func (p *finalizePhase) Stage() provisioning.Stage { return provisioning.StageDone }

func (p *finalizePhase) Provision(ctx *provisioning.Context) error {
	p.writeEnvFile(ctx)
	p.markExecutable(ctx)
	return nil
}

// writeEnvFile records the absolute model paths for the pipeline. A failure
// becomes a warning.
func (p *finalizePhase) writeEnvFile(ctx *provisioning.Context) {
	path := ctx.Config.EnvFile
	entries := ctx.Config.ModelEnv()
	if path == "" || len(entries) == 0 {
		return
	}

	if err := config.WriteModelPaths(path, entries); err != nil {
		w := provisioning.Warning{Source: "env-file", Subject: path, Message: err.Error()}
		ctx.State.Warn(w)
		provisioning.LogWarning(ctx.Observer, finalizePhaseName, w)
		return
	}
	ctx.State.EnvFile = path
	provisioning.LogResourceCreated(ctx.Observer, finalizePhaseName, "env file", path)
}

// markExecutable re-asserts the execute bit on the running binary. Errors
// are logged and otherwise ignored.
func (p *finalizePhase) markExecutable(ctx *provisioning.Context) {
	if err := ensureExecutable(p.executable); err != nil {
		ctx.Observer.Printf("Skipping executable permission update: %v", err)
	}
}

func ensureExecutable(executable func() (string, error)) error {
	path, err := executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	mode := info.Mode().Perm()
	if mode&0111 == 0111 {
		return nil
	}
	// #nosec G302 - the binary must stay executable
	if err := os.Chmod(path, mode|0111); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}
