package directories

import (
	"errors"
	"fmt"
	"os"

	"github.com/deep-archive/setup/internal/provisioning"
)

const phaseName = "directories"

// Ensure makes sure every path exists as a directory. It stops at the first
// failure; directories created before it are kept.
func Ensure(paths []string) (*provisioning.DirectoryReport, error) {
	report := &provisioning.DirectoryReport{
		Created: []string{},
		Present: []string{},
	}

	for _, path := range paths {
		created, err := ensureOne(path)
		if err != nil {
			return report, provisioning.Fatal(provisioning.KindDirectory, path, err)
		}
		if created {
			report.Created = append(report.Created, path)
		} else {
			report.Present = append(report.Present, path)
		}
	}

	return report, nil
}

func ensureOne(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, errors.New("exists and is not a directory")
		}
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		// #nosec G301 - working directories are shared with the pipeline
		if err := os.MkdirAll(path, 0755); err != nil {
			return false, fmt.Errorf("failed to create: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to stat: %w", err)
	}
}

// Phase provisions the configured directories.
type Phase struct{}

// NewPhase creates the directory phase.
func NewPhase() *Phase {
	return &Phase{}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return phaseName }

// Stage implements provisioning.Phase.
func (p *Phase) Stage() provisioning.Stage { return provisioning.StageDirectoriesProvisioned }

// Provision implements provisioning.Phase.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	report, err := Ensure(ctx.Config.Directories)
	if report != nil {
		ctx.State.Directories = *report
		for _, path := range report.Created {
			provisioning.LogResourceCreated(ctx.Observer, phaseName, "directory", path)
		}
		for _, path := range report.Present {
			provisioning.LogResourceExists(ctx.Observer, phaseName, "directory", path)
		}
	}
	if err != nil {
		var fatal *provisioning.FatalError
		if errors.As(err, &fatal) {
			provisioning.LogResourceFailed(ctx.Observer, phaseName, "directory", fatal.Path, fatal.Err)
		}
		return err
	}

	ctx.Observer.Printf("Directories ready: %d created, %d already present", len(report.Created), len(report.Present))
	return nil
}
