package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/provisioning"
	"github.com/deep-archive/setup/internal/transport"
)

const phaseName = "artifacts"

// Downloader fetches artifacts through a single transport.
type Downloader struct {
	observer provisioning.Observer
}

// NewDownloader creates a downloader reporting to observer.
func NewDownloader(observer provisioning.Observer) *Downloader {
	return &Downloader{observer: observer}
}

// Fetch processes artifacts in order. The first failed download stops the
// loop with a KindDownload fatal error; whatever the transport wrote to
// that destination is left in place.
func (d *Downloader) Fetch(ctx context.Context, artifacts []config.Artifact, t transport.Transport) (*provisioning.ArtifactReport, error) {
	report := &provisioning.ArtifactReport{
		Transport:  t.Name(),
		Downloaded: []string{},
		Satisfied:  []string{},
	}

	for _, a := range artifacts {
		present, err := exists(a.Destination)
		if err != nil {
			return report, provisioning.Fatal(provisioning.KindDownload, a.Destination, err)
		}
		if present {
			provisioning.LogResourceExists(d.observer, phaseName, "artifact", a.Destination)
			report.Satisfied = append(report.Satisfied, a.Destination)
			continue
		}

		provisioning.LogResourceCreating(d.observer, phaseName, "artifact", a.Destination)
		d.observer.Printf("Downloading %s model to %s via %s...", a.Name, a.Destination, t.Name())

		if dir := filepath.Dir(a.Destination); dir != "." {
			// #nosec G301 - same permissions as the provisioned directories
			if err := os.MkdirAll(dir, 0755); err != nil {
				return report, provisioning.Fatal(provisioning.KindDownload, a.Destination,
					fmt.Errorf("failed to create parent directory: %w", err))
			}
		}

		if err := t.Fetch(ctx, a.URL, a.Destination); err != nil {
			provisioning.LogResourceFailed(d.observer, phaseName, "artifact", a.Destination, err)
			return report, provisioning.Fatal(provisioning.KindDownload, a.Destination, err)
		}

		provisioning.LogResourceCreated(d.observer, phaseName, "artifact", a.Destination)
		report.Downloaded = append(report.Downloaded, a.Destination)
	}

	return report, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat: %w", err)
	}
}

// Phase selects a transport and fetches the configured artifacts.
type Phase struct {
	candidates []transport.Transport
}

// NewPhase creates the artifact phase. candidates are tried in order by
// transport.Select.
func NewPhase(candidates []transport.Transport) *Phase {
	return &Phase{candidates: candidates}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return phaseName }

// Stage implements provisioning.Phase.
func (p *Phase) Stage() provisioning.Stage { return provisioning.StageArtifactsFetched }

// Provision implements provisioning.Phase. Transport selection happens
// before any artifact is looked at, so a host without a transport aborts
// even when every artifact is already present.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	t, err := transport.Select(p.candidates)
	if err != nil {
		return err
	}
	ctx.Observer.Printf("Using %s for downloads", t.Name())

	report, err := NewDownloader(ctx.Observer).Fetch(ctx, ctx.Config.Artifacts, t)
	if report != nil {
		ctx.State.Artifacts = *report
	}
	if err != nil {
		return err
	}

	ctx.Observer.Printf("Artifacts ready: %d downloaded, %d already present", len(report.Downloaded), len(report.Satisfied))
	return nil
}
