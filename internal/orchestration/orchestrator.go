package orchestration

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/metrics"
	"github.com/deep-archive/setup/internal/provisioning"
	"github.com/deep-archive/setup/internal/provisioning/artifacts"
	"github.com/deep-archive/setup/internal/provisioning/dependencies"
	"github.com/deep-archive/setup/internal/provisioning/directories"
	"github.com/deep-archive/setup/internal/transport"
	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// Options configures an Orchestrator. Only Config is required.
type Options struct {
	Config   *config.Config
	Observer provisioning.Observer

	// Availability answers PATH lookups for dependencies and command
	// transports. Defaults to the process PATH.
	Availability prerequisites.CommandAvailability

	// Platform overrides the detected platform used for install hints.
	Platform string

	// Transports replaces the candidates built from Config.Transports.
	Transports []transport.Transport

	// TransportOptions are passed to transport.Candidates when Transports is nil.
	TransportOptions []transport.Option

	// Metrics, when set, receives the run outcome. The textfile is written
	// when Config.MetricsFile is set.
	Metrics *metrics.Recorder

	// Executable returns the path of the running binary. Defaults to os.Executable.
	Executable func() (string, error)
}

// Orchestrator runs the bootstrap phases in order.
type Orchestrator struct {
	opts Options
	now  func() time.Time
}

// New creates an orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Observer == nil {
		opts.Observer = provisioning.NewObserver(logr.Discard())
	}
	if opts.Availability == nil {
		opts.Availability = prerequisites.SystemPath
	}
	if opts.Executable == nil {
		opts.Executable = osExecutable
	}
	return &Orchestrator{opts: opts, now: time.Now}
}

// Run executes the bootstrap and returns its outcome. It never panics on
// a provisioning failure; the failure is reported in the Result.
func (o *Orchestrator) Run(ctx context.Context) *Result {
	start := o.now()
	runID := uuid.NewString()
	observer := o.opts.Observer.WithFields(map[string]string{"run": runID})

	pCtx := provisioning.NewContext(ctx, o.opts.Config, observer)

	candidates, err := o.candidates(ctx)
	if err != nil {
		pCtx.State.Abort(provisioning.Fatal(provisioning.KindTransportUnavailable, "", err))
		provisioning.LogPhaseFailed(observer, "transports", err)
		return o.finish(pCtx, runID, start)
	}

	_ = provisioning.RunPhases(pCtx, o.phases(candidates))

	return o.finish(pCtx, runID, start)
}

func (o *Orchestrator) candidates(ctx context.Context) ([]transport.Transport, error) {
	if o.opts.Transports != nil {
		return o.opts.Transports, nil
	}
	opts := append([]transport.Option{transport.WithAvailability(o.opts.Availability)}, o.opts.TransportOptions...)
	return transport.Candidates(ctx, o.opts.Config, opts...)
}

func (o *Orchestrator) phases(candidates []transport.Transport) []provisioning.Phase {
	checkOpts := []prerequisites.CheckOption{prerequisites.WithAvailability(o.opts.Availability)}
	if o.opts.Platform != "" {
		checkOpts = append(checkOpts, prerequisites.WithPlatform(o.opts.Platform))
	}

	return []provisioning.Phase{
		directories.NewPhase(),
		dependencies.NewPhase(checkOpts...),
		artifacts.NewPhase(candidates),
		newFinalizePhase(o.opts.Executable),
	}
}

func (o *Orchestrator) finish(pCtx *provisioning.Context, runID string, start time.Time) *Result {
	end := o.now()
	duration := end.Sub(start)

	if o.opts.Metrics != nil {
		o.recordMetrics(pCtx, duration, end)
	}

	result := newResult(runID, pCtx.State, duration)

	if result.Succeeded() {
		pCtx.Observer.Printf("Bootstrap complete in %v with %d warning(s)", duration.Round(time.Millisecond), len(result.Warnings))
	} else {
		pCtx.Observer.Printf("Bootstrap aborted at %s: %v", result.LastStage(), result.Err)
	}
	return result
}

func (o *Orchestrator) recordMetrics(pCtx *provisioning.Context, duration time.Duration, end time.Time) {
	state := pCtx.State
	m := o.opts.Metrics

	m.RecordRun(string(state.Stage), state.Stage == provisioning.StageDone, duration, end)
	m.RecordArtifacts(len(state.Artifacts.Downloaded), len(state.Artifacts.Satisfied))
	if state.Dependencies != nil {
		m.RecordDependencies(len(state.Dependencies.Missing))
	}
	m.RecordWarnings(len(state.Warnings))

	path := o.opts.Config.MetricsFile
	if path != "" {
		if err := m.WriteTextfile(path); err != nil {
			w := provisioning.Warning{Source: "metrics", Subject: path, Message: err.Error()}
			state.Warn(w)
			provisioning.LogWarning(pCtx.Observer, "metrics", w)
		}
	}
}
