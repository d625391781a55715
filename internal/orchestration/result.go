package orchestration

import (
	"time"

	"github.com/deep-archive/setup/internal/provisioning"
)

// DependencyReport summarizes the dependency check.
type DependencyReport struct {
	Platform string   `json:"platform"`
	Present  []string `json:"present"`
	Missing  []string `json:"missing"`
}

// Result is the outcome of a bootstrap run.
type Result struct {
	RunID   string               `json:"run_id"`
	Stage   provisioning.Stage   `json:"stage"`
	History []provisioning.Stage `json:"history"`

	Directories  provisioning.DirectoryReport `json:"directories"`
	Dependencies DependencyReport             `json:"dependencies"`
	Artifacts    provisioning.ArtifactReport  `json:"artifacts"`
	EnvFile      string                       `json:"env_file,omitempty"`

	Warnings []provisioning.Warning `json:"warnings"`

	// Err is the fatal error of an aborted run.
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`

	Duration        time.Duration `json:"-"`
	DurationSeconds float64       `json:"duration_seconds"`
}

func newResult(runID string, state *provisioning.State, duration time.Duration) *Result {
	r := &Result{
		RunID:           runID,
		Stage:           state.Stage,
		History:         append([]provisioning.Stage(nil), state.History...),
		Directories:     state.Directories,
		Artifacts:       state.Artifacts,
		EnvFile:         state.EnvFile,
		Warnings:        append([]provisioning.Warning{}, state.Warnings...),
		Err:             state.Err,
		Duration:        duration,
		DurationSeconds: duration.Seconds(),
	}

	if r.Directories.Created == nil {
		r.Directories.Created = []string{}
	}
	if r.Directories.Present == nil {
		r.Directories.Present = []string{}
	}
	if r.Artifacts.Downloaded == nil {
		r.Artifacts.Downloaded = []string{}
	}
	if r.Artifacts.Satisfied == nil {
		r.Artifacts.Satisfied = []string{}
	}

	r.Dependencies = DependencyReport{Present: []string{}, Missing: []string{}}
	if deps := state.Dependencies; deps != nil {
		r.Dependencies.Platform = deps.Platform
		if present := deps.PresentNames(); present != nil {
			r.Dependencies.Present = present
		}
		r.Dependencies.Missing = deps.MissingNames()
	}

	if state.Err != nil {
		r.Error = state.Err.Error()
		if kind, ok := provisioning.FatalKind(state.Err); ok {
			r.ErrorKind = string(kind)
		}
	}
	return r
}

// Succeeded reports whether the run reached Done.
func (r *Result) Succeeded() bool {
	return r.Stage == provisioning.StageDone
}

// ExitCode returns the process exit status: 0 when the run reached Done,
// even with warnings, and 1 otherwise.
func (r *Result) ExitCode() int {
	if r.Succeeded() {
		return 0
	}
	return 1
}

// LastStage returns the last stage reached before the run aborted, or the
// final stage of a successful run.
func (r *Result) LastStage() provisioning.Stage {
	for i := len(r.History) - 1; i >= 0; i-- {
		if r.History[i] != provisioning.StageAborted {
			return r.History[i]
		}
	}
	return provisioning.StageInit
}
