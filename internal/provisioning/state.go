package provisioning

import (
	"fmt"

	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// Stage is a state of the bootstrap state machine.
type Stage string

const (
	StageInit                   Stage = "Init"
	StageDirectoriesProvisioned Stage = "DirectoriesProvisioned"
	StageDependenciesChecked    Stage = "DependenciesChecked"
	StageArtifactsFetched       Stage = "ArtifactsFetched"
	StageDone                   Stage = "Done"
	StageAborted                Stage = "Aborted"
)

// transitions lists the successful transitions; Aborted is reachable from
// every non-terminal stage and is handled separately.
var transitions = map[Stage]Stage{
	StageInit:                   StageDirectoriesProvisioned,
	StageDirectoriesProvisioned: StageDependenciesChecked,
	StageDependenciesChecked:    StageArtifactsFetched,
	StageArtifactsFetched:       StageDone,
}

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageAborted
}

// Next returns the stage that follows s on success.
func (s Stage) Next() (Stage, bool) {
	next, ok := transitions[s]
	return next, ok
}

// DirectoryReport lists what the directory phase did.
type DirectoryReport struct {
	Created []string `json:"created"`
	Present []string `json:"present"`
}

// ArtifactReport lists what the artifact phase did. Destinations are
// recorded in configuration order.
type ArtifactReport struct {
	Transport  string   `json:"transport,omitempty"`
	Downloaded []string `json:"downloaded"`
	Satisfied  []string `json:"satisfied"`
}

// State holds the results of the bootstrap phases.
// It is progressively populated as each phase completes.
type State struct {
	Stage   Stage
	History []Stage

	Directories  DirectoryReport
	Dependencies *prerequisites.CheckResults
	Artifacts    ArtifactReport

	// EnvFile is the model-path file written when the run finished, if any.
	EnvFile string

	Warnings []Warning

	// Err is the fatal error that moved the run to Aborted.
	Err error
}

// NewState creates a state in Init.
func NewState() *State {
	return &State{
		Stage:   StageInit,
		History: []Stage{StageInit},
	}
}

// Advance moves to next, which must be the successor of the current stage.
func (s *State) Advance(next Stage) error {
	want, ok := s.Stage.Next()
	if !ok || want != next {
		return fmt.Errorf("invalid transition %s -> %s", s.Stage, next)
	}
	s.Stage = next
	s.History = append(s.History, next)
	return nil
}

// Abort moves to Aborted from any non-terminal stage and records err.
func (s *State) Abort(err error) {
	if s.Stage.Terminal() {
		return
	}
	s.Stage = StageAborted
	s.History = append(s.History, StageAborted)
	s.Err = err
}

// Warn records a recoverable condition.
func (s *State) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}
