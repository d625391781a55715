package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Parallel()
	state := NewState()

	assert.Equal(t, StageInit, state.Stage)
	assert.Equal(t, []Stage{StageInit}, state.History)
	assert.Nil(t, state.Dependencies)
	assert.Empty(t, state.Warnings)
	assert.NoError(t, state.Err)
}

func TestState_AdvanceHappyPath(t *testing.T) {
	t.Parallel()
	state := NewState()

	for _, next := range []Stage{StageDirectoriesProvisioned, StageDependenciesChecked, StageArtifactsFetched, StageDone} {
		require.NoError(t, state.Advance(next))
	}

	assert.Equal(t, StageDone, state.Stage)
	assert.Equal(t, []Stage{
		StageInit,
		StageDirectoriesProvisioned,
		StageDependenciesChecked,
		StageArtifactsFetched,
		StageDone,
	}, state.History)
}

func TestState_AdvanceRejectsSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from []Stage
		to   Stage
	}{
		{"skip directories", nil, StageDependenciesChecked},
		{"skip dependencies", []Stage{StageDirectoriesProvisioned}, StageArtifactsFetched},
		{"done early", []Stage{StageDirectoriesProvisioned}, StageDone},
		{"advance to aborted", nil, StageAborted},
		{"past done", []Stage{StageDirectoriesProvisioned, StageDependenciesChecked, StageArtifactsFetched, StageDone}, StageDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := NewState()
			for _, s := range tt.from {
				require.NoError(t, state.Advance(s))
			}
			before := state.Stage

			err := state.Advance(tt.to)
			require.Error(t, err)
			assert.Equal(t, before, state.Stage)
		})
	}
}

func TestState_AbortFromAnyNonTerminalStage(t *testing.T) {
	t.Parallel()

	paths := [][]Stage{
		nil,
		{StageDirectoriesProvisioned},
		{StageDirectoriesProvisioned, StageDependenciesChecked},
		{StageDirectoriesProvisioned, StageDependenciesChecked, StageArtifactsFetched},
	}

	for _, path := range paths {
		state := NewState()
		for _, s := range path {
			require.NoError(t, state.Advance(s))
		}
		cause := errors.New("boom")

		state.Abort(cause)

		assert.Equal(t, StageAborted, state.Stage)
		assert.Equal(t, StageAborted, state.History[len(state.History)-1])
		assert.Equal(t, cause, state.Err)
	}
}

func TestState_AbortIsNoOpWhenTerminal(t *testing.T) {
	t.Parallel()
	state := NewState()
	first := errors.New("first")
	state.Abort(first)
	state.Abort(errors.New("second"))

	assert.Equal(t, first, state.Err)
	assert.Equal(t, []Stage{StageInit, StageAborted}, state.History)
}

func TestStage_Terminal(t *testing.T) {
	t.Parallel()
	assert.True(t, StageDone.Terminal())
	assert.True(t, StageAborted.Terminal())
	assert.False(t, StageInit.Terminal())
	assert.False(t, StageArtifactsFetched.Terminal())
}

func TestState_Warn(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.Warn(Warning{Source: "dependency", Subject: "xorriso", Message: "not found"})

	require.Len(t, state.Warnings, 1)
	assert.Equal(t, "dependency xorriso: not found", state.Warnings[0].String())
	assert.Equal(t, StageInit, state.Stage)
}
