// Package orchestration runs the bootstrap from start to finish.
//
// The Orchestrator delegates to the provisioners in the internal/provisioning
// subpackages and drives the run's state machine:
//
//	Init -> DirectoriesProvisioned -> DependenciesChecked -> ArtifactsFetched -> Done
//
// Any fatal error moves the run to Aborted and no later phase starts.
// Warnings, such as a missing ffmpeg, are collected and never change control
// flow.
//
// # Workflow
//
//  1. Directories - Create the pipeline's working directories
//  2. Dependencies - Probe external executables and record install hints
//  3. Artifacts - Select one transport and fetch missing model files
//  4. Finalize - Write model paths to the env file and fix the executable bit
//
// # Usage
//
//	orch := orchestration.New(orchestration.Options{Config: cfg, Observer: observer})
//	result := orch.Run(ctx)
//	os.Exit(result.ExitCode())
//
// The run is idempotent: a second run on a provisioned host creates nothing
// and performs no network access.
package orchestration
