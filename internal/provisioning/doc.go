// Package provisioning provides shared types, interfaces, and sequencing for
// the host bootstrap.
//
// # Subpackages
//
//   - directories/: working directory creation
//   - dependencies/: non-fatal probing of external executables
//   - artifacts/: transport-backed, idempotent model downloads
//
// # Core Types
//
// Context carries configuration, run state, and the observer.
// Phase defines a bootstrap step with Name(), Stage() and Provision() methods.
// State records the stage reached and the report of every completed phase.
// FatalError aborts the run; Warning is collected and never changes control flow.
package provisioning
