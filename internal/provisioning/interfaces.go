package provisioning

// Phase defines the interface for a bootstrap phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Stage returns the stage the run reaches when Provision succeeds.
	Stage() Stage

	// Provision executes the phase. A returned error aborts the run.
	Provision(ctx *Context) error
}
