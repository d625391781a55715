package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes the phases sequentially, advancing the state machine
// after each success. The first error moves the state to Aborted and is
// returned wrapped; later phases are not started.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting bootstrap with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			wrapped := fmt.Errorf("%s phase failed: %w", phase.Name(), err)
			ctx.State.Abort(wrapped)
			return wrapped
		}

		if err := ctx.State.Advance(phase.Stage()); err != nil {
			wrapped := fmt.Errorf("%s phase: %w", phase.Name(), err)
			ctx.State.Abort(wrapped)
			return wrapped
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Bootstrap phases completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
