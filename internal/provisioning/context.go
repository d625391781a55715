package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/deep-archive/setup/internal/config"
)

// Context wraps all dependencies and state needed for a bootstrap phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Observer Observer
}

// NewContext creates a new bootstrap context in the Init stage.
// A nil observer discards all output.
func NewContext(ctx context.Context, cfg *config.Config, observer Observer) *Context {
	if observer == nil {
		observer = NewObserver(logr.Discard())
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: observer,
	}
}
