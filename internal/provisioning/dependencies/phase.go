package dependencies

import (
	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/provisioning"
	"github.com/deep-archive/setup/internal/util/prerequisites"
)

const phaseName = "dependencies"

// Tools converts configured dependencies to prerequisite tools.
func Tools(deps []config.Dependency) []prerequisites.Tool {
	tools := make([]prerequisites.Tool, 0, len(deps))
	for _, d := range deps {
		tools = append(tools, prerequisites.Tool{
			Name:        d.Name,
			Description: d.Description,
			InstallURL:  d.InstallURL,
			Hints:       d.Hints,
		})
	}
	return tools
}

// Phase checks the configured dependencies.
type Phase struct {
	opts []prerequisites.CheckOption
}

// NewPhase creates the dependency phase. opts are passed to
// prerequisites.Check, typically to inject availability or a platform.
func NewPhase(opts ...prerequisites.CheckOption) *Phase {
	return &Phase{opts: opts}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string { return phaseName }

// Stage implements provisioning.Phase.
func (p *Phase) Stage() provisioning.Stage { return provisioning.StageDependenciesChecked }

// Provision implements provisioning.Phase. It never returns an error.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	results := prerequisites.Check(Tools(ctx.Config.Dependencies), p.opts...)
	ctx.State.Dependencies = results

	for _, r := range results.Results {
		if r.Found {
			provisioning.LogResourceExists(ctx.Observer, phaseName, "dependency", r.Tool.Name)
		}
	}

	for _, tool := range results.Missing {
		w := provisioning.Warning{
			Source:  "dependency",
			Subject: tool.Name,
			Message: "not found in PATH; " + tool.Hint(results.Platform),
		}
		ctx.State.Warn(w)
		provisioning.LogWarning(ctx.Observer, phaseName, w)
	}

	if results.HasMissing() {
		ctx.Observer.Printf("Dependencies: %d missing, continuing", len(results.Missing))
	} else {
		ctx.Observer.Printf("Dependencies: all %d found", len(results.Results))
	}
	return nil
}
