// Package agentworld provides a high-level façade over the entity-component
// runtime (core.World), the tick-loop runner and the checkpoint subsystem,
// enabling rapid construction of stateful LLM agent simulations. Most
// applications interact with this package by:
//  1. Creating an AgentWorld via New() (optionally supplying a structured logger)
//  2. Spawning entities and attaching components from the component catalogue
//  3. Registering systems (priority-ordered units of per-tick behavior)
//  4. Driving the loop via Run, with SaveCheckpoint/LoadCheckpoint and Undo
//     for persistence and whole-world rewind
//
// The façade delegates scheduling to core.World and persistence to the
// snapshot, checkpoint and runner packages while keeping setup ergonomics
// concise. All defaults are safe for local development and testing;
// production deployments typically supply real providers and a structured
// logger.
package agentworld

import (
	"context"

	"github.com/hupe1980/agentworld/checkpoint"
	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/logging"
	"github.com/hupe1980/agentworld/provider"
	"github.com/hupe1980/agentworld/runner"
)

// Options configures the AgentWorld instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentWorld is the high-level façade aggregating the world, runner and
// checkpoint manager.
type AgentWorld struct {
	opts        Options
	world       *core.World
	runner      *runner.Runner
	checkpoints *checkpoint.Manager
}

// New creates a new AgentWorld instance with optional overrides.
func New(optFns ...func(o *Options)) *AgentWorld {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &AgentWorld{
		opts: opts,
		world: core.NewWorld(func(o *core.WorldOptions) {
			o.Logger = opts.Logger
		}),
		runner:      runner.New(func(o *runner.Options) { o.Logger = opts.Logger }),
		checkpoints: checkpoint.NewManager(func(o *checkpoint.Options) { o.Logger = opts.Logger }),
	}
}

// World exposes the underlying entity-component runtime.
func (a *AgentWorld) World() *core.World { return a.world }

// RegisterSystem adds a system at the given priority.
func (a *AgentWorld) RegisterSystem(s core.System, priority int) {
	a.world.RegisterSystem(s, priority)
}

// Run drives the tick loop; see runner.Runner.Run for the stop semantics.
func (a *AgentWorld) Run(ctx context.Context, maxTicks, startTick int) error {
	return a.runner.Run(ctx, a.world, maxTicks, startTick)
}

// Snapshot appends a full-world snapshot to subject's checkpoint ring.
func (a *AgentWorld) Snapshot(ctx context.Context, subject core.EntityID) error {
	return a.checkpoints.Snapshot(ctx, a.world, subject)
}

// Undo rewinds the whole world to the most recent checkpoint entry.
func (a *AgentWorld) Undo(
	ctx context.Context,
	providers provider.Map,
	toolHandlers map[string]core.ToolHandler,
) error {
	return a.checkpoints.Undo(ctx, a.world, providers, toolHandlers)
}

// SaveCheckpoint persists the world and runner state to path.
func (a *AgentWorld) SaveCheckpoint(path string) error {
	return a.runner.SaveCheckpoint(a.world, path)
}

// LoadCheckpoint restores a world from path and adopts it, returning the
// absolute tick count to resume from.
func (a *AgentWorld) LoadCheckpoint(
	path string,
	providers provider.Map,
	toolHandlers map[string]core.ToolHandler,
) (int, error) {
	w, tick, err := runner.LoadCheckpoint(path, providers, toolHandlers)
	if err != nil {
		return 0, err
	}
	a.world.ReplaceState(w)
	return tick, nil
}
