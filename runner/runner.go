package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hupe1980/agentworld/component"
	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/logging"
	"github.com/hupe1980/agentworld/provider"
	"github.com/hupe1980/agentworld/snapshot"
)

// Unbounded as maxTicks runs the loop until a terminal marker appears.
const Unbounded = -1

// ReasonMaxTicks is the terminal reason the runner itself attaches when a
// finite tick budget is exhausted without any system terminating the run.
const ReasonMaxTicks = "max_ticks"

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Runner drives the main execution loop.
type Runner struct {
	logger logging.Logger
}

// New constructs a Runner with optional overrides.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{logger: opts.Logger}
}

// Run executes w.Tick repeatedly until either a Terminal component is found
// on any entity, or maxTicks is reached counting from startTick (pass
// Unbounded for no limit). Progress is recorded in a RunnerState component
// after every tick.
//
// If a finite maxTicks is exhausted without any terminal marker, Run creates
// a new entity and attaches a Terminal with reason "max_ticks" — it never
// reuses an existing entity, so callers always find exactly one marker
// afterward. startTick offsets the absolute counter for resumed runs: the
// additional ticks executed equal maxTicks − startTick, clamped at zero.
//
// Run only returns an error on context cancellation or a failing system;
// normal stops are signalled by the terminal marker.
func (r *Runner) Run(ctx context.Context, w *core.World, maxTicks, startTick int) error {
	state := r.ensureState(w, startTick)

	for tick := startTick; maxTicks == Unbounded || tick < maxTicks; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", tick+1, err)
		}
		state.CurrentTick = tick + 1

		if len(w.Query(component.KindTerminal)) > 0 {
			r.logger.Info("run terminated", "tick", state.CurrentTick)
			return nil
		}
	}

	id := w.CreateEntity()
	w.AddComponent(id, &component.Terminal{Reason: ReasonMaxTicks})
	r.logger.Info("run exhausted tick budget", "max_ticks", maxTicks)
	return nil
}

// ensureState returns the world's RunnerState component, creating it on a
// dedicated bookkeeping entity if absent so it is captured and restored by
// the same snapshot machinery as everything else.
func (r *Runner) ensureState(w *core.World, startTick int) *component.RunnerState {
	if results := w.Query(component.KindRunnerState); len(results) > 0 {
		return results[0].Components[0].(*component.RunnerState)
	}
	state := &component.RunnerState{CurrentTick: startTick}
	w.AddComponent(w.CreateEntity(), state)
	return state
}

// runnerStateDoc is the runner_state object of the checkpoint file.
type runnerStateDoc struct {
	CurrentTick int  `json:"current_tick"`
	IsPaused    bool `json:"is_paused"`
}

// checkpointFile is the on-disk checkpoint document: the snapshot fields
// plus the runner state.
type checkpointFile struct {
	NextEntityID int64                        `json:"next_entity_id"`
	Entities     map[string]core.EntityRecord `json:"entities"`
	RunnerState  runnerStateDoc               `json:"runner_state"`
}

// SaveCheckpoint serializes the world and runner state to a JSON checkpoint
// file. Terminal components are removed before serializing so a resumed run
// does not stop immediately.
func (r *Runner) SaveCheckpoint(w *core.World, path string) error {
	for _, result := range w.Query(component.KindTerminal) {
		w.RemoveComponent(result.Entity, component.KindTerminal)
	}

	snap, err := snapshot.Capture(w)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	doc := checkpointFile{
		NextEntityID: snap.NextEntityID,
		Entities:     snap.Entities,
	}
	if results := w.Query(component.KindRunnerState); len(results) > 0 {
		state := results[0].Components[0].(*component.RunnerState)
		doc.RunnerState = runnerStateDoc{
			CurrentTick: state.CurrentTick,
			IsPaused:    state.IsPaused,
		}
	}

	// Marshal without HTML escaping so the sentinel appears literally as
	// "<non-serializable>" in the file, per the checkpoint format spec.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}

	r.logger.Info("checkpoint saved", "path", path, "tick", doc.RunnerState.CurrentTick)
	return nil
}

// LoadCheckpoint restores a world and its absolute tick count from a
// checkpoint file. Providers are resolved by model name (falling back to
// "default") and toolHandlers are installed verbatim on restored tool
// registries; see snapshot.Restore. A missing file surfaces as a wrapped
// fs.ErrNotExist.
func LoadCheckpoint(
	path string,
	providers provider.Map,
	toolHandlers map[string]core.ToolHandler,
) (*core.World, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read checkpoint: %w", err)
	}

	var doc checkpointFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse checkpoint: %w", err)
	}

	w, err := snapshot.Restore(&core.Snapshot{
		NextEntityID: doc.NextEntityID,
		Entities:     doc.Entities,
	}, providers, toolHandlers)
	if err != nil {
		return nil, 0, err
	}

	return w, doc.RunnerState.CurrentTick, nil
}
