// Package checkpoint maintains bounded FIFO histories of world snapshots
// and implements whole-world undo. A history is a Checkpoint component
// attached to a subject entity; the Manager appends snapshots at the tail
// and evicts from the head once capacity is exceeded. Undo pops the most
// recent entry and replaces the entire live world's component state with it.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentworld/component"
	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/logging"
	"github.com/hupe1980/agentworld/provider"
	"github.com/hupe1980/agentworld/snapshot"
)

// ErrNoSnapshots is returned by Undo when no checkpoint ring exists or the
// ring is empty. Undo never silently no-ops.
var ErrNoSnapshots = errors.New("no checkpoint snapshots available to restore")

// CreatedEvent is published after a snapshot is appended to a ring.
type CreatedEvent struct {
	Subject      core.EntityID
	CheckpointID int
	Timestamp    time.Time
}

// RestoredEvent is published after a successful undo. CheckpointID is the
// ordinal of the entry that was restored.
type RestoredEvent struct {
	Subject      core.EntityID
	CheckpointID int
	Timestamp    time.Time
}

// Options configures a Manager.
type Options struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Manager creates and restores world snapshots for undo functionality.
type Manager struct {
	logger logging.Logger
}

// NewManager constructs a Manager with optional overrides.
func NewManager(optFns ...func(o *Options)) *Manager {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{logger: opts.Logger}
}

// Snapshot takes a full-world snapshot and appends it to subject's ring,
// evicting the oldest entry first once capacity is exceeded (strict FIFO).
// It publishes a CreatedEvent carrying the new entry's ordinal.
func (m *Manager) Snapshot(ctx context.Context, w *core.World, subject core.EntityID) error {
	ring, ok := core.Get[*component.Checkpoint](w, subject)
	if !ok {
		return fmt.Errorf("entity %d has no checkpoint component", subject)
	}

	snap, err := snapshot.Capture(w)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	m.append(ctx, w, subject, ring, snap)
	return nil
}

// append adds snap to ring, enforces capacity, and publishes the created
// event. Shared by Snapshot and the per-tick System.
func (m *Manager) append(
	ctx context.Context,
	w *core.World,
	subject core.EntityID,
	ring *component.Checkpoint,
	snap *core.Snapshot,
) {
	ring.Snapshots = append(ring.Snapshots, snap)
	if overflow := len(ring.Snapshots) - ring.MaxSnapshots; overflow > 0 && ring.MaxSnapshots > 0 {
		ring.Snapshots = append([]*core.Snapshot{}, ring.Snapshots[overflow:]...)
	}

	m.logger.Debug("checkpoint created",
		"subject", int64(subject),
		"checkpoint_id", len(ring.Snapshots)-1,
	)
	w.Events().Publish(ctx, CreatedEvent{
		Subject:      subject,
		CheckpointID: len(ring.Snapshots) - 1,
		Timestamp:    time.Now().UTC(),
	})
}

// Undo pops the most recent snapshot from the first checkpoint ring and
// replaces the entire live world's component state with that entry's
// contents, re-injecting providers and tool handlers exactly as
// snapshot.Restore does. Registered systems and event subscriptions stay
// intact. The surviving ring (minus the popped entry) is re-attached to the
// subject so successive undos walk further back. Returns ErrNoSnapshots,
// before mutating any state, if no snapshot was ever taken.
func (m *Manager) Undo(
	ctx context.Context,
	w *core.World,
	providers provider.Map,
	toolHandlers map[string]core.ToolHandler,
) error {
	rings := w.Query(component.KindCheckpoint)
	if len(rings) == 0 {
		return ErrNoSnapshots
	}

	subject := rings[0].Entity
	ring := rings[0].Components[0].(*component.Checkpoint)
	if len(ring.Snapshots) == 0 {
		return ErrNoSnapshots
	}

	popped := ring.Snapshots[len(ring.Snapshots)-1]
	remaining := ring.Snapshots[:len(ring.Snapshots)-1]

	restored, err := snapshot.Restore(popped, providers, toolHandlers)
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	w.ReplaceState(restored)

	// The popped snapshot recorded the ring as of capture time; replace it
	// with the surviving in-memory ring.
	if rc, ok := core.Get[*component.Checkpoint](w, subject); ok {
		rc.Snapshots = remaining
		rc.MaxSnapshots = ring.MaxSnapshots
	} else {
		w.AddComponent(subject, &component.Checkpoint{
			Snapshots:    remaining,
			MaxSnapshots: ring.MaxSnapshots,
		})
	}

	m.logger.Info("checkpoint restored",
		"subject", int64(subject),
		"checkpoint_id", len(remaining),
	)
	w.Events().Publish(ctx, RestoredEvent{
		Subject:      subject,
		CheckpointID: len(remaining),
		Timestamp:    time.Now().UTC(),
	})
	return nil
}

// System appends one snapshot per tick to every entity carrying a
// Checkpoint component. Register it at a high priority so it captures the
// effects of the systems that ran before it in the same tick.
type System struct {
	manager *Manager
}

// NewSystem constructs the per-tick checkpoint system.
func NewSystem(optFns ...func(o *Options)) *System {
	return &System{manager: NewManager(optFns...)}
}

var _ core.System = (*System)(nil)

// Process captures the world once and appends the snapshot to every
// checkpoint ring.
func (s *System) Process(ctx context.Context, w *core.World) error {
	rings := w.Query(component.KindCheckpoint)
	if len(rings) == 0 {
		return nil
	}

	snap, err := snapshot.Capture(w)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	for _, result := range rings {
		ring := result.Components[0].(*component.Checkpoint)
		s.manager.append(ctx, w, result.Entity, ring, snap)
	}
	return nil
}
