package core

import (
	"context"

	"github.com/hupe1980/agentworld/logging"
)

// WorldOptions configures World construction.
type WorldOptions struct {
	// Logger receives event-bus handler failures. Defaults to NoOpLogger.
	Logger logging.Logger
}

// World is the composition root of the runtime: it binds the entity id
// generator, component store, scheduler, event bus and query engine behind
// one API surface. All external mutation goes through its accessors.
//
// World is single-threaded by design: systems never run concurrently with
// each other, components are mutated in place through shared references, and
// the only internal parallelism is the event bus fan-out.
type World struct {
	entityGen  *EntityIDGenerator
	components *ComponentStore
	scheduler  *Scheduler
	events     *EventBus
	query      *Query
}

// NewWorld constructs an empty World with optional overrides.
func NewWorld(optFns ...func(o *WorldOptions)) *World {
	opts := WorldOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	store := NewComponentStore()
	return &World{
		entityGen:  &EntityIDGenerator{},
		components: store,
		scheduler:  NewScheduler(),
		events:     NewEventBus(opts.Logger),
		query:      NewQuery(store),
	}
}

// Events returns the world's event bus.
func (w *World) Events() *EventBus {
	return w.events
}

// CreateEntity issues a fresh entity id. Entities carry no data themselves;
// attach components to give them capabilities.
func (w *World) CreateEntity() EntityID {
	return w.entityGen.Next()
}

// AddComponent attaches c to entity id, overwriting any prior component of
// the same kind.
func (w *World) AddComponent(id EntityID, c Component) {
	w.components.Add(id, c)
}

// GetComponent returns the component of the given kind on entity id. The
// returned reference is live; in-place mutation is visible to later readers
// in the same tick.
func (w *World) GetComponent(id EntityID, kind Kind) (Component, bool) {
	return w.components.Get(id, kind)
}

// HasComponent reports whether entity id holds the given kind.
func (w *World) HasComponent(id EntityID, kind Kind) bool {
	return w.components.Has(id, kind)
}

// RemoveComponent detaches the given kind from entity id.
func (w *World) RemoveComponent(id EntityID, kind Kind) {
	w.components.Remove(id, kind)
}

// DeleteEntity removes every component of entity id. The id is never
// recycled.
func (w *World) DeleteEntity(id EntityID) {
	w.components.DeleteEntity(id)
}

// RegisterSystem adds system at the given priority; ties run in
// registration order.
func (w *World) RegisterSystem(system System, priority int) {
	w.scheduler.Register(system, priority)
}

// Tick runs one complete pass through every registered system in priority
// order.
func (w *World) Tick(ctx context.Context) error {
	return w.scheduler.Execute(ctx, w)
}

// Query returns every entity holding all listed kinds; see Query.Get for
// traversal semantics.
func (w *World) Query(kinds ...Kind) []QueryResult {
	return w.query.Get(kinds...)
}

// EntityIDs returns every entity with at least one component, sorted.
func (w *World) EntityIDs() []EntityID {
	return w.components.EntityIDs()
}

// ComponentKinds returns every kind with at least one holder, sorted.
func (w *World) ComponentKinds() []Kind {
	return w.components.Kinds()
}

// NextEntityID reports the id the next CreateEntity call will return.
func (w *World) NextEntityID() EntityID {
	return w.entityGen.Peek()
}

// ResetEntityCounter positions the id generator so the next issued id is
// next. Snapshot restore uses this for id continuity.
func (w *World) ResetEntityCounter(next EntityID) {
	w.entityGen.Reset(next)
}

// ReplaceState swaps this world's entity counter and component state for
// from's, keeping registered systems and event subscriptions intact. This is
// the full-world restore primitive used by checkpoint undo.
func (w *World) ReplaceState(from *World) {
	w.entityGen = from.entityGen
	w.components = from.components
	w.query = NewQuery(w.components)
}

// Get returns the typed component of T's kind on entity id. T must be a
// pointer component type from the catalogue; its Kind method is invoked on
// the zero (nil) receiver to resolve the kind.
func Get[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	c, ok := w.components.Get(id, zero.Kind())
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}
