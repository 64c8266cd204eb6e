// Package core provides the entity-component runtime underlying AgentWorld.
// It defines the foundational abstractions:
//
//   - EntityID / EntityIDGenerator (opaque, monotonically increasing identity)
//   - Component / ComponentStore (kind-indexed plain-data records per entity)
//   - Query (intersection queries across component kinds)
//   - EventBus (exact-type publish/subscribe with isolated concurrent fan-out)
//   - System / Scheduler (priority-ordered, strictly sequential tick execution)
//   - World (composition root binding the above behind one surface)
//
// The package intentionally keeps implementation concerns (the component
// catalogue, serialization, checkpointing, concrete systems) out of scope,
// exposing small interfaces to enable custom systems and event types. All
// mutation of world state goes through World's accessors; no global state is
// involved.
package core
