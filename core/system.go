package core

import (
	"context"
	"fmt"
	"sort"
)

// System is one unit of per-tick behavior. Implementations hold no private
// entity state; everything they operate on lives in components reached
// through the World passed to Process. A system wanting internal concurrency
// (for example gathering collaborator calls) implements it inside its own
// Process; the scheduler has no visibility into it.
type System interface {
	Process(ctx context.Context, w *World) error
}

// registration pins a system to its priority.
type registration struct {
	system   System
	priority int
}

// Scheduler maintains the priority-ordered system list and executes one tick
// over it. Lower priority runs first; ties run in registration order.
type Scheduler struct {
	systems []registration
}

// NewScheduler constructs an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register inserts system at the given priority. The ordering is stable, so
// systems registered at the same priority run first-registered-first.
func (s *Scheduler) Register(system System, priority int) {
	s.systems = append(s.systems, registration{system: system, priority: priority})
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].priority < s.systems[j].priority
	})
}

// Execute runs one tick: every registered system's Process, strictly
// sequentially in ascending priority order. No two systems ever run
// concurrently; each runs to full completion before the next starts, so a
// later system observes every effect an earlier one produced this tick. The
// first system error aborts the tick.
func (s *Scheduler) Execute(ctx context.Context, w *World) error {
	for _, reg := range s.systems {
		if err := reg.system.Process(ctx, w); err != nil {
			return fmt.Errorf("system at priority %d: %w", reg.priority, err)
		}
	}
	return nil
}

// Len reports the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.systems)
}
