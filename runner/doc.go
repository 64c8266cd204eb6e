// Package runner implements the tick-loop driver for AgentWorld.
//
// The Runner repeatedly ticks a World until a terminal marker component
// appears on any entity or a finite tick budget is exhausted, tracking
// progress in a RunnerState component so a mid-run checkpoint always
// captures the true absolute tick count. It also provides thin
// checkpoint-file adapters over the snapshot service that persist and
// restore the runner state alongside the world, enabling exact resumption
// from disk.
//
// Run never returns an error on a normal stop condition; callers inspect
// the terminal marker's presence and reason instead.
package runner
