package core

// EntityRecord maps component kind names to their serialized field maps for
// one entity.
type EntityRecord map[string]map[string]any

// Snapshot is a complete, self-contained copy of every entity's every
// component at one instant, in JSON-ready form. Entities are keyed by their
// decimal id. Fields holding live external resources (providers, tool
// handlers) are replaced by a fixed sentinel at capture time. A Snapshot is
// immutable once captured.
//
// The snapshot package produces and consumes this shape; it lives here so
// the checkpoint ring component can embed snapshots without an import cycle.
type Snapshot struct {
	NextEntityID int64                   `json:"next_entity_id"`
	Entities     map[string]EntityRecord `json:"entities"`
}
