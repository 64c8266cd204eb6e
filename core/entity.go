package core

// EntityID is an opaque handle identifying an entity for the lifetime of a
// World. IDs are unique and monotonically increasing starting at 1, and are
// never recycled: deleting an entity's components does not free its id.
// Components referencing ids (owners, peer lists) therefore stay valid
// across undo and resume.
type EntityID int64

// EntityIDGenerator issues fresh entity ids. The zero value is ready to use;
// its first Next call returns 1.
type EntityIDGenerator struct {
	counter int64
}

// Next returns a fresh, strictly increasing id. No two calls ever return the
// same value.
func (g *EntityIDGenerator) Next() EntityID {
	g.counter++
	return EntityID(g.counter)
}

// Peek reports the id the next call to Next would return, without consuming
// it. Snapshot capture records this for id continuity across restores.
func (g *EntityIDGenerator) Peek() EntityID {
	return EntityID(g.counter + 1)
}

// Reset positions the generator so the next issued id is next. Snapshot
// restore uses this so post-load ids never collide with pre-snapshot ids.
func (g *EntityIDGenerator) Reset(next EntityID) {
	c := int64(next) - 1
	if c < 0 {
		c = 0
	}
	g.counter = c
}
