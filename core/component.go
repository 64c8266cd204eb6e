package core

import "sort"

// Kind identifies a component type within the closed catalogue. Dispatch is
// always by exact kind identity; there is no component subtyping.
type Kind string

// Component is a typed plain-data record attached to an entity. An entity
// holds at most one component per kind; adding a second instance of the same
// kind overwrites the first. Implementations must return a constant Kind and
// the method must be callable on a nil receiver.
type Component interface {
	Kind() Kind
}

// kindTable holds all components of one kind, keyed by entity, preserving
// entity insertion order for deterministic query traversal. Overwriting an
// entity's component keeps its original position.
type kindTable struct {
	byEntity map[EntityID]Component
	order    []EntityID
}

func (t *kindTable) remove(id EntityID) {
	if _, ok := t.byEntity[id]; !ok {
		return
	}
	delete(t.byEntity, id)
	for i, e := range t.order {
		if e == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// ComponentStore is type-indexed storage of component records keyed by
// (entity, kind). It is not safe for concurrent use; the scheduler's
// strictly sequential execution is the concurrency model.
type ComponentStore struct {
	kinds map[Kind]*kindTable
}

// NewComponentStore constructs an empty store.
func NewComponentStore() *ComponentStore {
	return &ComponentStore{kinds: make(map[Kind]*kindTable)}
}

// Add attaches c to entity id, overwriting any prior component of the same
// kind (last write wins).
func (s *ComponentStore) Add(id EntityID, c Component) {
	t := s.kinds[c.Kind()]
	if t == nil {
		t = &kindTable{byEntity: make(map[EntityID]Component)}
		s.kinds[c.Kind()] = t
	}
	if _, ok := t.byEntity[id]; !ok {
		t.order = append(t.order, id)
	}
	t.byEntity[id] = c
}

// Get returns the component of the given kind held by entity id. The second
// return is false when the pair is unknown; absence is not an error.
func (s *ComponentStore) Get(id EntityID, kind Kind) (Component, bool) {
	t := s.kinds[kind]
	if t == nil {
		return nil, false
	}
	c, ok := t.byEntity[id]
	return c, ok
}

// Has reports whether entity id holds a component of the given kind.
func (s *ComponentStore) Has(id EntityID, kind Kind) bool {
	t := s.kinds[kind]
	if t == nil {
		return false
	}
	_, ok := t.byEntity[id]
	return ok
}

// Remove detaches the component of the given kind from entity id, if
// present. Empty kind tables are dropped.
func (s *ComponentStore) Remove(id EntityID, kind Kind) {
	t := s.kinds[kind]
	if t == nil {
		return
	}
	t.remove(id)
	if len(t.byEntity) == 0 {
		delete(s.kinds, kind)
	}
}

// DeleteEntity removes entity id from every kind table. The id itself is
// never reused.
func (s *ComponentStore) DeleteEntity(id EntityID) {
	var empty []Kind
	for kind, t := range s.kinds {
		t.remove(id)
		if len(t.byEntity) == 0 {
			empty = append(empty, kind)
		}
	}
	for _, kind := range empty {
		delete(s.kinds, kind)
	}
}

// Holders returns the entities holding the given kind, in insertion order.
// The slice is a copy; mutating the store does not retroactively alter it.
func (s *ComponentStore) Holders(kind Kind) []EntityID {
	t := s.kinds[kind]
	if t == nil {
		return nil
	}
	out := make([]EntityID, len(t.order))
	copy(out, t.order)
	return out
}

// Kinds returns every kind with at least one holder, sorted for
// deterministic traversal.
func (s *ComponentStore) Kinds() []Kind {
	out := make([]Kind, 0, len(s.kinds))
	for kind := range s.kinds {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EntityIDs returns every entity holding at least one component, sorted
// ascending.
func (s *ComponentStore) EntityIDs() []EntityID {
	seen := make(map[EntityID]struct{})
	for _, t := range s.kinds {
		for id := range t.byEntity {
			seen[id] = struct{}{}
		}
	}
	out := make([]EntityID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
