package core

// QueryResult pairs a matched entity with the live component references for
// each queried kind, in query-argument order. Mutating a component through
// the reference is visible to later systems in the same tick.
type QueryResult struct {
	Entity     EntityID
	Components []Component
}

// Query performs intersection queries across component kinds on top of a
// ComponentStore.
type Query struct {
	store *ComponentStore
}

// NewQuery constructs a Query over store.
func NewQuery(store *ComponentStore) *Query {
	return &Query{store: store}
}

// Get returns every entity holding all listed kinds. Traversal anchors on
// the first kind's table in insertion order and tests membership of the
// remaining kinds, so callers should pass the most selective kind first.
// The returned slice is a snapshot of matches, not a live view; additions or
// removals made while consuming it do not alter already-returned results.
func (q *Query) Get(kinds ...Kind) []QueryResult {
	if len(kinds) == 0 {
		return nil
	}

	var results []QueryResult
	for _, id := range q.store.Holders(kinds[0]) {
		matched := true
		for _, kind := range kinds[1:] {
			if !q.store.Has(id, kind) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		components := make([]Component, len(kinds))
		for i, kind := range kinds {
			components[i], _ = q.store.Get(id, kind)
		}
		results = append(results, QueryResult{Entity: id, Components: components})
	}
	return results
}
