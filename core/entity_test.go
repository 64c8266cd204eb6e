package core

import "testing"

func TestEntityIDGenerator_MonotonicFromOne(t *testing.T) {
	var gen EntityIDGenerator

	seen := make(map[EntityID]bool)
	for i := 1; i <= 100; i++ {
		id := gen.Next()
		if id != EntityID(i) {
			t.Fatalf("expected id %d, got %d", i, id)
		}
		if seen[id] {
			t.Fatalf("id %d issued twice", id)
		}
		seen[id] = true
	}
}

func TestEntityIDGenerator_Reset(t *testing.T) {
	var gen EntityIDGenerator
	gen.Next()
	gen.Next()

	gen.Reset(42)
	if got := gen.Peek(); got != 42 {
		t.Fatalf("expected peek 42, got %d", got)
	}
	if got := gen.Next(); got != 42 {
		t.Fatalf("expected next 42, got %d", got)
	}

	// Reset below 1 clamps so the first id is still 1.
	gen.Reset(0)
	if got := gen.Next(); got != 1 {
		t.Fatalf("expected next 1, got %d", got)
	}
}
