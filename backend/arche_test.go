package backend

import (
	"errors"
	"testing"

	"github.com/ecsmark/ecsmark/component"
)

// Exercises the mask-backed paths of the arche adapter in one sequence:
// fragmented coverage across three archetype partitions, a per-entity
// structural round trip, and handle invalidation across Reset.
func TestArcheMaskPaths(t *testing.T) {
	b := NewArche()

	for f := 0; f < 3; f++ {
		slot := component.TagSlot(f)

		for k := 0; k < 21; k++ {
			b.SpawnTagData(slot, component.Data{Value: 1})
		}
	}

	if got := b.Count(); got != 63 {
		t.Fatalf("count = %d, want 63", got)
	}

	for d := range b.Data() {
		d.Value *= 2
	}

	visited := 0

	for d := range b.Data() {
		if d.Value != 2 {
			t.Fatalf("data value = %g, want 2 (doubled exactly once)", d.Value)
		}

		visited++
	}

	if visited != 63 {
		t.Fatalf("data query visited %d, want 63", visited)
	}

	b.Reset()

	ents := b.SpawnMarked(5, component.TagSlot(0))

	for _, e := range ents {
		if err := b.InsertMarker(e, component.TagSlot(1)); err != nil {
			t.Fatalf("insert second marker: %v", err)
		}

		n, err := b.ComponentCount(e)
		if err != nil {
			t.Fatal(err)
		}

		if n != 2 {
			t.Fatalf("component count after insert = %d, want 2", n)
		}
	}

	// Overwrite semantics: a duplicate insert succeeds and adds nothing.
	if err := b.InsertMarker(ents[0], component.TagSlot(1)); err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}

	if n, _ := b.ComponentCount(ents[0]); n != 2 {
		t.Fatalf("component count after duplicate insert = %d, want 2", n)
	}

	for _, e := range ents {
		if err := b.RemoveMarker(e, component.TagSlot(1)); err != nil {
			t.Fatalf("remove second marker: %v", err)
		}

		n, err := b.ComponentCount(e)
		if err != nil {
			t.Fatal(err)
		}

		if n != 1 {
			t.Fatalf("component count after remove = %d, want 1", n)
		}
	}

	if got := b.MarkerCount(component.TagSlot(1)); got != 0 {
		t.Fatalf("second marker count = %d, want 0", got)
	}

	b.Reset()
	b.SpawnMarked(5, component.TagSlot(0))

	if _, err := b.ComponentCount(ents[0]); !errors.Is(err, ErrDeadEntity) {
		t.Fatalf("ComponentCount on stale handle = %v, want ErrDeadEntity", err)
	}
}
