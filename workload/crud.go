package workload

import (
	"fmt"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/component"
)

// Tag families used by the structural scenario. The second marker is
// never present at insert time, so the scenario is valid under both
// overwrite and reject duplicate-insert semantics.
const (
	crudFirstMarker  = component.TagSlot(0) // TagA
	crudSecondMarker = component.TagSlot(1) // TagB
)

// CrudAddRemove measures structural change cost: spawn N entities with a
// single marker, add a second distinct marker to each, then remove it
// from each. The edits are deliberately N independent single-entity
// operations, never a bulk API, because per-entity migration overhead is
// exactly what differs between archetype and sparse-set layouts.
func CrudAddRemove() Workload {
	return Workload{
		Name:  "crud_add_remove",
		Setup: resetOnly,
		Hot: func(b backend.Backend, p Params) error {
			ents := b.SpawnMarked(p.Entities, crudFirstMarker)

			for _, e := range ents {
				if err := b.InsertMarker(e, crudSecondMarker); err != nil {
					return fmt.Errorf("crud_add_remove: insert second marker: %w", err)
				}
			}

			for _, e := range ents {
				if err := b.RemoveMarker(e, crudSecondMarker); err != nil {
					return fmt.Errorf("crud_add_remove: remove second marker: %w", err)
				}
			}

			return nil
		},
		Check: checkCrudAddRemove,
	}
}

func checkCrudAddRemove(b backend.Backend, p Params) (string, error) {
	if got := b.Count(); got != p.Entities {
		return "", fmt.Errorf("crud_add_remove: live entities = %d, want %d",
			got, p.Entities)
	}

	// The component set must have round-tripped exactly: every entity
	// carries the first marker and nothing else.
	if got := b.MarkerCount(crudFirstMarker); got != p.Entities {
		return "", fmt.Errorf(
			"crud_add_remove: %d entities carry marker %v, want %d",
			got, crudFirstMarker, p.Entities)
	}

	if got := b.MarkerCount(crudSecondMarker); got != 0 {
		return "", fmt.Errorf(
			"crud_add_remove: %d entities still carry marker %v, want 0",
			got, crudSecondMarker)
	}

	return fmt.Sprintf("crud_add_remove n=%d", p.Entities), nil
}
