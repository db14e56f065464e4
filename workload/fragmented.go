package workload

import (
	"fmt"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/component"
)

// FragmentedIter measures iteration over a component scattered across
// disjoint storage partitions. Each tag family gets a seed entity plus K
// replicas, every one pairing exactly one tag type with the shared Data
// component, so Data lives in Families distinct partitions. The hot pass
// doubles every Data value regardless of partition. Engines whose query
// cost scales with partition count rather than matching-entity count show
// the difference here; that asymmetry is the scenario's purpose.
func FragmentedIter() Workload {
	return Workload{
		Name:  "fragmented_iter",
		Setup: resetOnly,
		Hot: func(b backend.Backend, p Params) error {
			for f := 0; f < p.Families; f++ {
				slot := component.TagSlot(f)

				for k := 0; k <= p.Replication; k++ {
					b.SpawnTagData(slot, component.Data{Value: 1})
				}
			}

			for d := range b.Data() {
				d.Value *= 2
			}

			return nil
		},
		Check: checkFragmentedIter,
	}
}

func checkFragmentedIter(b backend.Backend, p Params) (string, error) {
	want := p.Families * (p.Replication + 1)

	if got := b.Count(); got != want {
		return "", fmt.Errorf("fragmented_iter: live entities = %d, want %d",
			got, want)
	}

	// Every Data must have been doubled exactly once: not zero times, not
	// twice.
	visited := 0

	for d := range b.Data() {
		if d.Value != 2 {
			return "", fmt.Errorf(
				"fragmented_iter: data value = %g, want 2 (doubled exactly once)",
				d.Value)
		}

		visited++
	}

	if visited != want {
		return "", fmt.Errorf(
			"fragmented_iter: query visited %d data components, want %d",
			visited, want)
	}

	for f := 0; f < p.Families; f++ {
		slot := component.TagSlot(f)
		if got := b.MarkerCount(slot); got != p.Replication+1 {
			return "", fmt.Errorf(
				"fragmented_iter: family %v holds %d entities, want %d",
				slot, got, p.Replication+1)
		}
	}

	return fmt.Sprintf("fragmented_iter n=%d families=%d", visited, p.Families), nil
}
