package workload

import (
	"fmt"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/component"
)

// HeavyCompute measures per-entity compute cost isolated from bulk
// throughput: a small count of entities each carrying one identity
// Transform, multiplied in place by a constant identity matrix a fixed
// number of times. Arithmetic dwarfs iteration here, so what remains
// visible is per-element access overhead.
func HeavyCompute() Workload {
	return Workload{
		Name:  "heavy_compute",
		Setup: resetOnly,
		Hot: func(b backend.Backend, p Params) error {
			identity := component.Identity()

			b.SpawnTransforms(p.ComputeEntities, identity)

			for t := range b.Transforms() {
				for j := 0; j < p.ComputeIterations; j++ {
					t.M = t.M.Mul(identity)
				}
			}

			return nil
		},
		Check: checkHeavyCompute,
	}
}

func checkHeavyCompute(b backend.Backend, p Params) (string, error) {
	if got := b.Count(); got != p.ComputeEntities {
		return "", fmt.Errorf("heavy_compute: live entities = %d, want %d",
			got, p.ComputeEntities)
	}

	identity := component.Identity()
	visited := 0

	for t := range b.Transforms() {
		if t.M != identity {
			return "", fmt.Errorf(
				"heavy_compute: matrix drifted from identity: %v", t.M)
		}

		visited++
	}

	if visited != p.ComputeEntities {
		return "", fmt.Errorf(
			"heavy_compute: query visited %d transforms, want %d",
			visited, p.ComputeEntities)
	}

	return fmt.Sprintf("heavy_compute n=%d iters=%d",
		visited, p.ComputeIterations), nil
}
