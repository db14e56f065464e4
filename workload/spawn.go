package workload

import (
	"fmt"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/component"
)

// Spawn measures raw creation throughput. The hot region creates N
// entities, each with a Position/Velocity pair derived from its creation
// index so no two entities are bit-identical. Nothing is iterated or
// mutated afterwards.
func Spawn() Workload {
	return Workload{
		Name:  "spawn",
		Setup: resetOnly,
		Hot: func(b backend.Backend, p Params) error {
			b.SpawnPosVel(p.Entities, indexedPosVel)

			return nil
		},
		Check: checkSpawn,
	}
}

func indexedPosVel(i int) (component.Position, component.Velocity) {
	f := float32(i)

	return component.Position{X: f, Y: f}, component.Velocity{X: f, Y: f}
}

func checkSpawn(b backend.Backend, p Params) (string, error) {
	if got := b.Count(); got != p.Entities {
		return "", fmt.Errorf("spawn: live entities = %d, want %d", got, p.Entities)
	}

	// Iteration order is unspecified, so the per-index values are checked
	// in aggregate: every pair must be (i,i)/(i,i) for some i, and the
	// index sum must cover 0..N-1 exactly.
	var indexSum float64

	visited := 0

	for pos, vel := range b.PosVel() {
		if pos.X != pos.Y || vel.X != vel.Y || pos.X != vel.X {
			return "", fmt.Errorf(
				"spawn: entity has position (%g,%g) velocity (%g,%g), want (i,i)/(i,i)",
				pos.X, pos.Y, vel.X, vel.Y)
		}

		indexSum += float64(pos.X)
		visited++
	}

	if visited != p.Entities {
		return "", fmt.Errorf("spawn: query visited %d entities, want %d",
			visited, p.Entities)
	}

	n := float64(p.Entities)
	if want := n * (n - 1) / 2; indexSum != want {
		return "", fmt.Errorf("spawn: index sum = %.0f, want %.0f", indexSum, want)
	}

	return fmt.Sprintf("spawn n=%d isum=%.0f", visited, indexSum), nil
}
