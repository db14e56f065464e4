package workload

import (
	"fmt"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/component"
)

// SimpleIter measures steady-state iteration over a single, unfragmented
// table: N entities with default-valued Position/Velocity pairs, then one
// pass adding each velocity into its position in place. The update must
// reach every qualifying entity exactly once; a partial pass is a
// correctness bug, not a fast backend.
func SimpleIter() Workload {
	return Workload{
		Name:  "simple_iter",
		Setup: resetOnly,
		Hot: func(b backend.Backend, p Params) error {
			b.SpawnPosVel(p.Entities, defaultPosVel)

			for pos, vel := range b.PosVel() {
				pos.X += vel.X
				pos.Y += vel.Y
			}

			return nil
		},
		Check: checkSimpleIter,
	}
}

func defaultPosVel(int) (component.Position, component.Velocity) {
	return component.Position{}, component.Velocity{}
}

func checkSimpleIter(b backend.Backend, p Params) (string, error) {
	if got := b.Count(); got != p.Entities {
		return "", fmt.Errorf("simple_iter: live entities = %d, want %d",
			got, p.Entities)
	}

	// Velocities are zero, so a position equals the velocity applied
	// exactly once iff it is still (0,0).
	visited := 0

	for pos, vel := range b.PosVel() {
		if pos.X != vel.X || pos.Y != vel.Y {
			return "", fmt.Errorf(
				"simple_iter: position (%g,%g) does not equal velocity (%g,%g) applied once",
				pos.X, pos.Y, vel.X, vel.Y)
		}

		visited++
	}

	if visited != p.Entities {
		return "", fmt.Errorf("simple_iter: query visited %d entities, want %d",
			visited, p.Entities)
	}

	return fmt.Sprintf("simple_iter n=%d", visited), nil
}
