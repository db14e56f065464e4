// Package workload defines the canonical access-pattern scenarios applied
// identically to every backend: bulk spawn, uniform iteration, fragmented
// iteration, compute-bound iteration, and structural add/remove.
//
// Every trial follows Reset -> Populate -> Measure. Reset always runs
// outside the timed region; population runs inside it, because each
// scenario's stated purpose includes creation cost (bulk spawn measures
// nothing else, and the iteration scenarios rebuild their world every
// trial exactly like the structural one does). Only the Hot function's
// duration is attributed to a backend's score.
package workload

import (
	"errors"
	"fmt"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/component"
)

// ErrUnknownWorkload is returned by ByName for unregistered names.
var ErrUnknownWorkload = errors.New("workload: unknown workload")

// Params controls the entity counts shared by all scenarios.
type Params struct {
	// Entities is N for bulk spawn, uniform iteration and add/remove.
	Entities int
	// Replication is K: extra entities per tag family beyond the seed.
	Replication int
	// Families is the number of tag families the fragmented scenario
	// scatters Data across (up to 26, default 3).
	Families int
	// ComputeEntities is the entity count for the compute-bound scenario.
	ComputeEntities int
	// ComputeIterations is its inner multiply count per entity.
	ComputeIterations int
}

// DefaultParams returns the canonical parameters: 100k entities, a
// replication factor of 20 across three tag families, and 1000 entities
// with 100 matrix multiplies each for the compute scenario.
func DefaultParams() Params {
	return Params{
		Entities:          100_000,
		Replication:       20,
		Families:          3,
		ComputeEntities:   1000,
		ComputeIterations: 100,
	}
}

// Validate rejects parameter sets no scenario can run.
func (p Params) Validate() error {
	switch {
	case p.Entities < 0:
		return fmt.Errorf("workload: entities must be >= 0, got %d", p.Entities)
	case p.Replication < 0:
		return fmt.Errorf("workload: replication must be >= 0, got %d", p.Replication)
	case p.Families < 0 || p.Families > component.TagCount:
		return fmt.Errorf("workload: families must be in [0, %d], got %d",
			component.TagCount, p.Families)
	case p.ComputeEntities < 0:
		return fmt.Errorf("workload: compute entities must be >= 0, got %d",
			p.ComputeEntities)
	case p.ComputeIterations < 0:
		return fmt.Errorf("workload: compute iterations must be >= 0, got %d",
			p.ComputeIterations)
	}

	return nil
}

// Workload is one canonical scenario, a pure function of (backend,
// params) with no engine-specific logic.
type Workload struct {
	Name string

	// Setup prepares a trial outside the timed region.
	Setup func(b backend.Backend, p Params) error

	// Hot is the measured region. Any error aborts the (workload,
	// backend) pair; a silently skipped operation would make the pair's
	// score measure less work than its siblings.
	Hot func(b backend.Backend, p Params) error

	// Check verifies the scenario's post-trial invariants and returns a
	// digest of the logical end state. Conforming backends must produce
	// identical digests for identical params.
	Check func(b backend.Backend, p Params) (string, error)
}

// All returns the five scenarios in canonical order.
func All() []Workload {
	return []Workload{
		Spawn(),
		SimpleIter(),
		FragmentedIter(),
		HeavyCompute(),
		CrudAddRemove(),
	}
}

// Names returns the scenario names in canonical order.
func Names() []string {
	all := All()
	names := make([]string, len(all))

	for i, w := range all {
		names[i] = w.Name
	}

	return names
}

// ByName looks up a scenario by name.
func ByName(name string) (Workload, error) {
	for _, w := range All() {
		if w.Name == name {
			return w, nil
		}
	}

	return Workload{}, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
}

func resetOnly(b backend.Backend, _ Params) error {
	b.Reset()

	return nil
}
