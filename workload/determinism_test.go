package workload

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ecsmark/ecsmark/backend"
)

// Property: given identical workload parameters, any two conforming
// backends produce the identical logical end state — entity counts,
// component membership and numeric values — even though their storage
// layouts differ.
func TestProperty_DeterminismAcrossBackends(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("all backends agree on every scenario's digest", prop.ForAll(
		func(entities, replication, families, computeEnts, computeIters int) bool {
			p := Params{
				Entities:          entities,
				Replication:       replication,
				Families:          families,
				ComputeEntities:   computeEnts,
				ComputeIterations: computeIters,
			}

			if err := p.Validate(); err != nil {
				return false
			}

			for _, w := range All() {
				first := ""

				for i, name := range backend.Names() {
					b, err := backend.Open(name)
					if err != nil {
						return false
					}

					if err := w.Setup(b, p); err != nil {
						return false
					}

					if err := w.Hot(b, p); err != nil {
						return false
					}

					digest, err := w.Check(b, p)
					if err != nil {
						return false
					}

					if i == 0 {
						first = digest
					} else if digest != first {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(0, 128),
		gen.IntRange(0, 6),
		gen.IntRange(0, 8),
		gen.IntRange(0, 32),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
