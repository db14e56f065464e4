// Package component defines the fixed-layout data records used uniformly
// across all workloads and all backends. Components are plain value types
// with no behavior beyond data layout; the only exception is Mat4, which
// carries the multiplication the compute-bound workload needs.
package component

import "fmt"

// Position is the minimal two-field record for the baseline patterns.
type Position struct {
	X, Y float32
}

// Velocity is the companion record to Position.
type Velocity struct {
	X, Y float32
}

// Transform wraps a dense 4x4 matrix used to create realistic per-entity
// compute cost.
type Transform struct {
	M Mat4
}

// Data is the single-field component whose mutation is the measured effect
// of the fragmented-iteration workload.
type Data struct {
	Value float32
}

// The 26 tag types below are structurally identical single-float records
// but distinct static types. Entities carrying different tags occupy
// different storage partitions (archetypes/tables) in engines that
// partition storage by exact component set; collapsing them into one type
// with a runtime discriminator would defeat the fragmentation scenarios.

type TagA struct{ Value float32 }
type TagB struct{ Value float32 }
type TagC struct{ Value float32 }
type TagD struct{ Value float32 }
type TagE struct{ Value float32 }
type TagF struct{ Value float32 }
type TagG struct{ Value float32 }
type TagH struct{ Value float32 }
type TagI struct{ Value float32 }
type TagJ struct{ Value float32 }
type TagK struct{ Value float32 }
type TagL struct{ Value float32 }
type TagM struct{ Value float32 }
type TagN struct{ Value float32 }
type TagO struct{ Value float32 }
type TagP struct{ Value float32 }
type TagQ struct{ Value float32 }
type TagR struct{ Value float32 }
type TagS struct{ Value float32 }
type TagT struct{ Value float32 }
type TagU struct{ Value float32 }
type TagV struct{ Value float32 }
type TagW struct{ Value float32 }
type TagX struct{ Value float32 }
type TagY struct{ Value float32 }
type TagZ struct{ Value float32 }

// TagCount is the number of distinct tag types.
const TagCount = 26

// TagSlot selects one of the 26 tag types. Each backend adapter maps a
// slot to the corresponding static type through an explicit, compile-time
// enumeration; the slot is only a name, never a storage discriminator.
type TagSlot int

// Valid reports whether the slot names one of the 26 tag types.
func (s TagSlot) Valid() bool {
	return s >= 0 && s < TagCount
}

// String returns the tag's letter, e.g. "A" for slot 0.
func (s TagSlot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TagSlot(%d)", int(s))
	}

	return string(rune('A' + int(s)))
}
