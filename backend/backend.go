// Package backend defines the capability contract shared by every storage
// engine under comparison, plus one adapter per engine. Workloads are
// written once against the contract and never against a concrete engine.
//
// No Backend is safe for concurrent use; the harness runs strictly
// single-threaded by construction.
package backend

import (
	"errors"
	"fmt"
	"iter"

	"github.com/ecsmark/ecsmark/component"
)

// EntityID is an opaque entity handle, unique within one backend
// instance's lifetime. It has no meaning outside the owning instance and
// is never compared across backends.
type EntityID uint64

// InsertSemantics reports how a backend treats inserting a component type
// an entity already carries. Engines genuinely diverge here; the harness
// documents the behavior per backend instead of forcing uniformity.
type InsertSemantics int

const (
	// InsertOverwrites means a duplicate insert replaces the stored value.
	InsertOverwrites InsertSemantics = iota
	// InsertRejects means a duplicate insert fails with
	// ErrDuplicateComponent.
	InsertRejects
)

// String returns a short label for reports and logs.
func (s InsertSemantics) String() string {
	switch s {
	case InsertOverwrites:
		return "overwrite"
	case InsertRejects:
		return "reject"
	default:
		return fmt.Sprintf("InsertSemantics(%d)", int(s))
	}
}

var (
	// ErrDeadEntity is returned by structural edits referencing an entity
	// that no longer exists. Workloads never reuse stale handles, so any
	// occurrence indicates a harness bug and must propagate.
	ErrDeadEntity = errors.New("backend: entity does not exist")

	// ErrDuplicateComponent is returned by backends with reject semantics
	// when inserting a component type the entity already carries.
	ErrDuplicateComponent = errors.New("backend: component already present")

	// ErrUnknownBackend is returned by Open for unregistered names.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	errBadTagSlot = errors.New("backend: tag slot out of range")
)

// Backend is the capability set a storage engine must expose to be
// benchmarked. All operations mutate the backend in place.
type Backend interface {
	// Name identifies the engine in pair names and reports.
	Name() string

	// DuplicateInsert reports the engine's duplicate-insert behavior.
	DuplicateInsert() InsertSemantics

	// Reset destroys all entities and components, returning the backend
	// to empty. Cost is O(live entities) or better, and repeated calls
	// must not leak storage. Handles spawned before a Reset are dead
	// afterwards.
	Reset()

	// Count returns the number of live entities.
	Count() int

	// SpawnPosVel creates n entities, each carrying a Position/Velocity
	// pair produced by init for its creation index.
	SpawnPosVel(n int, init func(i int) (component.Position, component.Velocity))

	// SpawnTransforms creates n entities, each carrying a single
	// Transform initialized to m.
	SpawnTransforms(n int, m component.Mat4)

	// SpawnTagData creates one entity pairing the slot's tag type with d,
	// returning a handle usable for structural edits within the trial.
	SpawnTagData(slot component.TagSlot, d component.Data) EntityID

	// SpawnMarked creates n entities, each carrying only the slot's tag
	// type, and returns their handles in creation order.
	SpawnMarked(n int, slot component.TagSlot) []EntityID

	// InsertMarker adds the slot's tag type to an existing entity as a
	// single-entity operation. If the entity already carries the tag the
	// outcome follows DuplicateInsert. A dead handle is an error.
	InsertMarker(e EntityID, slot component.TagSlot) error

	// RemoveMarker removes the slot's tag type from an existing entity.
	// Absence of the tag is a no-op, not an error; a dead handle is an
	// error.
	RemoveMarker(e EntityID, slot component.TagSlot) error

	// ComponentCount returns how many components the entity carries.
	ComponentCount(e EntityID) (int, error)

	// MarkerCount returns how many live entities carry the slot's tag.
	MarkerCount(slot component.TagSlot) int

	// PosVel returns a lazy, finite, single-pass sequence of mutable
	// references for every entity carrying both Position and Velocity.
	// Order across entities is unspecified; a fresh call yields a fresh
	// pass.
	PosVel() iter.Seq2[*component.Position, *component.Velocity]

	// Data returns a lazy single-pass sequence over every Data component,
	// irrespective of which tag partition the entity resides in.
	Data() iter.Seq[*component.Data]

	// Transforms returns a lazy single-pass sequence over every
	// Transform component.
	Transforms() iter.Seq[*component.Transform]
}

// Names returns the registered backend names in canonical order.
func Names() []string {
	return []string{"arche", "sparse", "mapstore"}
}

// Open constructs a fresh instance of the named backend. Component-type
// registration is instance-scoped and happens here, never as ambient
// global state, so multiple instances safely coexist in one run.
func Open(name string) (Backend, error) {
	switch name {
	case "arche":
		return NewArche(), nil
	case "sparse":
		return NewSparse(), nil
	case "mapstore":
		return NewMapStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
