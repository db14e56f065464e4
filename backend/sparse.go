package backend

import (
	"fmt"
	"iter"

	"github.com/ecsmark/ecsmark/component"
)

// Sparse is a sparse-set engine: one lookup structure per component type,
// mapping entity index to a densely packed value slice, independent of any
// other component's partitioning. Entity handles are generational, so a
// handle from before a Reset (or a destroyed entity's slot being reused)
// is detectably dead.
//
// Duplicate insert rejects: inserting a tag the entity already carries
// fails with ErrDuplicateComponent.
type Sparse struct {
	gens  []uint32
	alive []bool
	free  []uint32
	live  int

	pos  *sparseStore[component.Position]
	vel  *sparseStore[component.Velocity]
	tf   *sparseStore[component.Transform]
	data *sparseStore[component.Data]
	tags [component.TagCount]markerStore
}

// NewSparse creates an empty sparse-set backend with one store per
// component type in the schema. Each of the 26 tag stores is a distinct
// typed instantiation, keeping the tag partitions statically separate.
func NewSparse() *Sparse {
	return &Sparse{
		pos:  &sparseStore[component.Position]{},
		vel:  &sparseStore[component.Velocity]{},
		tf:   &sparseStore[component.Transform]{},
		data: &sparseStore[component.Data]{},
		tags: [component.TagCount]markerStore{
			&sparseStore[component.TagA]{},
			&sparseStore[component.TagB]{},
			&sparseStore[component.TagC]{},
			&sparseStore[component.TagD]{},
			&sparseStore[component.TagE]{},
			&sparseStore[component.TagF]{},
			&sparseStore[component.TagG]{},
			&sparseStore[component.TagH]{},
			&sparseStore[component.TagI]{},
			&sparseStore[component.TagJ]{},
			&sparseStore[component.TagK]{},
			&sparseStore[component.TagL]{},
			&sparseStore[component.TagM]{},
			&sparseStore[component.TagN]{},
			&sparseStore[component.TagO]{},
			&sparseStore[component.TagP]{},
			&sparseStore[component.TagQ]{},
			&sparseStore[component.TagR]{},
			&sparseStore[component.TagS]{},
			&sparseStore[component.TagT]{},
			&sparseStore[component.TagU]{},
			&sparseStore[component.TagV]{},
			&sparseStore[component.TagW]{},
			&sparseStore[component.TagX]{},
			&sparseStore[component.TagY]{},
			&sparseStore[component.TagZ]{},
		},
	}
}

func (b *Sparse) Name() string { return "sparse" }

func (b *Sparse) DuplicateInsert() InsertSemantics { return InsertRejects }

func (b *Sparse) Reset() {
	b.free = b.free[:0]

	for i := range b.alive {
		// Bumping the generation keeps pre-Reset handles dead even when
		// the slot is reused.
		b.gens[i]++
		b.alive[i] = false
		b.free = append(b.free, uint32(i))
	}

	b.live = 0

	b.pos.clear()
	b.vel.clear()
	b.tf.clear()
	b.data.clear()

	for _, t := range b.tags {
		t.clear()
	}
}

func (b *Sparse) Count() int { return b.live }

func (b *Sparse) SpawnPosVel(
	n int,
	init func(i int) (component.Position, component.Velocity),
) {
	for i := 0; i < n; i++ {
		idx := b.alloc()
		pos, vel := init(i)
		b.pos.insert(idx, pos)
		b.vel.insert(idx, vel)
	}
}

func (b *Sparse) SpawnTransforms(n int, m component.Mat4) {
	for i := 0; i < n; i++ {
		b.tf.insert(b.alloc(), component.Transform{M: m})
	}
}

func (b *Sparse) SpawnTagData(
	slot component.TagSlot,
	d component.Data,
) EntityID {
	idx := b.alloc()
	b.tagStore(slot).insertDefault(idx)
	b.data.insert(idx, d)

	return b.id(idx)
}

func (b *Sparse) SpawnMarked(n int, slot component.TagSlot) []EntityID {
	store := b.tagStore(slot)
	out := make([]EntityID, n)

	for i := 0; i < n; i++ {
		idx := b.alloc()
		store.insertDefault(idx)
		out[i] = b.id(idx)
	}

	return out
}

func (b *Sparse) InsertMarker(e EntityID, slot component.TagSlot) error {
	idx, err := b.index(e)
	if err != nil {
		return err
	}

	if !b.tagStore(slot).insertDefault(idx) {
		return fmt.Errorf("%w: tag %v on entity %d",
			ErrDuplicateComponent, slot, e)
	}

	return nil
}

func (b *Sparse) RemoveMarker(e EntityID, slot component.TagSlot) error {
	idx, err := b.index(e)
	if err != nil {
		return err
	}

	b.tagStore(slot).remove(idx)

	return nil
}

func (b *Sparse) ComponentCount(e EntityID) (int, error) {
	idx, err := b.index(e)
	if err != nil {
		return 0, err
	}

	n := 0

	if b.pos.has(idx) {
		n++
	}
	if b.vel.has(idx) {
		n++
	}
	if b.tf.has(idx) {
		n++
	}
	if b.data.has(idx) {
		n++
	}

	for _, t := range b.tags {
		if t.has(idx) {
			n++
		}
	}

	return n, nil
}

func (b *Sparse) MarkerCount(slot component.TagSlot) int {
	return b.tagStore(slot).size()
}

func (b *Sparse) PosVel() iter.Seq2[*component.Position, *component.Velocity] {
	return func(yield func(*component.Position, *component.Velocity) bool) {
		// Walk the Position store densely and join Velocity through its
		// sparse index.
		for slot := range b.pos.dense {
			vel := b.vel.get(b.pos.owners[slot])
			if vel == nil {
				continue
			}

			if !yield(&b.pos.dense[slot], vel) {
				return
			}
		}
	}
}

func (b *Sparse) Data() iter.Seq[*component.Data] {
	return func(yield func(*component.Data) bool) {
		for slot := range b.data.dense {
			if !yield(&b.data.dense[slot]) {
				return
			}
		}
	}
}

func (b *Sparse) Transforms() iter.Seq[*component.Transform] {
	return func(yield func(*component.Transform) bool) {
		for slot := range b.tf.dense {
			if !yield(&b.tf.dense[slot]) {
				return
			}
		}
	}
}

// alloc claims an entity slot, reusing freed slots before growing.
func (b *Sparse) alloc() uint32 {
	b.live++

	if n := len(b.free); n > 0 {
		idx := b.free[n-1]
		b.free = b.free[:n-1]
		b.alive[idx] = true

		return idx
	}

	idx := uint32(len(b.gens))
	b.gens = append(b.gens, 0)
	b.alive = append(b.alive, true)

	return idx
}

// id packs a slot index and its current generation into a handle.
func (b *Sparse) id(idx uint32) EntityID {
	return EntityID(uint64(b.gens[idx])<<32 | uint64(idx))
}

// index unpacks a handle, verifying liveness and generation.
func (b *Sparse) index(e EntityID) (uint32, error) {
	idx := uint32(e)
	gen := uint32(e >> 32)

	if int(idx) >= len(b.gens) || !b.alive[idx] || b.gens[idx] != gen {
		return 0, fmt.Errorf("%w: handle %d", ErrDeadEntity, e)
	}

	return idx, nil
}

func (b *Sparse) tagStore(slot component.TagSlot) markerStore {
	if !slot.Valid() {
		panic(fmt.Sprintf("%v: %d", errBadTagSlot, slot))
	}

	return b.tags[slot]
}

// markerStore is the slice of the sparse-set API the tag dispatch table
// needs: presence toggling without a caller-visible value type.
type markerStore interface {
	insertDefault(idx uint32) bool
	remove(idx uint32) bool
	has(idx uint32) bool
	size() int
	clear()
}

// sparseStore is a classic sparse set: sparse maps entity index to a slot
// in dense, and owners maps the slot back. Removal swap-deletes, keeping
// dense iteration tight.
type sparseStore[T any] struct {
	sparse []int32
	dense  []T
	owners []uint32
}

func (s *sparseStore[T]) slot(idx uint32) int32 {
	if int(idx) >= len(s.sparse) {
		return -1
	}

	return s.sparse[idx]
}

func (s *sparseStore[T]) has(idx uint32) bool {
	return s.slot(idx) >= 0
}

// insert adds v for the entity index; it returns false if the index
// already has a value (the stored value is left untouched).
func (s *sparseStore[T]) insert(idx uint32, v T) bool {
	if s.has(idx) {
		return false
	}

	for int(idx) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}

	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, v)
	s.owners = append(s.owners, idx)

	return true
}

func (s *sparseStore[T]) insertDefault(idx uint32) bool {
	var zero T

	return s.insert(idx, zero)
}

// remove swap-deletes the entity's value; it returns false if absent.
func (s *sparseStore[T]) remove(idx uint32) bool {
	slot := s.slot(idx)
	if slot < 0 {
		return false
	}

	last := len(s.dense) - 1
	if int(slot) != last {
		s.dense[slot] = s.dense[last]
		s.owners[slot] = s.owners[last]
		s.sparse[s.owners[slot]] = slot
	}

	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[idx] = -1

	return true
}

func (s *sparseStore[T]) get(idx uint32) *T {
	slot := s.slot(idx)
	if slot < 0 {
		return nil
	}

	return &s.dense[slot]
}

func (s *sparseStore[T]) size() int { return len(s.dense) }

func (s *sparseStore[T]) clear() {
	s.dense = s.dense[:0]
	s.owners = s.owners[:0]

	for i := range s.sparse {
		s.sparse[i] = -1
	}
}
