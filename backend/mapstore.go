package backend

import (
	"fmt"
	"iter"

	"github.com/ecsmark/ecsmark/component"
)

// MapStore is the naive baseline engine: one hash-map entry per entity
// holding optional typed component fields. Queries walk the whole map, so
// iteration order is whatever the runtime gives us. Entity ids come from
// a counter that is never reset, so a handle from a previous trial can
// never alias a new entity.
//
// Duplicate insert overwrites.
type MapStore struct {
	next uint64
	recs map[uint64]*mapRecord
}

type mapRecord struct {
	pos  *component.Position
	vel  *component.Velocity
	tf   *component.Transform
	data *component.Data
	tags [component.TagCount]bool
}

// NewMapStore creates an empty map-backed backend.
func NewMapStore() *MapStore {
	return &MapStore{recs: make(map[uint64]*mapRecord)}
}

func (b *MapStore) Name() string { return "mapstore" }

func (b *MapStore) DuplicateInsert() InsertSemantics { return InsertOverwrites }

func (b *MapStore) Reset() {
	b.recs = make(map[uint64]*mapRecord)
}

func (b *MapStore) Count() int { return len(b.recs) }

func (b *MapStore) SpawnPosVel(
	n int,
	init func(i int) (component.Position, component.Velocity),
) {
	for i := 0; i < n; i++ {
		pos, vel := init(i)
		rec := &mapRecord{pos: &pos, vel: &vel}
		b.recs[b.nextID()] = rec
	}
}

func (b *MapStore) SpawnTransforms(n int, m component.Mat4) {
	for i := 0; i < n; i++ {
		tf := component.Transform{M: m}
		b.recs[b.nextID()] = &mapRecord{tf: &tf}
	}
}

func (b *MapStore) SpawnTagData(
	slot component.TagSlot,
	d component.Data,
) EntityID {
	rec := &mapRecord{data: &d}
	rec.tags[b.slot(slot)] = true

	id := b.nextID()
	b.recs[id] = rec

	return EntityID(id)
}

func (b *MapStore) SpawnMarked(n int, slot component.TagSlot) []EntityID {
	s := b.slot(slot)
	out := make([]EntityID, n)

	for i := 0; i < n; i++ {
		rec := &mapRecord{}
		rec.tags[s] = true

		id := b.nextID()
		b.recs[id] = rec
		out[i] = EntityID(id)
	}

	return out
}

func (b *MapStore) InsertMarker(e EntityID, slot component.TagSlot) error {
	rec, err := b.record(e)
	if err != nil {
		return err
	}

	rec.tags[b.slot(slot)] = true

	return nil
}

func (b *MapStore) RemoveMarker(e EntityID, slot component.TagSlot) error {
	rec, err := b.record(e)
	if err != nil {
		return err
	}

	rec.tags[b.slot(slot)] = false

	return nil
}

func (b *MapStore) ComponentCount(e EntityID) (int, error) {
	rec, err := b.record(e)
	if err != nil {
		return 0, err
	}

	n := 0

	if rec.pos != nil {
		n++
	}
	if rec.vel != nil {
		n++
	}
	if rec.tf != nil {
		n++
	}
	if rec.data != nil {
		n++
	}

	for _, present := range rec.tags {
		if present {
			n++
		}
	}

	return n, nil
}

func (b *MapStore) MarkerCount(slot component.TagSlot) int {
	s := b.slot(slot)
	n := 0

	for _, rec := range b.recs {
		if rec.tags[s] {
			n++
		}
	}

	return n
}

func (b *MapStore) PosVel() iter.Seq2[*component.Position, *component.Velocity] {
	return func(yield func(*component.Position, *component.Velocity) bool) {
		for _, rec := range b.recs {
			if rec.pos == nil || rec.vel == nil {
				continue
			}

			if !yield(rec.pos, rec.vel) {
				return
			}
		}
	}
}

func (b *MapStore) Data() iter.Seq[*component.Data] {
	return func(yield func(*component.Data) bool) {
		for _, rec := range b.recs {
			if rec.data == nil {
				continue
			}

			if !yield(rec.data) {
				return
			}
		}
	}
}

func (b *MapStore) Transforms() iter.Seq[*component.Transform] {
	return func(yield func(*component.Transform) bool) {
		for _, rec := range b.recs {
			if rec.tf == nil {
				continue
			}

			if !yield(rec.tf) {
				return
			}
		}
	}
}

func (b *MapStore) nextID() uint64 {
	b.next++

	return b.next
}

func (b *MapStore) record(e EntityID) (*mapRecord, error) {
	rec, ok := b.recs[uint64(e)]
	if !ok {
		return nil, fmt.Errorf("%w: handle %d", ErrDeadEntity, e)
	}

	return rec, nil
}

func (b *MapStore) slot(slot component.TagSlot) int {
	if !slot.Valid() {
		panic(fmt.Sprintf("%v: %d", errBadTagSlot, slot))
	}

	return int(slot)
}
