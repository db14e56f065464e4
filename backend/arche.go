package backend

import (
	"fmt"
	"iter"

	"github.com/mlange-42/arche/ecs"

	"github.com/ecsmark/ecsmark/component"
)

// Arche adapts the arche archetype/columnar engine. All entities sharing
// an exact component set live in one table, so fragmented iteration
// touches one table per tag family and structural edits migrate entities
// between tables.
//
// Duplicate insert overwrites: the adapter writes through the component
// pointer when the tag is already present.
type Arche struct {
	world   ecs.World
	posID   ecs.ID
	velID   ecs.ID
	tfID    ecs.ID
	dataID  ecs.ID
	tagIDs  [component.TagCount]ecs.ID
	handles []ecs.Entity
	epoch   uint32
}

// NewArche creates an arche world and registers the full component schema
// on it. Registration is per instance; two Arche backends never share
// state.
func NewArche() *Arche {
	b := &Arche{
		world: ecs.NewWorld(ecs.NewConfig().WithCapacityIncrement(1024)),
	}

	b.posID = ecs.ComponentID[component.Position](&b.world)
	b.velID = ecs.ComponentID[component.Velocity](&b.world)
	b.tfID = ecs.ComponentID[component.Transform](&b.world)
	b.dataID = ecs.ComponentID[component.Data](&b.world)
	b.tagIDs = archeTagIDs(&b.world)

	return b
}

func (b *Arche) Name() string { return "arche" }

func (b *Arche) DuplicateInsert() InsertSemantics { return InsertOverwrites }

func (b *Arche) Reset() {
	b.world.Reset()
	b.handles = b.handles[:0]
	b.epoch++
}

func (b *Arche) Count() int {
	n := 0

	query := b.world.Query(ecs.All())
	for query.Next() {
		n++
	}

	return n
}

func (b *Arche) SpawnPosVel(
	n int,
	init func(i int) (component.Position, component.Velocity),
) {
	for i := 0; i < n; i++ {
		e := b.world.NewEntity(b.posID, b.velID)
		pos, vel := init(i)
		*(*component.Position)(b.world.Get(e, b.posID)) = pos
		*(*component.Velocity)(b.world.Get(e, b.velID)) = vel
	}
}

func (b *Arche) SpawnTransforms(n int, m component.Mat4) {
	for i := 0; i < n; i++ {
		e := b.world.NewEntity(b.tfID)
		*(*component.Transform)(b.world.Get(e, b.tfID)) = component.Transform{M: m}
	}
}

func (b *Arche) SpawnTagData(
	slot component.TagSlot,
	d component.Data,
) EntityID {
	e := b.world.NewEntity(b.tagID(slot), b.dataID)
	*(*component.Data)(b.world.Get(e, b.dataID)) = d

	return b.track(e)
}

func (b *Arche) SpawnMarked(n int, slot component.TagSlot) []EntityID {
	id := b.tagID(slot)
	out := make([]EntityID, n)

	for i := 0; i < n; i++ {
		out[i] = b.track(b.world.NewEntity(id))
	}

	return out
}

func (b *Arche) InsertMarker(e EntityID, slot component.TagSlot) error {
	ent, err := b.handle(e)
	if err != nil {
		return err
	}

	id := b.tagID(slot)

	mask := b.world.Mask(ent)
	if mask.Get(id) {
		// Tag payloads are zero-valued, so overwriting is a no-op write.
		*(*float32)(b.world.Get(ent, id)) = 0

		return nil
	}

	b.world.Add(ent, id)

	return nil
}

func (b *Arche) RemoveMarker(e EntityID, slot component.TagSlot) error {
	ent, err := b.handle(e)
	if err != nil {
		return err
	}

	id := b.tagID(slot)

	mask := b.world.Mask(ent)
	if !mask.Get(id) {
		return nil
	}

	b.world.Remove(ent, id)

	return nil
}

func (b *Arche) ComponentCount(e EntityID) (int, error) {
	ent, err := b.handle(e)
	if err != nil {
		return 0, err
	}

	mask := b.world.Mask(ent)

	return mask.TotalBitsSet(), nil
}

func (b *Arche) MarkerCount(slot component.TagSlot) int {
	n := 0

	query := b.world.Query(ecs.All(b.tagID(slot)))
	for query.Next() {
		n++
	}

	return n
}

func (b *Arche) PosVel() iter.Seq2[*component.Position, *component.Velocity] {
	return func(yield func(*component.Position, *component.Velocity) bool) {
		query := b.world.Query(ecs.All(b.posID, b.velID))
		for query.Next() {
			pos := (*component.Position)(query.Get(b.posID))
			vel := (*component.Velocity)(query.Get(b.velID))

			if !yield(pos, vel) {
				query.Close()

				return
			}
		}
	}
}

func (b *Arche) Data() iter.Seq[*component.Data] {
	return func(yield func(*component.Data) bool) {
		query := b.world.Query(ecs.All(b.dataID))
		for query.Next() {
			if !yield((*component.Data)(query.Get(b.dataID))) {
				query.Close()

				return
			}
		}
	}
}

func (b *Arche) Transforms() iter.Seq[*component.Transform] {
	return func(yield func(*component.Transform) bool) {
		query := b.world.Query(ecs.All(b.tfID))
		for query.Next() {
			if !yield((*component.Transform)(query.Get(b.tfID))) {
				query.Close()

				return
			}
		}
	}
}

// track records an arche entity and returns its handle. Handles index the
// per-trial slice and carry the trial epoch, so Reset invalidates all of
// them at once even though the slice gets repopulated.
func (b *Arche) track(e ecs.Entity) EntityID {
	b.handles = append(b.handles, e)

	return EntityID(uint64(b.epoch)<<32 | uint64(len(b.handles)-1))
}

func (b *Arche) handle(e EntityID) (ecs.Entity, error) {
	idx := uint32(e)
	epoch := uint32(e >> 32)

	if epoch != b.epoch || int(idx) >= len(b.handles) {
		return ecs.Entity{}, fmt.Errorf("%w: handle %d", ErrDeadEntity, e)
	}

	ent := b.handles[idx]
	if !b.world.Alive(ent) {
		return ecs.Entity{}, fmt.Errorf("%w: handle %d", ErrDeadEntity, e)
	}

	return ent, nil
}

func (b *Arche) tagID(slot component.TagSlot) ecs.ID {
	if !slot.Valid() {
		panic(fmt.Sprintf("%v: %d", errBadTagSlot, slot))
	}

	return b.tagIDs[slot]
}

// archeTagIDs registers the 26 tag types on the world. The enumeration is
// explicit so each tag stays a distinct static type and therefore a
// distinct archetype column.
func archeTagIDs(w *ecs.World) [component.TagCount]ecs.ID {
	return [component.TagCount]ecs.ID{
		ecs.ComponentID[component.TagA](w),
		ecs.ComponentID[component.TagB](w),
		ecs.ComponentID[component.TagC](w),
		ecs.ComponentID[component.TagD](w),
		ecs.ComponentID[component.TagE](w),
		ecs.ComponentID[component.TagF](w),
		ecs.ComponentID[component.TagG](w),
		ecs.ComponentID[component.TagH](w),
		ecs.ComponentID[component.TagI](w),
		ecs.ComponentID[component.TagJ](w),
		ecs.ComponentID[component.TagK](w),
		ecs.ComponentID[component.TagL](w),
		ecs.ComponentID[component.TagM](w),
		ecs.ComponentID[component.TagN](w),
		ecs.ComponentID[component.TagO](w),
		ecs.ComponentID[component.TagP](w),
		ecs.ComponentID[component.TagQ](w),
		ecs.ComponentID[component.TagR](w),
		ecs.ComponentID[component.TagS](w),
		ecs.ComponentID[component.TagT](w),
		ecs.ComponentID[component.TagU](w),
		ecs.ComponentID[component.TagV](w),
		ecs.ComponentID[component.TagW](w),
		ecs.ComponentID[component.TagX](w),
		ecs.ComponentID[component.TagY](w),
		ecs.ComponentID[component.TagZ](w),
	}
}
