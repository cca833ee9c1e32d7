package ecs

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// ErrEntityNotFound is returned when an id does not refer to a live entity.
var ErrEntityNotFound = errors.New("entity not found")

const arenaBlockSize = 64

// Arena stores values of type T in fixed-size blocks addressed by EntityId.
// Removing an entity only marks its slot free, so the slots of the remaining
// entities never move. Freed slots are handed out again by later inserts.
type Arena[T any] struct {
	blocks    [][arenaBlockSize]T
	freeSlots []int
	nextSlot  int
	lastId    EntityId
	live      int
	slots     *intmap.Map[EntityId, int]

	// order holds ids in creation order, including removed ids until the
	// next compaction. It is only compacted while no iteration is running.
	order     []EntityId
	iterating int
}

// NewArena creates an arena with room for capacity entries in its id index.
func NewArena[T any](capacity int) *Arena[T] {
	if capacity < arenaBlockSize {
		capacity = arenaBlockSize
	}
	return &Arena[T]{
		slots: intmap.New[EntityId, int](capacity),
	}
}

// Insert stores item and returns its freshly allocated id.
func (a *Arena[T]) Insert(item T) EntityId {
	a.lastId++
	id := a.lastId

	var slot int
	if n := len(a.freeSlots); n > 0 {
		slot = a.freeSlots[n-1]
		a.freeSlots = a.freeSlots[:n-1]
	} else {
		slot = a.nextSlot
		a.nextSlot++
		if slot/arenaBlockSize >= len(a.blocks) {
			a.blocks = append(a.blocks, [arenaBlockSize]T{})
		}
	}

	blockIdx, slotIdx := slot/arenaBlockSize, slot%arenaBlockSize
	a.blocks[blockIdx][slotIdx] = item
	a.slots.Put(id, slot)
	a.order = append(a.order, id)
	a.live++

	return id
}

// Get returns a pointer to the value stored for id, or nil if id is not live.
// The pointer stays valid until the entity is removed.
func (a *Arena[T]) Get(id EntityId) *T {
	slot, ok := a.slots.Get(id)
	if !ok {
		return nil
	}
	return &a.blocks[slot/arenaBlockSize][slot%arenaBlockSize]
}

// Has reports whether id refers to a live entity.
func (a *Arena[T]) Has(id EntityId) bool {
	_, ok := a.slots.Get(id)
	return ok
}

// Remove deletes the entity and frees its slot.
// Removing an id that is not live returns ErrEntityNotFound and changes nothing.
func (a *Arena[T]) Remove(id EntityId) error {
	slot, ok := a.slots.Get(id)
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrEntityNotFound)
	}

	blockIdx, slotIdx := slot/arenaBlockSize, slot%arenaBlockSize
	var zero T
	a.blocks[blockIdx][slotIdx] = zero
	a.freeSlots = append(a.freeSlots, slot)
	a.slots.Del(id)
	a.live--

	return nil
}

// Len returns the number of live entities.
func (a *Arena[T]) Len() int {
	return a.live
}

// Ids returns the live ids in creation order.
func (a *Arena[T]) Ids() []EntityId {
	a.compact()
	ids := make([]EntityId, 0, a.live)
	for _, id := range a.order {
		if a.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// All iterates over live entities in creation order.
// Entities removed during iteration are skipped once reached; entities
// inserted during iteration are not visited.
func (a *Arena[T]) All() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		a.compact()
		a.iterating++
		defer func() { a.iterating-- }()

		for _, id := range a.order {
			item := a.Get(id)
			if item == nil {
				continue
			}
			if !yield(id, item) {
				return
			}
		}
	}
}

// compact drops removed ids from the order list.
func (a *Arena[T]) compact() {
	if a.iterating > 0 || len(a.order) == a.live {
		return
	}
	a.order = slices.DeleteFunc(a.order, func(id EntityId) bool {
		return !a.Has(id)
	})
}

// Clear removes every entity. Ids issued before Clear are never reissued.
func (a *Arena[T]) Clear() {
	a.blocks = nil
	a.order = nil
	a.freeSlots = nil
	a.nextSlot = 0
	a.live = 0
	a.slots.Clear()
}
