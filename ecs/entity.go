package ecs

// EntityId is a stable handle to a value stored in an Arena.
// Ids are allocated in increasing order and never reused by the arena that
// issued them, so comparing two ids compares their creation order.
// The zero EntityId never refers to a live entity.
type EntityId uint64

// Valid reports whether the id could refer to an entity.
func (e EntityId) Valid() bool {
	return e != 0
}
