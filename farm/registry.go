package farm

import (
	"github.com/plus3/bloodfarm/ecs"
)

// ErrEntityNotFound is returned when removing a brain that is not live.
var ErrEntityNotFound = ecs.ErrEntityNotFound

// Player is the single player-controlled entity of a session.
type Player struct {
	Position Vec2
	Speed    float32
}

// Brain is a spawned entity. Its position is fixed at creation and its
// remaining lifetime counts down until the lifetime system pays it out.
type Brain struct {
	Position  Vec2
	Lifetime  float64
	Remaining float64

	expired bool
}

// Expired reports whether the brain has already been reported by TickAll.
func (b Brain) Expired() bool {
	return b.expired
}

// BrainState is a read-only copy of a live brain.
type BrainState struct {
	Id        ecs.EntityId `json:"id"`
	Position  Vec2         `json:"position"`
	Lifetime  float64      `json:"lifetime"`
	Remaining float64      `json:"remaining"`
}

// Registry owns the player and the set of live brains.
type Registry struct {
	player Player
	brains *ecs.Arena[Brain]
}

// NewRegistry creates a registry holding the given player and no brains.
func NewRegistry(player Player) *Registry {
	return &Registry{
		player: player,
		brains: ecs.NewArena[Brain](256),
	}
}

// Player returns the player entity for in-place updates.
func (r *Registry) Player() *Player {
	return &r.player
}

// PlayerPosition returns the player's current position.
func (r *Registry) PlayerPosition() Vec2 {
	return r.player.Position
}

// SetPlayerPosition moves the player to position.
func (r *Registry) SetPlayerPosition(position Vec2) {
	r.player.Position = position
}

// Spawn inserts a brain at position with the given lifetime in seconds and
// returns its id.
func (r *Registry) Spawn(position Vec2, lifetime float64) ecs.EntityId {
	return r.brains.Insert(Brain{
		Position:  position,
		Lifetime:  lifetime,
		Remaining: lifetime,
	})
}

// TickAll subtracts dt from every live brain and returns, in creation order,
// the ids whose remaining lifetime reached zero or below during this call.
// Expired brains stay in the registry until removed, and are reported once.
func (r *Registry) TickAll(dt float64) []ecs.EntityId {
	var expired []ecs.EntityId
	for id, brain := range r.brains.All() {
		brain.Remaining -= dt
		if !brain.expired && brain.Remaining <= 0 {
			brain.expired = true
			expired = append(expired, id)
		}
	}
	return expired
}

// Remove deletes the brain with the given id. A stale id yields
// ErrEntityNotFound and leaves the registry untouched.
func (r *Registry) Remove(id ecs.EntityId) error {
	return r.brains.Remove(id)
}

// Brain returns a copy of the brain with the given id.
func (r *Registry) Brain(id ecs.EntityId) (Brain, bool) {
	brain := r.brains.Get(id)
	if brain == nil {
		return Brain{}, false
	}
	return *brain, true
}

// Len returns the number of live brains.
func (r *Registry) Len() int {
	return r.brains.Len()
}

// Brains returns copies of the live brains in creation order.
func (r *Registry) Brains() []BrainState {
	states := make([]BrainState, 0, r.brains.Len())
	for id, brain := range r.brains.All() {
		states = append(states, BrainState{
			Id:        id,
			Position:  brain.Position,
			Lifetime:  brain.Lifetime,
			Remaining: brain.Remaining,
		})
	}
	return states
}
