package farm

import "github.com/plus3/bloodfarm/ecs"

// Every event's Step equals Snapshot.Step taken right after the step that
// produced it: the first step of a session is step 1.

// BrainSpawned is published after a step in which a brain was bought.
type BrainSpawned struct {
	Id       ecs.EntityId
	Position Vec2
	Cost     float32
	// Balance is the balance right after the debit.
	Balance float32
	Step    uint64
}

// BrainExpired is published after a step in which a brain was paid out and
// removed.
type BrainExpired struct {
	Id       ecs.EntityId
	Position Vec2
	Payout   float32
	// Balance is the balance right after the credit.
	Balance float32
	Step    uint64
}

// SpawnRejected is published when a spawn was requested without enough
// funds.
type SpawnRejected struct {
	Cost    float32
	Balance float32
	Step    uint64
}

// Ledger keeps running totals of a session's economy.
type Ledger struct {
	Spawned  int     `json:"spawned"`
	Expired  int     `json:"expired"`
	Rejected int     `json:"rejected"`
	Spent    float32 `json:"spent"`
	Earned   float32 `json:"earned"`
}

// Net returns the currency gained over the session.
func (l Ledger) Net() float32 {
	return l.Earned - l.Spent
}

// Attach subscribes the ledger to the events on bus.
func (l *Ledger) Attach(bus *ecs.EventBus) {
	ecs.Subscribe(bus, func(ev BrainSpawned) {
		l.Spawned++
		l.Spent += ev.Cost
	})
	ecs.Subscribe(bus, func(ev BrainExpired) {
		l.Expired++
		l.Earned += ev.Payout
	})
	ecs.Subscribe(bus, func(SpawnRejected) {
		l.Rejected++
	})
}
