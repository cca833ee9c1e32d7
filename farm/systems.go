package farm

import (
	"github.com/plus3/bloodfarm/ecs"
)

// Frame is the update frame every farm system receives.
type Frame = ecs.UpdateFrame[*World]

// stepCount is the number of completed steps once the current one finishes,
// which is what Snapshot.Step reports after it.
func stepCount(frame *Frame) uint64 {
	return frame.Step + 1
}

// MovementSystem moves the player from the direction flags of the step.
type MovementSystem struct{}

func (MovementSystem) Execute(frame *Frame) {
	w := frame.World
	Move(w.Registry.Player(), w.Input, frame.DeltaTime)
}

// Move advances the player by speed*dt along each pressed direction.
// Opposite directions pressed together cancel exactly.
func Move(player *Player, input InputSnapshot, dt float64) {
	delta := player.Speed * float32(dt)

	var dx, dy float32
	if input.Up {
		dy += delta
	}
	if input.Down {
		dy -= delta
	}
	if input.Left {
		dx -= delta
	}
	if input.Right {
		dx += delta
	}

	player.Position = player.Position.Add(Vec2{X: dx, Y: dy})
}

// SpawnSystem buys a brain at the player's position when the spawn action was
// just activated and the balance covers the cost.
type SpawnSystem struct{}

func (SpawnSystem) Execute(frame *Frame) {
	w := frame.World
	if w.Input.Spawn != JustActivated {
		return
	}

	cost := w.Config.SpawnCost
	if !w.Economy.CanAfford(cost) {
		rejected := SpawnRejected{
			Cost:    cost,
			Balance: w.Economy.Balance(),
			Step:    stepCount(frame),
		}
		w.logger.Debug("spawn rejected", "cost", cost, "balance", rejected.Balance)
		frame.Commands.Defer(func() { ecs.Publish(w.Events, rejected) })
		return
	}

	if err := w.Economy.Debit(cost); err != nil {
		// CanAfford was checked above, so this only trips on a broken Economy.
		w.logger.Error("spawn debit failed", "error", err)
		return
	}

	position := w.Registry.PlayerPosition()
	id := w.Registry.Spawn(position, w.Config.BrainLifetime)

	spawned := BrainSpawned{
		Id:       id,
		Position: position,
		Cost:     cost,
		Balance:  w.Economy.Balance(),
		Step:     stepCount(frame),
	}
	w.logger.Debug("brain spawned", "id", id, "x", position.X, "y", position.Y, "balance", spawned.Balance)
	frame.Commands.Defer(func() { ecs.Publish(w.Events, spawned) })
}

// LifetimeSystem counts brains down and pays out the ones that expire, in
// creation order.
type LifetimeSystem struct{}

func (LifetimeSystem) Execute(frame *Frame) {
	w := frame.World
	payout := w.Config.SpawnPayout

	for _, id := range w.Registry.TickAll(frame.DeltaTime) {
		brain, _ := w.Registry.Brain(id)

		w.Economy.Credit(payout)
		if err := w.Registry.Remove(id); err != nil {
			w.logger.Warn("expired brain already removed", "id", id, "error", err)
			continue
		}

		expired := BrainExpired{
			Id:       id,
			Position: brain.Position,
			Payout:   payout,
			Balance:  w.Economy.Balance(),
			Step:     stepCount(frame),
		}
		w.logger.Debug("brain expired", "id", id, "balance", expired.Balance)
		frame.Commands.Defer(func() { ecs.Publish(w.Events, expired) })
	}
}
