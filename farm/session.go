package farm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/bloodfarm/ecs"
)

// Snapshot is a read-only copy of the state a presenter needs.
type Snapshot struct {
	Step    uint64       `json:"step"`
	Player  Vec2         `json:"player"`
	Balance float32      `json:"balance"`
	Brains  []BrainState `json:"brains"`
	Ledger  Ledger       `json:"ledger"`
}

// Session drives one play-through: it owns the world and runs the movement,
// spawn and lifetime systems, in that order, once per step.
// A Session is not safe for concurrent use.
type Session struct {
	id        uuid.UUID
	world     *World
	input     InputTracker
	scheduler *ecs.Scheduler[*World]
	ledger    *Ledger
}

// NewSession validates cfg and creates a session in its starting state.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world := NewWorld(cfg, opts...)

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(MovementSystem{})
	scheduler.Register(SpawnSystem{})
	scheduler.Register(LifetimeSystem{})

	ledger := &Ledger{}
	ledger.Attach(world.Events)

	return &Session{
		id:        uuid.New(),
		world:     world,
		scheduler: scheduler,
		ledger:    ledger,
	}, nil
}

// Step runs one simulation step of dt seconds with the given raw input.
// dt is used as given; callers must not pass negative or NaN values.
func (s *Session) Step(dt float64, raw RawInput) {
	s.world.Input = s.input.Next(raw)
	s.scheduler.Once(dt)
}

// InputSource supplies the raw input for the step with the given 0-based
// index.
type InputSource func(step uint64) RawInput

// Run steps the session once per interval until ctx is cancelled or after
// returns false. Every step advances the game by exactly interval, whatever
// the ticker jitter, so a run replays identically. after receives the
// snapshot taken at the end of each step and may be nil.
func (s *Session) Run(ctx context.Context, interval time.Duration, source InputSource, after func(Snapshot) bool) {
	dt := interval.Seconds()
	ecs.Tick(ctx, interval, func(float64) bool {
		s.Step(dt, source(s.scheduler.Steps()))
		if after == nil {
			return true
		}
		return after(s.Snapshot())
	})
}

// HeldInput returns the raw input to step with while the frontend has lost
// the keyboard. See InputTracker.Held.
func (s *Session) HeldInput() RawInput {
	return s.input.Held()
}

// Snapshot copies the presentable state at the end of the last step.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Step:    s.scheduler.Steps(),
		Player:  s.world.Registry.PlayerPosition(),
		Balance: s.world.Economy.Balance(),
		Brains:  s.world.Registry.Brains(),
		Ledger:  *s.ledger,
	}
}

// ID identifies the session, e.g. for spectators.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// World returns the session's world.
func (s *Session) World() *World {
	return s.world
}

// Events returns the bus the session publishes BrainSpawned, BrainExpired
// and SpawnRejected on. Events are delivered after the step that caused them.
func (s *Session) Events() *ecs.EventBus {
	return s.world.Events
}

// Ledger returns the running economy totals.
func (s *Session) Ledger() Ledger {
	return *s.ledger
}

// Stats returns per-system timing statistics.
func (s *Session) Stats() *ecs.SchedulerStats {
	return s.scheduler.Stats()
}
