package farm

import (
	"log/slog"

	"github.com/plus3/bloodfarm/ecs"
)

// World is the state shared by the systems of a session. It is owned by the
// session's scheduler and only touched from the goroutine driving the steps.
type World struct {
	Config   Config
	Economy  *Economy
	Registry *Registry
	// Input is replaced at the start of every step.
	Input  InputSnapshot
	Events *ecs.EventBus

	logger *slog.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used by the systems. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithEventBus makes the world publish to an existing bus.
func WithEventBus(bus *ecs.EventBus) Option {
	return func(w *World) {
		if bus != nil {
			w.Events = bus
		}
	}
}

// NewWorld creates a world in its starting state. cfg is not validated.
func NewWorld(cfg Config, opts ...Option) *World {
	w := &World{
		Config:  cfg,
		Economy: NewEconomy(cfg.StartingBalance),
		Registry: NewRegistry(Player{
			Position: cfg.PlayerStart,
			Speed:    cfg.PlayerSpeed,
		}),
		Events: ecs.NewEventBus(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}
	return w
}
