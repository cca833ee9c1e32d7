package ecs_test

import (
	"testing"

	"github.com/plus3/bloodfarm/ecs"
)

type damageEvent struct {
	Target ecs.EntityId
	Amount int
}

type healEvent struct {
	Amount int
}

func TestEventBus(t *testing.T) {
	t.Run("handlers run in subscription order", func(t *testing.T) {
		bus := ecs.NewEventBus()
		var order []string

		ecs.Subscribe(bus, func(damageEvent) { order = append(order, "first") })
		ecs.Subscribe(bus, func(damageEvent) { order = append(order, "second") })

		ecs.Publish(bus, damageEvent{Target: 1, Amount: 5})

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("expected [first second], got %v", order)
		}
	})

	t.Run("events are routed by type", func(t *testing.T) {
		bus := ecs.NewEventBus()
		damage, heal := 0, 0

		ecs.Subscribe(bus, func(ev damageEvent) { damage += ev.Amount })
		ecs.Subscribe(bus, func(ev healEvent) { heal += ev.Amount })

		ecs.Publish(bus, damageEvent{Amount: 3})
		ecs.Publish(bus, damageEvent{Amount: 4})
		ecs.Publish(bus, healEvent{Amount: 10})

		if damage != 7 {
			t.Errorf("expected damage=7, got %d", damage)
		}
		if heal != 10 {
			t.Errorf("expected heal=10, got %d", heal)
		}
	})

	t.Run("publish without subscribers", func(t *testing.T) {
		bus := ecs.NewEventBus()
		if ecs.HasSubscribers[healEvent](bus) {
			t.Error("expected no subscribers")
		}
		ecs.Publish(bus, healEvent{Amount: 1})

		ecs.Subscribe(bus, func(healEvent) {})
		if !ecs.HasSubscribers[healEvent](bus) {
			t.Error("expected a subscriber")
		}
		if ecs.HasSubscribers[damageEvent](bus) {
			t.Error("expected no damage subscribers")
		}
	})
}
