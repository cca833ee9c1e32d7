package ecs

import "reflect"

// EventBus delivers typed events to subscribers synchronously.
// Handlers for an event type are called in the order they subscribed.
// An EventBus is not safe for concurrent use.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Subscribe registers handler for events of type T.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeFor[T]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish calls every handler subscribed to T with event.
func Publish[T any](bus *EventBus, event T) {
	for _, h := range bus.handlers[reflect.TypeFor[T]()] {
		h.(func(T))(event)
	}
}

// HasSubscribers reports whether any handler listens for T.
func HasSubscribers[T any](bus *EventBus) bool {
	return len(bus.handlers[reflect.TypeFor[T]()]) > 0
}
