package event

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler is invoked for every published event of type T.
type Handler[T any] func(T)

// Bus is a small in-process pub/sub bus. Delivery is synchronous: Publish
// invokes every matching handler before returning, so a single qualifying
// state transition produces exactly one delivery per subscriber.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[reflect.Type][]subscriber

	metrics *busMetrics
	logger  *slog.Logger
}

type subscriber struct {
	id     uuid.UUID
	invoke func(any)
}

// Subscription identifies one registered handler.
type Subscription struct {
	bus       *Bus
	eventType reflect.Type
	id        uuid.UUID
	once      sync.Once
}

// NewBus creates a bus. registry may be nil to disable metrics; logger may
// be nil to use slog.Default.
func NewBus(registry *prometheus.Registry, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[reflect.Type][]subscriber),
		metrics:     newBusMetrics(registry),
		logger:      logger,
	}
}

// Subscribe registers a handler for events of type T. The returned
// Subscription can be used to unsubscribe.
func Subscribe[T any](bus *Bus, handler Handler[T]) *Subscription {
	eventType := reflect.TypeOf((*T)(nil)).Elem()
	sub := subscriber{
		id: uuid.New(),
		invoke: func(e any) {
			handler(e.(T))
		},
	}

	bus.mu.Lock()
	bus.subscribers[eventType] = append(bus.subscribers[eventType], sub)
	bus.mu.Unlock()

	return &Subscription{bus: bus, eventType: eventType, id: sub.id}
}

// Publish delivers e to every subscriber of its dynamic type. A panicking
// handler is recovered and logged; it never affects sibling handlers or
// the publisher.
func Publish[T any](bus *Bus, e T) {
	eventType := reflect.TypeOf((*T)(nil)).Elem()

	bus.mu.RLock()
	subs := make([]subscriber, len(bus.subscribers[eventType]))
	copy(subs, bus.subscribers[eventType])
	bus.mu.RUnlock()

	bus.metrics.IncrementPublished(eventType.Name())
	for _, sub := range subs {
		bus.deliver(sub, e, eventType.Name())
	}
}

func (bus *Bus) deliver(sub subscriber, e any, eventType string) {
	defer func() {
		if r := recover(); r != nil {
			bus.logger.Error("panic in event handler",
				"error", r,
				"event_type", eventType,
				"stack", string(debug.Stack()),
			)
		}
	}()

	sub.invoke(e)
	bus.metrics.IncrementDelivered(eventType)
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()

		subs := s.bus.subscribers[s.eventType]
		for i, sub := range subs {
			if sub.id == s.id {
				s.bus.subscribers[s.eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	})
}
