// Package events carries domain notifications between bounded contexts
// without an external broker. The expense domain announces approvals
// here and the reminder domain reacts to them, so neither imports the
// other's service.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is the common shape of every domain notification.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

// BaseEvent supplies the Event interface for concrete event structs;
// embed it and fill in the identifying fields.
type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{}  { return e.Data }

// Handler reacts to a single event. A failing handler never affects the
// publishing domain on the async path; PublishSync surfaces the error.
type Handler func(ctx context.Context, event Event) error

// EventBus fans events out to the listeners registered for their type.
// Async dispatches are tracked so Drain can wait them out on shutdown.
type EventBus struct {
	mu        sync.RWMutex
	listeners map[string][]Handler
	inflight  sync.WaitGroup
	logger    *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		listeners: make(map[string][]Handler),
		logger:    logger,
	}
}

// Subscribe attaches a listener. Registration happens at startup, before
// any publishing, so listeners are never removed.
func (b *EventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
	b.logger.Info("event listener attached",
		"event_type", eventType,
		"listeners", len(b.listeners[eventType]))
}

func (b *EventBus) listenersFor(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.listeners[eventType]
}

// Publish dispatches the event to each listener in its own goroutine.
// Listener errors are logged, never returned; the publishing transaction
// has already committed by the time the event goes out.
func (b *EventBus) Publish(ctx context.Context, event Event) error {
	listeners := b.listenersFor(event.EventType())
	if len(listeners) == 0 {
		b.logger.Debug("event has no listeners", "event_type", event.EventType())
		return nil
	}

	b.logger.Info("dispatching event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"listeners", len(listeners))

	for _, listener := range listeners {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			if err := h(ctx, event); err != nil {
				b.logger.Error("event listener failed",
					"event_type", event.EventType(),
					"event_id", event.EventID(),
					"error", err)
			}
		}(listener)
	}

	return nil
}

// PublishSync runs the listeners inline and stops at the first failure.
func (b *EventBus) PublishSync(ctx context.Context, event Event) error {
	listeners := b.listenersFor(event.EventType())
	if len(listeners) == 0 {
		b.logger.Debug("event has no listeners", "event_type", event.EventType())
		return nil
	}

	for _, listener := range listeners {
		if err := listener(ctx, event); err != nil {
			b.logger.Error("event listener failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
			return fmt.Errorf("listener failed for event %s: %w", event.EventType(), err)
		}
	}

	return nil
}

// Drain blocks until every async dispatch has finished. Called during
// graceful shutdown so a disbursement reminder is not lost to a killed
// goroutine.
func (b *EventBus) Drain() {
	b.inflight.Wait()
}
