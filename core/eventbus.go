package core

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agentworld/logging"
)

// EventHandler consumes one published event. The concrete event is passed as
// `any`; handlers type-assert to the event type they subscribed for.
type EventHandler func(ctx context.Context, event any) error

// subscription pairs a handler with its identity, the code pointer of the
// function value. Unsubscribe matches on identity, so the same function
// subscribed twice runs twice and must be unsubscribed twice.
type subscription struct {
	fn EventHandler
	id uintptr
}

// EventBus is a typed publish/subscribe dispatcher. Subscriptions are keyed
// by the event's exact runtime type; there is no supertype or interface
// matching. Events are transient values discarded after dispatch.
type EventBus struct {
	handlers map[reflect.Type][]subscription
	logger   logging.Logger
}

// NewEventBus constructs an EventBus. A nil logger defaults to NoOpLogger.
func NewEventBus(logger logging.Logger) *EventBus {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &EventBus{
		handlers: make(map[reflect.Type][]subscription),
		logger:   logger,
	}
}

// Subscribe registers handler for events of prototype's exact type. There is
// no duplicate guard: subscribing the same handler twice runs it twice per
// event.
func (b *EventBus) Subscribe(prototype any, handler EventHandler) {
	t := reflect.TypeOf(prototype)
	b.handlers[t] = append(b.handlers[t], subscription{
		fn: handler,
		id: reflect.ValueOf(handler).Pointer(),
	})
}

// Unsubscribe removes the first subscription of handler for prototype's
// type, matched by function identity. Unknown handlers are ignored.
func (b *EventBus) Unsubscribe(prototype any, handler EventHandler) {
	t := reflect.TypeOf(prototype)
	subs := b.handlers[t]
	id := reflect.ValueOf(handler).Pointer()
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[t] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[t]) == 0 {
		delete(b.handlers, t)
	}
}

// Publish dispatches event to every handler subscribed for its exact runtime
// type, concurrently, and waits for the full batch before returning. A
// failing or panicking handler is logged with the event type and never
// cancels sibling handlers or surfaces to the publisher. Zero subscribers is
// an immediate no-op.
func (b *EventBus) Publish(ctx context.Context, event any) {
	subs := b.handlers[reflect.TypeOf(event)]
	if len(subs) == 0 {
		return
	}

	// Copy so handlers that subscribe/unsubscribe mid-dispatch do not
	// affect this batch.
	batch := make([]subscription, len(subs))
	copy(batch, subs)

	eventType := reflect.TypeOf(event).String()
	g, ctx := errgroup.WithContext(ctx)
	for _, sub := range batch {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panicked",
						"event_type", eventType,
						"panic", fmt.Sprintf("%v", r),
						"stack", string(debug.Stack()),
					)
				}
			}()
			if err := sub.fn(ctx, event); err != nil {
				b.logger.Error("event handler failed",
					"event_type", eventType,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Clear drops all subscriptions. Used for teardown and reset.
func (b *EventBus) Clear() {
	b.handlers = make(map[reflect.Type][]subscription)
}
