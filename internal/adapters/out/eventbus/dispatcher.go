// Package eventbus provides an in-process dispatcher for loan order
// domain events. Handlers run synchronously after the transaction that
// produced the events has committed; a failing handler is logged and
// never propagates back to the caller.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"loans/internal/core/domain/model/loanorder"
)

// Handler processes one domain event.
type Handler func(ctx context.Context, event loanorder.Event)

// Dispatcher routes loan order events to subscribed handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[loanorder.EventType][]Handler
	all      []Handler
	logger   *slog.Logger
}

// NewDispatcher creates an event dispatcher logging through the given
// logger.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[loanorder.EventType][]Handler),
		logger:   logger.With("component", "eventbus"),
	}
}

// Subscribe registers a handler for one event type.
func (d *Dispatcher) Subscribe(eventType loanorder.EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type.
func (d *Dispatcher) SubscribeAll(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = append(d.all, handler)
}

// Publish delivers the events to their subscribers in order. Panics in
// handlers are recovered and logged so one bad subscriber cannot take
// the caller down.
func (d *Dispatcher) Publish(ctx context.Context, events []loanorder.Event) {
	for _, event := range events {
		d.mu.RLock()
		targets := make([]Handler, 0, len(d.all)+len(d.handlers[event.Type]))
		targets = append(targets, d.all...)
		targets = append(targets, d.handlers[event.Type]...)
		d.mu.RUnlock()

		d.logger.InfoContext(ctx, "publishing event",
			"type", event.Type.String(),
			"order_id", event.OrderID.String(),
			"reference", event.Reference,
		)

		for _, handler := range targets {
			d.deliver(ctx, event, handler)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event loanorder.Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "event handler panicked",
				"type", event.Type.String(),
				"order_id", event.OrderID.String(),
				"panic", r,
			)
		}
	}()
	handler(ctx, event)
}
