package shared

import (
	"context"
	"fmt"
	"sync"
)

// EventHandler reacts to a published domain event. Handlers implement the
// cross-aggregate rules that run after a unit of work commits, e.g. removing
// the consumed cart once a shop order is created.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	Name() string
}

// DomainEventPublisher is the port the persistence layer forwards popped
// events through. Publishing is best-effort: a failed handler does not undo
// the committed write.
type DomainEventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
	Subscribe(eventName string, handler EventHandler) error
	Unsubscribe(eventName string, handler EventHandler) error
}

// EventBus is the in-process implementation of DomainEventPublisher.
// Handlers are dispatched synchronously in subscription order.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]EventHandler)}
}

func (bus *EventBus) Publish(ctx context.Context, events ...DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := ValidateEvent(event); err != nil {
			errs = append(errs, err)
			continue
		}

		bus.mu.RLock()
		handlers := append([]EventHandler(nil), bus.handlers[event.EventName()]...)
		bus.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				errs = append(errs, fmt.Errorf("handler %s on %s: %w", handler.Name(), event.EventName(), err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d event handlers failed: %v", len(errs), errs)
	}
	return nil
}

func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}

	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}

func (bus *EventBus) Unsubscribe(eventName string, handler EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	handlers := bus.handlers[eventName]
	for i, h := range handlers {
		if h.Name() == handler.Name() {
			bus.handlers[eventName] = append(handlers[:i], handlers[i+1:]...)
			return nil
		}
	}
	return nil
}

// FuncHandler adapts a function to the EventHandler interface.
type FuncHandler struct {
	name string
	fn   func(context.Context, DomainEvent) error
}

func NewFuncHandler(name string, fn func(context.Context, DomainEvent) error) *FuncHandler {
	return &FuncHandler{name: name, fn: fn}
}

func (h *FuncHandler) Handle(ctx context.Context, event DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *FuncHandler) Name() string { return h.name }

var _ DomainEventPublisher = (*EventBus)(nil)
