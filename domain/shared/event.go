package shared

import (
	"fmt"
	"time"
)

// DomainEvent is a fact raised by an aggregate mutation. Events stay queued
// on the aggregate until the unit of work pops them at persistence time.
// The variant set is closed: one concrete type per aggregate mutation, each
// exposing its own flat payload for the outbox.
type DomainEvent interface {
	EventID() EventID
	EventName() string
	OccurredOn() time.Time
	AggregateID() string

	// Payload returns the event-specific fields for serialization.
	Payload() map[string]any
}

// EventMeta carries the identity and UTC timestamp every domain event
// shares. Concrete event types embed it.
type EventMeta struct {
	id         EventID
	occurredOn time.Time
}

func NewEventMeta() EventMeta {
	return EventMeta{id: NewEventID(), occurredOn: time.Now().UTC()}
}

func (m EventMeta) EventID() EventID      { return m.id }
func (m EventMeta) OccurredOn() time.Time { return m.occurredOn }

// ValidateEvent rejects structurally broken events before they reach the
// outbox or the in-process bus.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventID().IsZero() {
		return fmt.Errorf("event id cannot be empty")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.AggregateID() == "" {
		return fmt.Errorf("aggregate id cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
