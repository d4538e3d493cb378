package shared

import (
	"testing"
	"time"
)

type stubEvent struct {
	EventMeta
	name        string
	aggregateID string
}

func newStubEvent(name, aggregateID string) stubEvent {
	return stubEvent{EventMeta: NewEventMeta(), name: name, aggregateID: aggregateID}
}

func (e stubEvent) EventName() string       { return e.name }
func (e stubEvent) AggregateID() string     { return e.aggregateID }
func (e stubEvent) Payload() map[string]any { return map[string]any{} }

func TestNewEntityStartsAtVersionZero(t *testing.T) {
	id, err := NewMealID(1)
	if err != nil {
		t.Fatalf("NewMealID: %v", err)
	}

	entity := NewEntity(id)
	if entity.Version() != 0 {
		t.Errorf("fresh entity version = %d, want 0", entity.Version())
	}
	if !entity.IsNew() {
		t.Error("fresh entity should be new")
	}
	if entity.HasPendingEvents() {
		t.Error("fresh entity should have no pending events")
	}
}

// The version advances once per uncommitted batch, not once per event.
// Three events in one batch bump the version to 1; a second batch after a
// pop brings it to 2.
func TestVersionBumpsOncePerBatch(t *testing.T) {
	id, _ := NewMealID(42)
	entity := NewEntity(id)

	for i := 0; i < 3; i++ {
		entity.AddEvent(newStubEvent("meal.test", id.String()))
	}
	if entity.Version() != 1 {
		t.Fatalf("version after 3 events in one batch = %d, want 1", entity.Version())
	}

	events := entity.PopEvents()
	if len(events) != 3 {
		t.Fatalf("popped %d events, want 3", len(events))
	}
	if entity.HasPendingEvents() {
		t.Fatal("queue should be empty after pop")
	}

	entity.AddEvent(newStubEvent("meal.test", id.String()))
	entity.AddEvent(newStubEvent("meal.test", id.String()))
	if entity.Version() != 2 {
		t.Fatalf("version after second batch = %d, want 2", entity.Version())
	}
}

func TestPopEventsClearsQueue(t *testing.T) {
	id, _ := NewCartID(7)
	entity := NewEntity(id)
	entity.AddEvent(newStubEvent("cart.test", id.String()))

	first := entity.PopEvents()
	second := entity.PopEvents()
	if len(first) != 1 {
		t.Errorf("first pop returned %d events, want 1", len(first))
	}
	if len(second) != 0 {
		t.Errorf("second pop returned %d events, want 0", len(second))
	}
}

func TestRebuildEntityIsNotNew(t *testing.T) {
	id, _ := NewShopOrderID(9)
	entity := RebuildEntity(id, Version(5))
	if entity.IsNew() {
		t.Error("rebuilt entity should not be new")
	}
	if entity.Version() != 5 {
		t.Errorf("rebuilt version = %d, want 5", entity.Version())
	}
}

func TestVersionNextPrevious(t *testing.T) {
	v := Version(3)
	if v.Next() != 4 {
		t.Errorf("Next() = %d, want 4", v.Next())
	}
	if v.Previous() != 2 {
		t.Errorf("Previous() = %d, want 2", v.Previous())
	}
}

func TestEventMetaIsPopulated(t *testing.T) {
	event := newStubEvent("meal.test", "1")
	if event.EventID().IsZero() {
		t.Error("event id should be generated")
	}
	if event.OccurredOn().IsZero() || event.OccurredOn().After(time.Now().Add(time.Second)) {
		t.Errorf("occurred on looks wrong: %v", event.OccurredOn())
	}
	if err := ValidateEvent(event); err != nil {
		t.Errorf("ValidateEvent: %v", err)
	}
}
