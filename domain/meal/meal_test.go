package meal

import (
	"errors"
	"testing"

	"mealshop/domain/shared"
)

func mustMeal(t *testing.T) *Meal {
	t.Helper()
	id, err := shared.NewMealID(1)
	if err != nil {
		t.Fatalf("NewMealID: %v", err)
	}
	name, err := NewMealName("Margherita")
	if err != nil {
		t.Fatalf("NewMealName: %v", err)
	}
	description, err := NewMealDescription("Tomato, mozzarella, basil")
	if err != nil {
		t.Fatalf("NewMealDescription: %v", err)
	}
	price, err := shared.NewPrice(1250)
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	return NewMeal(id, name, description, price)
}

func TestNewMealRaisesAddedEvent(t *testing.T) {
	m := mustMeal(t)

	events := m.PopEvents()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	added, ok := events[0].(MealAddedToMenu)
	if !ok {
		t.Fatalf("event type = %T, want MealAddedToMenu", events[0])
	}
	if added.EventName() != MealAddedToMenuEvent {
		t.Errorf("event name = %q", added.EventName())
	}
	if added.Name != "Margherita" || added.PriceAmount != 1250 {
		t.Errorf("event payload = %+v", added)
	}
	if m.Version() != 1 {
		t.Errorf("version = %d, want 1", m.Version())
	}
}

func TestMealNameValidation(t *testing.T) {
	for _, value := range []string{"", "   ", "\t\n"} {
		if _, err := NewMealName(value); !errors.Is(err, ErrEmptyName) {
			t.Errorf("NewMealName(%q) error = %v, want ErrEmptyName", value, err)
		}
	}
	if _, err := NewMealDescription("  "); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("blank description error = %v, want ErrEmptyDescription", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	m := mustMeal(t)
	m.PopEvents()

	m.Remove()
	if !m.IsRemoved() {
		t.Fatal("meal should be removed")
	}
	events := m.PopEvents()
	if len(events) != 1 {
		t.Fatalf("got %d events after first remove, want 1", len(events))
	}
	if events[0].EventName() != MealRemovedFromMenuEvent {
		t.Errorf("event name = %q", events[0].EventName())
	}

	m.Remove()
	if got := m.PopEvents(); len(got) != 0 {
		t.Errorf("second remove queued %d events, want 0", len(got))
	}
}

func TestChangePrice(t *testing.T) {
	m := mustMeal(t)
	m.PopEvents()

	newPrice, _ := shared.NewPrice(1500)
	if err := m.ChangePrice(newPrice); err != nil {
		t.Fatalf("ChangePrice: %v", err)
	}
	if m.Price().Amount() != 1500 {
		t.Errorf("price = %d, want 1500", m.Price().Amount())
	}
	events := m.PopEvents()
	if len(events) != 1 || events[0].EventName() != MealPriceChangedEvent {
		t.Fatalf("events after reprice = %v", events)
	}
	changed := events[0].(MealPriceChanged)
	if changed.OldAmount != 1250 || changed.NewAmount != 1500 {
		t.Errorf("price change payload = %+v", changed)
	}

	// Same price again is a no-op.
	if err := m.ChangePrice(newPrice); err != nil {
		t.Fatalf("ChangePrice same value: %v", err)
	}
	if got := m.PopEvents(); len(got) != 0 {
		t.Errorf("no-op reprice queued %d events", len(got))
	}

	m.Remove()
	m.PopEvents()
	other, _ := shared.NewPrice(999)
	if err := m.ChangePrice(other); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("reprice removed meal error = %v, want ErrMealNotFound", err)
	}
}

func TestRebuildMeal(t *testing.T) {
	m, err := RebuildMeal(ReconstructionDTO{
		ID:          7,
		Name:        "Carbonara",
		Description: "Guanciale and pecorino",
		PriceAmount: 1399,
		Removed:     true,
		Version:     3,
	})
	if err != nil {
		t.Fatalf("RebuildMeal: %v", err)
	}
	if m.ID().Int64() != 7 || m.Version() != 3 || !m.IsRemoved() {
		t.Errorf("rebuilt meal = %+v", m)
	}
	if m.IsNew() {
		t.Error("rebuilt meal should not be new")
	}
	if m.HasPendingEvents() {
		t.Error("rebuilt meal should have no pending events")
	}

	if _, err := RebuildMeal(ReconstructionDTO{ID: 7, Name: "", Description: "x", PriceAmount: 100}); err == nil {
		t.Error("rebuild with empty name should fail")
	}
	if _, err := RebuildMeal(ReconstructionDTO{ID: 0, Name: "x", Description: "x", PriceAmount: 100}); !errors.Is(err, shared.ErrIDGeneration) {
		t.Errorf("rebuild with zero id error = %v, want ErrIDGeneration", err)
	}
}
