package cart

import (
	"testing"

	"mealshop/domain/shared"
)

func mustCart(t *testing.T) *Cart {
	t.Helper()
	id, err := shared.NewCartID(1)
	if err != nil {
		t.Fatalf("NewCartID: %v", err)
	}
	return NewCart(id, shared.NewCustomerID())
}

func mealID(t *testing.T, v int64) shared.MealID {
	t.Helper()
	id, err := shared.NewMealID(v)
	if err != nil {
		t.Fatalf("NewMealID(%d): %v", v, err)
	}
	return id
}

func TestCartCreatedRaisedOnceOnFirstAdd(t *testing.T) {
	c := mustCart(t)
	pizza := mealID(t, 10)
	pasta := mealID(t, 11)

	if err := c.AddMeal(pizza); err != nil {
		t.Fatalf("AddMeal: %v", err)
	}
	if err := c.AddMeal(pizza); err != nil {
		t.Fatalf("AddMeal: %v", err)
	}
	if err := c.AddMeal(pasta); err != nil {
		t.Fatalf("AddMeal: %v", err)
	}

	events := c.PopEvents()
	var createdCount, addedCount int
	for _, event := range events {
		switch e := event.(type) {
		case CartCreated:
			createdCount++
			if e.CustomerID != c.CustomerID() {
				t.Errorf("event customer = %v, want %v", e.CustomerID, c.CustomerID())
			}
		case MealAddedToCart:
			addedCount++
		default:
			t.Errorf("unexpected event type %T", event)
		}
	}
	if createdCount != 1 {
		t.Errorf("CartCreated raised %d times, want once", createdCount)
	}
	if addedCount != 3 {
		t.Errorf("MealAddedToCart raised %d times, want 3", addedCount)
	}

	if c.CountOf(pizza).Value() != 2 {
		t.Errorf("pizza count = %d, want 2", c.CountOf(pizza).Value())
	}
	if c.CountOf(pasta).Value() != 1 {
		t.Errorf("pasta count = %d, want 1", c.CountOf(pasta).Value())
	}
}

func TestRemoveMealDecrementsAndDropsLine(t *testing.T) {
	c := mustCart(t)
	pizza := mealID(t, 10)

	_ = c.AddMeal(pizza)
	_ = c.AddMeal(pizza)
	c.PopEvents()

	if err := c.RemoveMeal(pizza); err != nil {
		t.Fatalf("RemoveMeal: %v", err)
	}
	if c.CountOf(pizza).Value() != 1 {
		t.Errorf("count after one remove = %d, want 1", c.CountOf(pizza).Value())
	}

	if err := c.RemoveMeal(pizza); err != nil {
		t.Fatalf("RemoveMeal: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after the line reached zero")
	}

	events := c.PopEvents()
	if len(events) != 2 {
		t.Fatalf("got %d events, want one MealRemovedFromCart per removal", len(events))
	}
	removed, ok := events[1].(MealRemovedFromCart)
	if !ok {
		t.Fatalf("event type = %T, want MealRemovedFromCart", events[1])
	}
	if removed.Count.Value() != 0 {
		t.Errorf("count in final removal event = %d, want 0", removed.Count.Value())
	}
}

func TestRemoveAbsentMealIsNoOp(t *testing.T) {
	c := mustCart(t)
	if err := c.RemoveMeal(mealID(t, 99)); err != nil {
		t.Errorf("removing absent meal returned %v, want nil", err)
	}
	if got := c.PopEvents(); len(got) != 0 {
		t.Errorf("no-op remove queued %d events", len(got))
	}
}

func TestMealsReturnsCopy(t *testing.T) {
	c := mustCart(t)
	pizza := mealID(t, 10)
	_ = c.AddMeal(pizza)

	snapshot := c.Meals()
	delete(snapshot, pizza)
	if c.IsEmpty() {
		t.Error("mutating the snapshot must not touch the cart")
	}
}

func TestRebuildCart(t *testing.T) {
	customerID := shared.NewCustomerID()
	c, err := RebuildCart(ReconstructionDTO{
		ID:         5,
		CustomerID: customerID.String(),
		Items: []ItemDTO{
			{MealID: 10, Count: 2},
			{MealID: 11, Count: 0},
		},
		Version: 2,
	})
	if err != nil {
		t.Fatalf("RebuildCart: %v", err)
	}
	if c.Version() != 2 || c.CustomerID() != customerID {
		t.Errorf("rebuilt cart = %+v", c)
	}
	if len(c.Meals()) != 1 {
		t.Errorf("zero-count line should be dropped, got %v", c.Meals())
	}

	if _, err := RebuildCart(ReconstructionDTO{ID: 5, CustomerID: "garbage"}); err == nil {
		t.Error("rebuild with bad customer id should fail")
	}
}
