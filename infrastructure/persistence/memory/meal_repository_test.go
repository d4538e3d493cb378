package memory

import (
	"context"
	"errors"
	"testing"

	"mealshop/domain/meal"
	"mealshop/domain/shared"
)

func storeMeal(t *testing.T, r *MealRepository, name string) shared.MealID {
	t.Helper()
	ctx := context.Background()

	id, err := r.NextIdentity(ctx)
	if err != nil {
		t.Fatalf("NextIdentity: %v", err)
	}
	mealName, _ := meal.NewMealName(name)
	description, _ := meal.NewMealDescription(name + " description")
	price, _ := shared.NewPrice(1500)

	m := meal.NewMeal(id, mealName, description, price)
	if err := r.Save(ctx, m); err != nil {
		t.Fatalf("save meal: %v", err)
	}
	m.PopEvents()
	return id
}

func TestSaveAcceptsAggregateWithPendingEvents(t *testing.T) {
	r := NewMealRepository(NewIDGenerator())
	id := storeMeal(t, r, "pizza")
	ctx := context.Background()

	m, err := r.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	m.Remove()
	if err := r.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := r.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID after save: %v", err)
	}
	if !reloaded.IsRemoved() {
		t.Error("meal not marked removed after save")
	}
	if got, want := reloaded.Version().Int64(), m.Version().Int64(); got != want {
		t.Errorf("stored version = %d, want %d", got, want)
	}
}

func TestSaveRejectsAggregatePoppedBeforeSave(t *testing.T) {
	r := NewMealRepository(NewIDGenerator())
	id := storeMeal(t, r, "pizza")
	ctx := context.Background()

	m, err := r.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	m.Remove()
	// Popping drops the only evidence that the version bump is still
	// unpersisted, so the save reads as a concurrent modification.
	m.PopEvents()
	if err := r.Save(ctx, m); !errors.Is(err, shared.ErrConcurrentModification) {
		t.Errorf("error = %v, want ErrConcurrentModification", err)
	}
}

func TestSaveRejectsStaleAggregate(t *testing.T) {
	r := NewMealRepository(NewIDGenerator())
	id := storeMeal(t, r, "pizza")
	ctx := context.Background()

	stale, err := r.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	fresh, err := r.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	fresh.Remove()
	if err := r.Save(ctx, fresh); err != nil {
		t.Fatalf("save fresh copy: %v", err)
	}

	stale.Remove()
	if err := r.Save(ctx, stale); !errors.Is(err, shared.ErrConcurrentModification) {
		t.Errorf("error = %v, want ErrConcurrentModification", err)
	}
}

func TestFindByNameMissReturnsMealNotFound(t *testing.T) {
	r := NewMealRepository(NewIDGenerator())
	name, _ := meal.NewMealName("ghost")

	_, err := r.FindByName(context.Background(), name)
	if !errors.Is(err, meal.ErrMealNotFound) {
		t.Fatalf("error = %v, want ErrMealNotFound", err)
	}
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %T, want *shared.DomainError", err)
	}
	if domainErr.Field != "name" {
		t.Errorf("field = %q, want %q", domainErr.Field, "name")
	}
}
