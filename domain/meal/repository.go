package meal

import (
	"context"

	"mealshop/domain/shared"
)

// MealRepository is the persistence port of the meal aggregate.
// FindByName and FindAll see only non-removed meals, so a name freed by a
// removal can be taken by a new meal.
type MealRepository interface {
	NextIdentity(ctx context.Context) (shared.MealID, error)
	Save(ctx context.Context, m *Meal) error
	FindByID(ctx context.Context, id shared.MealID) (*Meal, error)
	FindByName(ctx context.Context, name MealName) (*Meal, error)
	FindAll(ctx context.Context) ([]*Meal, error)
}
