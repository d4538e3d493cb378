package meal

import "mealshop/domain/shared"

const (
	MealAddedToMenuEvent     = "meal.added_to_menu"
	MealRemovedFromMenuEvent = "meal.removed_from_menu"
	MealPriceChangedEvent    = "meal.price_changed"
)

// MealAddedToMenu is raised when a new meal becomes orderable.
type MealAddedToMenu struct {
	shared.EventMeta
	MealID      shared.MealID
	Name        string
	Description string
	PriceAmount int64
}

func NewMealAddedToMenu(m *Meal) MealAddedToMenu {
	return MealAddedToMenu{
		EventMeta:   shared.NewEventMeta(),
		MealID:      m.ID(),
		Name:        m.Name().Value(),
		Description: m.Description().Value(),
		PriceAmount: m.Price().Amount(),
	}
}

func (e MealAddedToMenu) EventName() string   { return MealAddedToMenuEvent }
func (e MealAddedToMenu) AggregateID() string { return e.MealID.String() }

func (e MealAddedToMenu) Payload() map[string]any {
	return map[string]any{
		"meal_id":      e.MealID.Int64(),
		"name":         e.Name,
		"description":  e.Description,
		"price_amount": e.PriceAmount,
	}
}

// MealRemovedFromMenu is raised when a meal stops being orderable. The
// meal stays in storage so past orders keep resolving its name.
type MealRemovedFromMenu struct {
	shared.EventMeta
	MealID shared.MealID
	Name   string
}

func NewMealRemovedFromMenu(m *Meal) MealRemovedFromMenu {
	return MealRemovedFromMenu{
		EventMeta: shared.NewEventMeta(),
		MealID:    m.ID(),
		Name:      m.Name().Value(),
	}
}

func (e MealRemovedFromMenu) EventName() string   { return MealRemovedFromMenuEvent }
func (e MealRemovedFromMenu) AggregateID() string { return e.MealID.String() }

func (e MealRemovedFromMenu) Payload() map[string]any {
	return map[string]any{
		"meal_id": e.MealID.Int64(),
		"name":    e.Name,
	}
}

// MealPriceChanged is raised when the menu price of a meal changes. Orders
// already placed keep the price snapshot taken at checkout.
type MealPriceChanged struct {
	shared.EventMeta
	MealID    shared.MealID
	OldAmount int64
	NewAmount int64
}

func NewMealPriceChanged(m *Meal, old shared.Price) MealPriceChanged {
	return MealPriceChanged{
		EventMeta: shared.NewEventMeta(),
		MealID:    m.ID(),
		OldAmount: old.Amount(),
		NewAmount: m.Price().Amount(),
	}
}

func (e MealPriceChanged) EventName() string   { return MealPriceChangedEvent }
func (e MealPriceChanged) AggregateID() string { return e.MealID.String() }

func (e MealPriceChanged) Payload() map[string]any {
	return map[string]any{
		"meal_id":    e.MealID.Int64(),
		"old_amount": e.OldAmount,
		"new_amount": e.NewAmount,
	}
}
