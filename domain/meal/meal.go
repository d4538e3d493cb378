// Package meal holds the menu side of the shop: the Meal aggregate, its
// value objects and the events it raises.
package meal

import "mealshop/domain/shared"

// Meal is an aggregate root representing one orderable position on the
// menu. Removal is a soft state: a removed meal keeps its identity and
// name for historic orders but is invisible to the menu and to carts.
type Meal struct {
	shared.Entity[shared.MealID]

	name        MealName
	description MealDescription
	price       shared.Price
	removed     bool
}

// NewMeal creates a meal and queues MealAddedToMenu. Name uniqueness
// among non-removed meals is the application service's job; the aggregate
// cannot see its siblings.
func NewMeal(id shared.MealID, name MealName, description MealDescription, price shared.Price) *Meal {
	m := &Meal{
		Entity:      shared.NewEntity(id),
		name:        name,
		description: description,
		price:       price,
	}
	m.AddEvent(NewMealAddedToMenu(m))
	return m
}

// ReconstructionDTO carries the raw persisted state of a meal.
// Repository use only.
type ReconstructionDTO struct {
	ID          int64
	Name        string
	Description string
	PriceAmount int64
	Removed     bool
	Version     int64
}

// RebuildMeal restores a meal from storage, re-validating every value
// object so corrupt rows fail loudly instead of producing a broken
// aggregate.
func RebuildMeal(dto ReconstructionDTO) (*Meal, error) {
	id, err := shared.NewMealID(dto.ID)
	if err != nil {
		return nil, err
	}
	name, err := NewMealName(dto.Name)
	if err != nil {
		return nil, err
	}
	description, err := NewMealDescription(dto.Description)
	if err != nil {
		return nil, err
	}
	price, err := shared.NewPrice(dto.PriceAmount)
	if err != nil {
		return nil, err
	}

	return &Meal{
		Entity:      shared.RebuildEntity(id, shared.Version(dto.Version)),
		name:        name,
		description: description,
		price:       price,
		removed:     dto.Removed,
	}, nil
}

func (m *Meal) Name() MealName               { return m.name }
func (m *Meal) Description() MealDescription { return m.description }
func (m *Meal) Price() shared.Price          { return m.price }
func (m *Meal) IsRemoved() bool              { return m.removed }

// Remove takes the meal off the menu. Removing an already removed meal is
// a no-op: the state is already what the caller asked for.
func (m *Meal) Remove() {
	if m.removed {
		return
	}
	m.removed = true
	m.AddEvent(NewMealRemovedFromMenu(m))
}

// ChangePrice updates the menu price. Equal prices are a no-op; removed
// meals cannot be repriced.
func (m *Meal) ChangePrice(price shared.Price) error {
	if m.removed {
		return NewMealNotFoundError(m.ID())
	}
	if m.price.Equals(price) {
		return nil
	}
	old := m.price
	m.price = price
	m.AddEvent(NewMealPriceChanged(m, old))
	return nil
}
