package cart

import "mealshop/domain/shared"

const (
	CartCreatedEvent         = "cart.created"
	MealAddedToCartEvent     = "cart.meal_added"
	MealRemovedFromCartEvent = "cart.meal_removed"
)

// CartCreated is raised the first time a meal lands in an empty cart.
type CartCreated struct {
	shared.EventMeta
	CartID     shared.CartID
	CustomerID shared.CustomerID
}

func NewCartCreated(c *Cart) CartCreated {
	return CartCreated{
		EventMeta:  shared.NewEventMeta(),
		CartID:     c.ID(),
		CustomerID: c.CustomerID(),
	}
}

func (e CartCreated) EventName() string   { return CartCreatedEvent }
func (e CartCreated) AggregateID() string { return e.CartID.String() }

func (e CartCreated) Payload() map[string]any {
	return map[string]any{
		"cart_id":     e.CartID.Int64(),
		"customer_id": e.CustomerID.String(),
	}
}

// MealAddedToCart is raised on every successful AddMeal. Count is the line
// count after the addition.
type MealAddedToCart struct {
	shared.EventMeta
	CartID shared.CartID
	MealID shared.MealID
	Count  shared.Count
}

func NewMealAddedToCart(c *Cart, mealID shared.MealID) MealAddedToCart {
	return MealAddedToCart{
		EventMeta: shared.NewEventMeta(),
		CartID:    c.ID(),
		MealID:    mealID,
		Count:     c.CountOf(mealID),
	}
}

func (e MealAddedToCart) EventName() string   { return MealAddedToCartEvent }
func (e MealAddedToCart) AggregateID() string { return e.CartID.String() }

func (e MealAddedToCart) Payload() map[string]any {
	return map[string]any{
		"cart_id": e.CartID.Int64(),
		"meal_id": e.MealID.Int64(),
		"count":   e.Count.Value(),
	}
}

// MealRemovedFromCart is raised on every removal that actually changed the
// cart. Count is the line count after the removal, zero when the line is
// gone.
type MealRemovedFromCart struct {
	shared.EventMeta
	CartID shared.CartID
	MealID shared.MealID
	Count  shared.Count
}

func NewMealRemovedFromCart(c *Cart, mealID shared.MealID) MealRemovedFromCart {
	return MealRemovedFromCart{
		EventMeta: shared.NewEventMeta(),
		CartID:    c.ID(),
		MealID:    mealID,
		Count:     c.CountOf(mealID),
	}
}

func (e MealRemovedFromCart) EventName() string   { return MealRemovedFromCartEvent }
func (e MealRemovedFromCart) AggregateID() string { return e.CartID.String() }

func (e MealRemovedFromCart) Payload() map[string]any {
	return map[string]any{
		"cart_id": e.CartID.Int64(),
		"meal_id": e.MealID.Int64(),
		"count":   e.Count.Value(),
	}
}
