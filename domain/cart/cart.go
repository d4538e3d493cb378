// Package cart holds the customer's pre-order state: which meals and how
// many of each the customer intends to buy.
package cart

import (
	"time"

	"mealshop/domain/shared"
)

// Cart is an aggregate root keyed by cart id and owned by exactly one
// customer. It stores only meal references and counts; prices are looked
// up at checkout so the cart never holds stale amounts.
type Cart struct {
	shared.Entity[shared.CartID]

	customerID shared.CustomerID
	createdAt  time.Time
	meals      map[shared.MealID]shared.Count
}

// NewCart creates an empty cart for a customer. The CartCreated event is
// raised by the first AddMeal, not here: an empty cart that nothing was
// ever put into is invisible to the rest of the system.
func NewCart(id shared.CartID, customerID shared.CustomerID) *Cart {
	return &Cart{
		Entity:     shared.NewEntity(id),
		customerID: customerID,
		createdAt:  time.Now().UTC(),
		meals:      make(map[shared.MealID]shared.Count),
	}
}

// ItemDTO carries one persisted cart line. Repository use only.
type ItemDTO struct {
	MealID int64
	Count  int64
}

// ReconstructionDTO carries the raw persisted state of a cart.
// Repository use only.
type ReconstructionDTO struct {
	ID         int64
	CustomerID string
	Items      []ItemDTO
	CreatedAt  time.Time
	Version    int64
}

// RebuildCart restores a cart from storage.
func RebuildCart(dto ReconstructionDTO) (*Cart, error) {
	id, err := shared.NewCartID(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := shared.ParseCustomerID(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	meals := make(map[shared.MealID]shared.Count, len(dto.Items))
	for _, item := range dto.Items {
		mealID, err := shared.NewMealID(item.MealID)
		if err != nil {
			return nil, err
		}
		count, err := shared.NewCount(item.Count)
		if err != nil {
			return nil, err
		}
		if count.IsZero() {
			continue
		}
		meals[mealID] = count
	}

	return &Cart{
		Entity:     shared.RebuildEntity(id, shared.Version(dto.Version)),
		customerID: customerID,
		createdAt:  dto.CreatedAt,
		meals:      meals,
	}, nil
}

func (c *Cart) CustomerID() shared.CustomerID { return c.customerID }

func (c *Cart) CreatedAt() time.Time { return c.createdAt }

func (c *Cart) IsEmpty() bool { return len(c.meals) == 0 }

// Meals returns a copy of the cart lines so callers cannot mutate the
// aggregate from outside.
func (c *Cart) Meals() map[shared.MealID]shared.Count {
	meals := make(map[shared.MealID]shared.Count, len(c.meals))
	for id, count := range c.meals {
		meals[id] = count
	}
	return meals
}

func (c *Cart) CountOf(mealID shared.MealID) shared.Count {
	return c.meals[mealID]
}

// AddMeal puts one more unit of a meal into the cart. Adding into an
// empty cart raises CartCreated: that is the moment the cart becomes
// visible to the rest of the system.
func (c *Cart) AddMeal(mealID shared.MealID) error {
	wasEmpty := len(c.meals) == 0

	count, err := c.meals[mealID].Increment()
	if err != nil {
		return err
	}
	c.meals[mealID] = count

	if wasEmpty {
		c.AddEvent(NewCartCreated(c))
	}
	c.AddEvent(NewMealAddedToCart(c, mealID))
	return nil
}

// RemoveMeal takes one unit of a meal out of the cart. The line disappears
// when its count reaches zero. Removing a meal that is not in the cart is
// a no-op.
func (c *Cart) RemoveMeal(mealID shared.MealID) error {
	count, ok := c.meals[mealID]
	if !ok {
		return nil
	}

	count, err := count.Decrement()
	if err != nil {
		return err
	}
	if count.IsZero() {
		delete(c.meals, mealID)
	} else {
		c.meals[mealID] = count
	}

	c.AddEvent(NewMealRemovedFromCart(c, mealID))
	return nil
}
