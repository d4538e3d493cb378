package order

import (
	"strings"

	"mealshop/domain/shared"
)

// Address is the delivery address of an order. Street must be non-blank
// and the building number positive.
type Address struct {
	street   string
	building int
}

func NewAddress(street string, building int) (Address, error) {
	if strings.TrimSpace(street) == "" {
		return Address{}, NewEmptyStreetError()
	}
	if building <= 0 {
		return Address{}, NewNonPositiveBuildingError(building)
	}
	return Address{street: street, building: building}, nil
}

func (a Address) Street() string { return a.street }
func (a Address) Building() int  { return a.building }

// OrderItem is one line of an order. The price is a snapshot taken at
// checkout: later menu repricing never changes a placed order.
type OrderItem struct {
	mealID shared.MealID
	count  shared.Count
	price  shared.Price
}

func NewOrderItem(mealID shared.MealID, count shared.Count, price shared.Price) (OrderItem, error) {
	if count.IsZero() {
		return OrderItem{}, NewZeroCountItemError(mealID)
	}
	return OrderItem{mealID: mealID, count: count, price: price}, nil
}

func (i OrderItem) MealID() shared.MealID { return i.mealID }
func (i OrderItem) Count() shared.Count   { return i.count }
func (i OrderItem) Price() shared.Price   { return i.price }

// Subtotal is the snapshot price multiplied by the count.
func (i OrderItem) Subtotal() (shared.Price, error) {
	return i.price.Multiply(i.count)
}
