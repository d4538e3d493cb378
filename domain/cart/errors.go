package cart

import (
	"errors"
	"fmt"

	"mealshop/domain/shared"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrEmptyCart    = errors.New("cart is empty")
)

func NewCartNotFoundError(customerID shared.CustomerID) error {
	return shared.NewDomainError(ErrCartNotFound, "cart", "",
		fmt.Sprintf("no cart for customer %s", customerID))
}

func NewEmptyCartError(id shared.CartID) error {
	return shared.NewDomainError(ErrEmptyCart, "cart", "",
		fmt.Sprintf("cart %s is empty", id))
}
