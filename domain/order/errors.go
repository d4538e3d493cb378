package order

import (
	"errors"
	"fmt"

	"mealshop/domain/shared"
)

var (
	ErrShopOrderNotFound = errors.New("shop order not found")
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrInvalidAddress    = errors.New("invalid delivery address")
	ErrNoOrderItems      = errors.New("order must contain at least one item")
	ErrAlreadyHasActive  = errors.New("customer already has an active order")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrZeroCountItem     = errors.New("order item count must be positive")
)

func NewShopOrderNotFoundError(id shared.ShopOrderID) error {
	return shared.NewDomainError(ErrShopOrderNotFound, "shop_order", "",
		fmt.Sprintf("shop order %s not found", id))
}

func NewIllegalTransitionError(from, to Status) error {
	return shared.NewDomainError(ErrIllegalTransition, "shop_order", "status",
		fmt.Sprintf("cannot move order from %s to %s", from, to))
}

func NewEmptyStreetError() error {
	return shared.NewDomainError(ErrInvalidAddress, "shop_order", "street",
		"street cannot be empty")
}

func NewNonPositiveBuildingError(building int) error {
	return shared.NewDomainError(ErrInvalidAddress, "shop_order", "building",
		fmt.Sprintf("building number must be positive, got %d", building))
}

func NewNoOrderItemsError() error {
	return shared.NewDomainError(ErrNoOrderItems, "shop_order", "items",
		"order must contain at least one item")
}

func NewAlreadyHasActiveOrderError(customerID shared.CustomerID) error {
	return shared.NewDomainError(ErrAlreadyHasActive, "shop_order", "",
		fmt.Sprintf("customer %s already has an active order", customerID))
}

func NewUnknownStatusError(raw string) error {
	return shared.NewDomainError(ErrUnknownStatus, "shop_order", "status",
		fmt.Sprintf("unknown order status %q", raw))
}

func NewZeroCountItemError(mealID shared.MealID) error {
	return shared.NewDomainError(ErrZeroCountItem, "shop_order", "items",
		fmt.Sprintf("order item for meal %s has zero count", mealID))
}
