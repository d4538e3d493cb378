package checkout

import (
	"context"
	"errors"

	"mealshop/domain/cart"
	"mealshop/domain/meal"
	"mealshop/domain/order"
	"mealshop/domain/shared"
)

// cartExtractor adapts the cart repository to the CartExtractor port.
type cartExtractor struct {
	carts cart.CartRepository
}

func NewCartExtractor(carts cart.CartRepository) CartExtractor {
	return cartExtractor{carts: carts}
}

func (a cartExtractor) ExtractCart(ctx context.Context, customerID shared.CustomerID) (*cart.Cart, error) {
	return a.carts.FindByCustomerID(ctx, customerID)
}

// mealPriceProvider adapts the meal repository to the MealPriceProvider
// port. A removed meal prices like a missing one: it cannot be ordered.
type mealPriceProvider struct {
	meals meal.MealRepository
}

func NewMealPriceProvider(meals meal.MealRepository) MealPriceProvider {
	return mealPriceProvider{meals: meals}
}

func (a mealPriceProvider) PriceOf(ctx context.Context, mealID shared.MealID) (shared.Price, error) {
	m, err := a.meals.FindByID(ctx, mealID)
	if err != nil {
		return shared.Price{}, err
	}
	if m.IsRemoved() {
		return shared.Price{}, meal.NewMealNotFoundError(mealID)
	}
	return m.Price(), nil
}

// activeOrderChecker adapts the order repository to the ActiveOrderChecker
// port.
type activeOrderChecker struct {
	orders order.ShopOrderRepository
}

func NewActiveOrderChecker(orders order.ShopOrderRepository) ActiveOrderChecker {
	return activeOrderChecker{orders: orders}
}

func (a activeOrderChecker) HasActiveOrder(ctx context.Context, customerID shared.CustomerID) (bool, error) {
	_, err := a.orders.FindActiveByCustomerID(ctx, customerID)
	if errors.Is(err, order.ErrShopOrderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
