// Package cart contains the cart use cases: putting meals in, taking them
// out and reading the cart back.
package cart

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"mealshop/domain/cart"
	"mealshop/domain/meal"
	"mealshop/domain/shared"
)

// CartItemDTO is one line of the cart read model. Name resolves through
// the menu at read time; an item whose meal was removed keeps its line
// with the last known name blank.
type CartItemDTO struct {
	MealID int64  `json:"meal_id"`
	Name   string `json:"name,omitempty"`
	Count  int64  `json:"count"`
}

// CartDTO is the cart read model. A customer without a cart reads back an
// empty one.
type CartDTO struct {
	CartID     int64         `json:"cart_id,omitempty"`
	CustomerID string        `json:"customer_id"`
	Items      []CartItemDTO `json:"items"`
}

// Service orchestrates the cart aggregate.
type Service struct {
	carts  cart.CartRepository
	meals  meal.MealRepository
	uow    shared.UnitOfWork
	logger *zap.Logger
}

func NewService(carts cart.CartRepository, meals meal.MealRepository, uow shared.UnitOfWork, logger *zap.Logger) *Service {
	return &Service{carts: carts, meals: meals, uow: uow, logger: logger}
}

// AddMealToCart puts one unit of a meal into the customer's cart, creating
// the cart on first use. Only meals currently on the menu can be added.
func (s *Service) AddMealToCart(ctx context.Context, rawCustomerID, rawMealID string) error {
	customerID, err := shared.ParseCustomerID(rawCustomerID)
	if err != nil {
		return err
	}
	mealID, err := shared.ParseMealID(rawMealID)
	if err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.meals.FindByID(ctx, mealID)
		if err != nil {
			return err
		}
		if m.IsRemoved() {
			return meal.NewMealNotFoundError(mealID)
		}

		c, err := s.carts.FindByCustomerID(ctx, customerID)
		switch {
		case errors.Is(err, cart.ErrCartNotFound):
			id, err := s.carts.NextIdentity(ctx)
			if err != nil {
				return err
			}
			c = cart.NewCart(id, customerID)
			s.uow.RegisterNew(ctx, c)
		case err != nil:
			return err
		default:
			s.uow.RegisterDirty(ctx, c)
		}

		if err := c.AddMeal(mealID); err != nil {
			return err
		}
		return s.carts.Save(ctx, c)
	})
	if err != nil {
		return err
	}

	s.logger.Info("meal added to cart",
		zap.String("customer_id", rawCustomerID),
		zap.String("meal_id", rawMealID))
	return nil
}

// RemoveMealFromCart takes one unit of a meal out of the cart. A missing
// cart or a meal not in the cart both succeed without effect.
func (s *Service) RemoveMealFromCart(ctx context.Context, rawCustomerID, rawMealID string) error {
	customerID, err := shared.ParseCustomerID(rawCustomerID)
	if err != nil {
		return err
	}
	mealID, err := shared.ParseMealID(rawMealID)
	if err != nil {
		return err
	}

	return s.uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.carts.FindByCustomerID(ctx, customerID)
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.RemoveMeal(mealID); err != nil {
			return err
		}

		s.uow.RegisterDirty(ctx, c)
		return s.carts.Save(ctx, c)
	})
}

// GetCart reads the customer's cart, resolving meal names through the
// menu. A customer without a cart gets an empty one back.
func (s *Service) GetCart(ctx context.Context, rawCustomerID string) (CartDTO, error) {
	customerID, err := shared.ParseCustomerID(rawCustomerID)
	if err != nil {
		return CartDTO{}, err
	}

	c, err := s.carts.FindByCustomerID(ctx, customerID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return CartDTO{CustomerID: rawCustomerID, Items: []CartItemDTO{}}, nil
	}
	if err != nil {
		return CartDTO{}, err
	}

	dto := CartDTO{
		CartID:     c.ID().Int64(),
		CustomerID: rawCustomerID,
		Items:      make([]CartItemDTO, 0, len(c.Meals())),
	}
	for mealID, count := range c.Meals() {
		item := CartItemDTO{MealID: mealID.Int64(), Count: count.Value()}
		if m, err := s.meals.FindByID(ctx, mealID); err == nil {
			item.Name = m.Name().Value()
		}
		dto.Items = append(dto.Items, item)
	}
	sort.Slice(dto.Items, func(i, j int) bool { return dto.Items[i].MealID < dto.Items[j].MealID })
	return dto, nil
}
