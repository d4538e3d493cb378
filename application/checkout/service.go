// Package checkout turns a cart into a shop order. The service depends on
// three narrow ports instead of whole repositories so each precondition
// reads as one call; the adapters over the real repositories live in
// adapters.go.
package checkout

import (
	"context"
	"sort"

	"go.uber.org/zap"

	appodr "mealshop/application/order"
	"mealshop/domain/cart"
	"mealshop/domain/order"
	"mealshop/domain/shared"
)

// CartExtractor fetches the customer's cart for checkout.
type CartExtractor interface {
	ExtractCart(ctx context.Context, customerID shared.CustomerID) (*cart.Cart, error)
}

// MealPriceProvider resolves the current menu price of a meal. Removed and
// unknown meals both fail with the meal-not-found error.
type MealPriceProvider interface {
	PriceOf(ctx context.Context, mealID shared.MealID) (shared.Price, error)
}

// ActiveOrderChecker reports whether the customer already occupies their
// single active-order slot.
type ActiveOrderChecker interface {
	HasActiveOrder(ctx context.Context, customerID shared.CustomerID) (bool, error)
}

// CheckoutCommand is the input of Checkout.
type CheckoutCommand struct {
	CustomerID string
	Street     string
	Building   int
}

// Service places orders. Cart cleanup is not done here: it is a reaction
// to the ShopOrderCreated event, handled by the rules package.
type Service struct {
	carts  CartExtractor
	prices MealPriceProvider
	active ActiveOrderChecker
	orders order.ShopOrderRepository
	uow    shared.UnitOfWork
	logger *zap.Logger
}

func NewService(
	carts CartExtractor,
	prices MealPriceProvider,
	active ActiveOrderChecker,
	orders order.ShopOrderRepository,
	uow shared.UnitOfWork,
	logger *zap.Logger,
) *Service {
	return &Service{
		carts:  carts,
		prices: prices,
		active: active,
		orders: orders,
		uow:    uow,
		logger: logger,
	}
}

// Checkout places an order from the customer's cart. The preconditions
// fail fast in a fixed sequence: missing cart, empty cart, existing active
// order, unknown meal, invalid address. On success exactly one
// ShopOrderCreated event leaves the unit of work.
func (s *Service) Checkout(ctx context.Context, cmd CheckoutCommand) (appodr.OrderDTO, error) {
	customerID, err := shared.ParseCustomerID(cmd.CustomerID)
	if err != nil {
		return appodr.OrderDTO{}, err
	}

	var dto appodr.OrderDTO
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.carts.ExtractCart(ctx, customerID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return cart.NewEmptyCartError(c.ID())
		}

		has, err := s.active.HasActiveOrder(ctx, customerID)
		if err != nil {
			return err
		}
		if has {
			return order.NewAlreadyHasActiveOrderError(customerID)
		}

		items, err := s.snapshotItems(ctx, c)
		if err != nil {
			return err
		}

		address, err := order.NewAddress(cmd.Street, cmd.Building)
		if err != nil {
			return err
		}

		id, err := s.orders.NextIdentity(ctx)
		if err != nil {
			return err
		}
		o, err := order.NewShopOrder(id, customerID, address, items)
		if err != nil {
			return err
		}

		s.uow.RegisterNew(ctx, o)
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		dto = appodr.ToOrderDTO(o)
		return nil
	})
	if err != nil {
		return appodr.OrderDTO{}, err
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", dto.ID),
		zap.String("customer_id", cmd.CustomerID),
		zap.Int64("total_amount", dto.TotalAmount))
	return dto, nil
}

// snapshotItems fixes the current menu price of every cart line into order
// items. Lines are ordered by meal id so the order content is
// deterministic regardless of map iteration.
func (s *Service) snapshotItems(ctx context.Context, c *cart.Cart) ([]order.OrderItem, error) {
	meals := c.Meals()
	mealIDs := make([]shared.MealID, 0, len(meals))
	for mealID := range meals {
		mealIDs = append(mealIDs, mealID)
	}
	sort.Slice(mealIDs, func(i, j int) bool { return mealIDs[i].Int64() < mealIDs[j].Int64() })

	items := make([]order.OrderItem, 0, len(mealIDs))
	for _, mealID := range mealIDs {
		price, err := s.prices.PriceOf(ctx, mealID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewOrderItem(mealID, meals[mealID], price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
