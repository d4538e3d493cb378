// Package rules holds the cross-aggregate reactions that run after a unit
// of work commits.
package rules

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mealshop/domain/cart"
	"mealshop/domain/order"
	"mealshop/domain/shared"
)

// RemoveCartAfterCheckout deletes the consumed cart once a shop order is
// created. The rule runs as an event reaction instead of a checkout step,
// so a failure here never undoes the placed order; the cart is deleted on
// a later retry or replaced on next use.
type RemoveCartAfterCheckout struct {
	carts  cart.CartRepository
	logger *zap.Logger
}

func NewRemoveCartAfterCheckout(carts cart.CartRepository, logger *zap.Logger) *RemoveCartAfterCheckout {
	return &RemoveCartAfterCheckout{carts: carts, logger: logger}
}

func (r *RemoveCartAfterCheckout) Name() string { return "remove-cart-after-checkout" }

func (r *RemoveCartAfterCheckout) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(order.ShopOrderCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventName())
	}

	c, err := r.carts.FindByCustomerID(ctx, created.CustomerID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.carts.Delete(ctx, c.ID()); err != nil {
		return err
	}

	r.logger.Info("cart removed after checkout",
		zap.Int64("cart_id", c.ID().Int64()),
		zap.String("customer_id", created.CustomerID.String()))
	return nil
}

var _ shared.EventHandler = (*RemoveCartAfterCheckout)(nil)
