package order

import (
	"context"

	"mealshop/domain/shared"
)

// ShopOrderRepository is the persistence port of the order aggregate.
// FindActiveByCustomerID returns ErrShopOrderNotFound when the customer
// has no active order; the checkout service treats that as the green
// light to place one.
type ShopOrderRepository interface {
	NextIdentity(ctx context.Context) (shared.ShopOrderID, error)
	Save(ctx context.Context, o *ShopOrder) error
	FindByID(ctx context.Context, id shared.ShopOrderID) (*ShopOrder, error)
	FindActiveByCustomerID(ctx context.Context, customerID shared.CustomerID) (*ShopOrder, error)
	FindLastByCustomerID(ctx context.Context, customerID shared.CustomerID) (*ShopOrder, error)
	FindByCustomerID(ctx context.Context, customerID shared.CustomerID) ([]*ShopOrder, error)
	FindAll(ctx context.Context, startID int64, limit int) ([]*ShopOrder, error)
}
