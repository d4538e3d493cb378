package cart

import (
	"context"

	"mealshop/domain/shared"
)

// CartRepository is the persistence port of the cart aggregate. A customer
// has at most one cart, so lookup goes by customer, not cart id.
type CartRepository interface {
	NextIdentity(ctx context.Context) (shared.CartID, error)
	Save(ctx context.Context, c *Cart) error
	FindByCustomerID(ctx context.Context, customerID shared.CustomerID) (*Cart, error)
	Delete(ctx context.Context, id shared.CartID) error
}
