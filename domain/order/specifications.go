package order

import (
	"context"

	"mealshop/domain/shared"
)

// ActiveSpecification selects orders still in a non-terminal status.
type ActiveSpecification struct{}

func (ActiveSpecification) IsSatisfiedBy(_ context.Context, o *ShopOrder) bool {
	return o.IsActive()
}

// BelongsToCustomerSpecification selects orders of one customer.
type BelongsToCustomerSpecification struct {
	CustomerID shared.CustomerID
}

func (s BelongsToCustomerSpecification) IsSatisfiedBy(_ context.Context, o *ShopOrder) bool {
	return o.CustomerID() == s.CustomerID
}

// ActiveOrderOfCustomer is the guard the checkout uses: at most one order
// per customer may satisfy it at any time.
func ActiveOrderOfCustomer(customerID shared.CustomerID) shared.Specification[*ShopOrder] {
	return shared.And[*ShopOrder](
		ActiveSpecification{},
		BelongsToCustomerSpecification{CustomerID: customerID},
	)
}
