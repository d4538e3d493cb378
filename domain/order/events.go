package order

import "mealshop/domain/shared"

const (
	ShopOrderCreatedEvent   = "shop_order.created"
	ShopOrderConfirmedEvent = "shop_order.confirmed"
	ShopOrderPaidEvent      = "shop_order.paid"
	ShopOrderCompletedEvent = "shop_order.completed"
	ShopOrderCancelledEvent = "shop_order.cancelled"
)

// ShopOrderCreated is raised exactly once, by the order factory at
// checkout. Cart cleanup subscribes to it.
type ShopOrderCreated struct {
	shared.EventMeta
	OrderID     shared.ShopOrderID
	CustomerID  shared.CustomerID
	TotalAmount int64
	Items       []ItemDTO
}

func NewShopOrderCreated(o *ShopOrder) ShopOrderCreated {
	items := make([]ItemDTO, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemDTO{
			MealID:      item.MealID().Int64(),
			Count:       item.Count().Value(),
			PriceAmount: item.Price().Amount(),
		})
	}
	return ShopOrderCreated{
		EventMeta:   shared.NewEventMeta(),
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		TotalAmount: o.TotalPrice().Amount(),
		Items:       items,
	}
}

func (e ShopOrderCreated) EventName() string   { return ShopOrderCreatedEvent }
func (e ShopOrderCreated) AggregateID() string { return e.OrderID.String() }

func (e ShopOrderCreated) Payload() map[string]any {
	items := make([]map[string]any, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, map[string]any{
			"meal_id":      item.MealID,
			"count":        item.Count,
			"price_amount": item.PriceAmount,
		})
	}
	return map[string]any{
		"order_id":     e.OrderID.Int64(),
		"customer_id":  e.CustomerID.String(),
		"total_amount": e.TotalAmount,
		"items":        items,
	}
}

// statusChange carries the common shape of the four lifecycle events.
type statusChange struct {
	shared.EventMeta
	OrderID    shared.ShopOrderID
	CustomerID shared.CustomerID
}

func newStatusChange(o *ShopOrder) statusChange {
	return statusChange{
		EventMeta:  shared.NewEventMeta(),
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
	}
}

func (e statusChange) AggregateID() string { return e.OrderID.String() }

func (e statusChange) Payload() map[string]any {
	return map[string]any{
		"order_id":    e.OrderID.Int64(),
		"customer_id": e.CustomerID.String(),
	}
}

type ShopOrderConfirmed struct{ statusChange }

func NewShopOrderConfirmed(o *ShopOrder) ShopOrderConfirmed {
	return ShopOrderConfirmed{statusChange: newStatusChange(o)}
}

func (e ShopOrderConfirmed) EventName() string { return ShopOrderConfirmedEvent }

type ShopOrderPaid struct{ statusChange }

func NewShopOrderPaid(o *ShopOrder) ShopOrderPaid {
	return ShopOrderPaid{statusChange: newStatusChange(o)}
}

func (e ShopOrderPaid) EventName() string { return ShopOrderPaidEvent }

type ShopOrderCompleted struct{ statusChange }

func NewShopOrderCompleted(o *ShopOrder) ShopOrderCompleted {
	return ShopOrderCompleted{statusChange: newStatusChange(o)}
}

func (e ShopOrderCompleted) EventName() string { return ShopOrderCompletedEvent }

type ShopOrderCancelled struct{ statusChange }

func NewShopOrderCancelled(o *ShopOrder) ShopOrderCancelled {
	return ShopOrderCancelled{statusChange: newStatusChange(o)}
}

func (e ShopOrderCancelled) EventName() string { return ShopOrderCancelledEvent }
