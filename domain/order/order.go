// Package order holds the ShopOrder aggregate: a placed order moving
// through a fixed status lifecycle, with delivery address and price
// snapshots taken at checkout.
package order

import (
	"time"

	"mealshop/domain/shared"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusConfirmed Status = "CONFIRMED"
	StatusPaid      Status = "PAID"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// legalTransitions is the full status machine. Completed and cancelled are
// terminal.
var legalTransitions = map[Status][]Status{
	StatusNew:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseStatus validates a raw status string coming from storage or the API.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if _, ok := legalTransitions[status]; !ok {
		return "", NewUnknownStatusError(raw)
	}
	return status, nil
}

func (s Status) canTransitionTo(target Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool { return len(legalTransitions[s]) == 0 }

// ShopOrder is the aggregate root of a placed order.
type ShopOrder struct {
	shared.Entity[shared.ShopOrderID]

	customerID shared.CustomerID
	address    Address
	items      []OrderItem
	status     Status
	total      shared.Price
	createdAt  time.Time
}

// NewShopOrder creates an order in status NEW and queues a single
// ShopOrderCreated event. The total is computed once here from the item
// snapshots and stored with the order.
func NewShopOrder(id shared.ShopOrderID, customerID shared.CustomerID, address Address, items []OrderItem) (*ShopOrder, error) {
	if len(items) == 0 {
		return nil, NewNoOrderItemsError()
	}

	total, err := totalOf(items)
	if err != nil {
		return nil, err
	}

	o := &ShopOrder{
		Entity:     shared.NewEntity(id),
		customerID: customerID,
		address:    address,
		items:      append([]OrderItem(nil), items...),
		status:     StatusNew,
		total:      total,
		createdAt:  time.Now().UTC(),
	}
	o.AddEvent(NewShopOrderCreated(o))
	return o, nil
}

func totalOf(items []OrderItem) (shared.Price, error) {
	subtotal, err := items[0].Subtotal()
	if err != nil {
		return shared.Price{}, err
	}
	total := subtotal
	for _, item := range items[1:] {
		subtotal, err := item.Subtotal()
		if err != nil {
			return shared.Price{}, err
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return shared.Price{}, err
		}
	}
	return total, nil
}

// ItemDTO carries one persisted order line. Repository use only.
type ItemDTO struct {
	MealID      int64
	Count       int64
	PriceAmount int64
}

// ReconstructionDTO carries the raw persisted state of an order.
// Repository use only.
type ReconstructionDTO struct {
	ID         int64
	CustomerID string
	Street     string
	Building   int
	Items      []ItemDTO
	Status     string
	CreatedAt  time.Time
	Version    int64
}

// RebuildShopOrder restores an order from storage, re-validating every
// value object.
func RebuildShopOrder(dto ReconstructionDTO) (*ShopOrder, error) {
	id, err := shared.NewShopOrderID(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := shared.ParseCustomerID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	address, err := NewAddress(dto.Street, dto.Building)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	if len(dto.Items) == 0 {
		return nil, NewNoOrderItemsError()
	}

	items := make([]OrderItem, 0, len(dto.Items))
	for _, raw := range dto.Items {
		mealID, err := shared.NewMealID(raw.MealID)
		if err != nil {
			return nil, err
		}
		count, err := shared.NewCount(raw.Count)
		if err != nil {
			return nil, err
		}
		price, err := shared.NewPrice(raw.PriceAmount)
		if err != nil {
			return nil, err
		}
		item, err := NewOrderItem(mealID, count, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	total, err := totalOf(items)
	if err != nil {
		return nil, err
	}

	return &ShopOrder{
		Entity:     shared.RebuildEntity(id, shared.Version(dto.Version)),
		customerID: customerID,
		address:    address,
		items:      items,
		status:     status,
		total:      total,
		createdAt:  dto.CreatedAt,
	}, nil
}

func (o *ShopOrder) CustomerID() shared.CustomerID { return o.customerID }
func (o *ShopOrder) Address() Address              { return o.address }
func (o *ShopOrder) Status() Status                { return o.status }
func (o *ShopOrder) CreatedAt() time.Time          { return o.createdAt }

// TotalPrice is the sum of item subtotals, fixed at checkout.
func (o *ShopOrder) TotalPrice() shared.Price { return o.total }

// Items returns a copy of the order lines.
func (o *ShopOrder) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// IsActive reports whether the order still occupies the customer's single
// active-order slot: any status but the terminal two.
func (o *ShopOrder) IsActive() bool { return !o.status.IsTerminal() }

// ReadyForConfirmOrCancel reports whether the order still awaits the shop's
// first decision.
func (o *ShopOrder) ReadyForConfirmOrCancel() bool { return o.status == StatusNew }

func (o *ShopOrder) transitionTo(target Status) error {
	if !o.status.canTransitionTo(target) {
		return NewIllegalTransitionError(o.status, target)
	}
	o.status = target
	return nil
}

// Confirm moves the order from NEW to CONFIRMED.
func (o *ShopOrder) Confirm() error {
	if err := o.transitionTo(StatusConfirmed); err != nil {
		return err
	}
	o.AddEvent(NewShopOrderConfirmed(o))
	return nil
}

// Pay moves the order from CONFIRMED to PAID.
func (o *ShopOrder) Pay() error {
	if err := o.transitionTo(StatusPaid); err != nil {
		return err
	}
	o.AddEvent(NewShopOrderPaid(o))
	return nil
}

// Complete moves the order from PAID to COMPLETED.
func (o *ShopOrder) Complete() error {
	if err := o.transitionTo(StatusCompleted); err != nil {
		return err
	}
	o.AddEvent(NewShopOrderCompleted(o))
	return nil
}

// Cancel aborts an order that is not yet paid.
func (o *ShopOrder) Cancel() error {
	if err := o.transitionTo(StatusCancelled); err != nil {
		return err
	}
	o.AddEvent(NewShopOrderCancelled(o))
	return nil
}
