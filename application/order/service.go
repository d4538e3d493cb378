// Package order contains the order lifecycle use cases: moving a placed
// order through its statuses and reading orders back.
package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mealshop/domain/order"
	"mealshop/domain/shared"
)

// OrderItemDTO is one line of the order read model.
type OrderItemDTO struct {
	MealID      int64  `json:"meal_id"`
	Count       int64  `json:"count"`
	PriceAmount int64  `json:"price_amount"`
	Price       string `json:"price"`
}

// OrderDTO is the order read model.
type OrderDTO struct {
	ID          int64          `json:"id"`
	CustomerID  string         `json:"customer_id"`
	Street      string         `json:"street"`
	Building    int            `json:"building"`
	Status      string         `json:"status"`
	Items       []OrderItemDTO `json:"items"`
	TotalAmount int64          `json:"total_amount"`
	Total       string         `json:"total"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ToOrderDTO converts the aggregate to its read model. Exported because
// the checkout service returns the same shape.
func ToOrderDTO(o *order.ShopOrder) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			MealID:      item.MealID().Int64(),
			Count:       item.Count().Value(),
			PriceAmount: item.Price().Amount(),
			Price:       item.Price().String(),
		})
	}
	return OrderDTO{
		ID:          o.ID().Int64(),
		CustomerID:  o.CustomerID().String(),
		Street:      o.Address().Street(),
		Building:    o.Address().Building(),
		Status:      string(o.Status()),
		Items:       items,
		TotalAmount: o.TotalPrice().Amount(),
		Total:       o.TotalPrice().String(),
		CreatedAt:   o.CreatedAt(),
	}
}

// Service orchestrates the order lifecycle.
type Service struct {
	orders order.ShopOrderRepository
	uow    shared.UnitOfWork
	logger *zap.Logger
}

func NewService(orders order.ShopOrderRepository, uow shared.UnitOfWork, logger *zap.Logger) *Service {
	return &Service{orders: orders, uow: uow, logger: logger}
}

func (s *Service) transition(ctx context.Context, rawID string, action string, fn func(o *order.ShopOrder) error) error {
	id, err := shared.ParseShopOrderID(rawID)
	if err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(o); err != nil {
			return err
		}

		s.uow.RegisterDirty(ctx, o)
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", rawID),
		zap.String("action", action))
	return nil
}

func (s *Service) ConfirmOrder(ctx context.Context, rawID string) error {
	return s.transition(ctx, rawID, "confirm", (*order.ShopOrder).Confirm)
}

func (s *Service) PayOrder(ctx context.Context, rawID string) error {
	return s.transition(ctx, rawID, "pay", (*order.ShopOrder).Pay)
}

func (s *Service) CompleteOrder(ctx context.Context, rawID string) error {
	return s.transition(ctx, rawID, "complete", (*order.ShopOrder).Complete)
}

func (s *Service) CancelOrder(ctx context.Context, rawID string) error {
	return s.transition(ctx, rawID, "cancel", (*order.ShopOrder).Cancel)
}

func (s *Service) GetOrder(ctx context.Context, rawID string) (OrderDTO, error) {
	id, err := shared.ParseShopOrderID(rawID)
	if err != nil {
		return OrderDTO{}, err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(o), nil
}

// GetLastOrder returns the most recently placed order of one customer.
func (s *Service) GetLastOrder(ctx context.Context, rawCustomerID string) (OrderDTO, error) {
	customerID, err := shared.ParseCustomerID(rawCustomerID)
	if err != nil {
		return OrderDTO{}, err
	}
	o, err := s.orders.FindLastByCustomerID(ctx, customerID)
	if err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(o), nil
}

// GetCustomerOrders returns every order of one customer, newest last.
func (s *Service) GetCustomerOrders(ctx context.Context, rawCustomerID string) ([]OrderDTO, error) {
	customerID, err := shared.ParseCustomerID(rawCustomerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(orders), nil
}

// ListOrders pages through all orders by ascending id. startID is
// exclusive; limit is capped at 100.
func (s *Service) ListOrders(ctx context.Context, startID int64, limit int) ([]OrderDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	orders, err := s.orders.FindAll(ctx, startID, limit)
	if err != nil {
		return nil, err
	}
	return toDTOs(orders), nil
}

func toDTOs(orders []*order.ShopOrder) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, ToOrderDTO(o))
	}
	return dtos
}
