package memory

import (
	"context"
	"sort"
	"sync"

	"mealshop/domain/order"
	"mealshop/domain/shared"
)

// ShopOrderRepository stores orders as reconstruction snapshots. Lookups
// that filter by business state rebuild the aggregates and evaluate the
// domain specifications directly.
type ShopOrderRepository struct {
	mu     sync.RWMutex
	ids    *IDGenerator
	orders map[int64]order.ReconstructionDTO
}

func NewShopOrderRepository(ids *IDGenerator) *ShopOrderRepository {
	return &ShopOrderRepository{ids: ids, orders: make(map[int64]order.ReconstructionDTO)}
}

func (r *ShopOrderRepository) NextIdentity(ctx context.Context) (shared.ShopOrderID, error) {
	raw, err := r.ids.NextID(ctx)
	if err != nil {
		return shared.ShopOrderID{}, err
	}
	return shared.NewShopOrderID(raw)
}

func orderToDTO(o *order.ShopOrder) order.ReconstructionDTO {
	items := make([]order.ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, order.ItemDTO{
			MealID:      item.MealID().Int64(),
			Count:       item.Count().Value(),
			PriceAmount: item.Price().Amount(),
		})
	}
	return order.ReconstructionDTO{
		ID:         o.ID().Int64(),
		CustomerID: o.CustomerID().String(),
		Street:     o.Address().Street(),
		Building:   o.Address().Building(),
		Items:      items,
		Status:     string(o.Status()),
		CreatedAt:  o.CreatedAt(),
		Version:    o.Version().Int64(),
	}
}

func (r *ShopOrderRepository) Save(_ context.Context, o *order.ShopOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[o.ID().Int64()]
	if o.IsNew() {
		if exists {
			return shared.NewConflictError("shop_order", "order id already taken")
		}
		r.orders[o.ID().Int64()] = orderToDTO(o)
		o.ClearNew()
		return nil
	}

	if !exists {
		return order.NewShopOrderNotFoundError(o.ID())
	}
	if stored.Version != expectedVersion(o.Version(), o.HasPendingEvents()) {
		return shared.ErrConcurrentModification
	}
	r.orders[o.ID().Int64()] = orderToDTO(o)
	return nil
}

func (r *ShopOrderRepository) FindByID(_ context.Context, id shared.ShopOrderID) (*order.ShopOrder, error) {
	r.mu.RLock()
	dto, ok := r.orders[id.Int64()]
	r.mu.RUnlock()
	if !ok {
		return nil, order.NewShopOrderNotFoundError(id)
	}
	return order.RebuildShopOrder(dto)
}

func (r *ShopOrderRepository) FindActiveByCustomerID(ctx context.Context, customerID shared.CustomerID) (*order.ShopOrder, error) {
	orders, err := r.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	spec := order.ActiveOrderOfCustomer(customerID)
	for _, o := range orders {
		if spec.IsSatisfiedBy(ctx, o) {
			return o, nil
		}
	}
	return nil, shared.NewDomainError(order.ErrShopOrderNotFound, "shop_order", "",
		"no active order for customer "+customerID.String())
}

// FindLastByCustomerID returns the customer's most recently placed order,
// the one with the highest id.
func (r *ShopOrderRepository) FindLastByCustomerID(ctx context.Context, customerID shared.CustomerID) (*order.ShopOrder, error) {
	orders, err := r.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, shared.NewDomainError(order.ErrShopOrderNotFound, "shop_order", "",
			"no orders for customer "+customerID.String())
	}
	return orders[len(orders)-1], nil
}

func (r *ShopOrderRepository) FindByCustomerID(_ context.Context, customerID shared.CustomerID) ([]*order.ShopOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos := make([]order.ReconstructionDTO, 0)
	for _, dto := range r.orders {
		if dto.CustomerID == customerID.String() {
			dtos = append(dtos, dto)
		}
	}
	return rebuildSorted(dtos)
}

func (r *ShopOrderRepository) FindAll(_ context.Context, startID int64, limit int) ([]*order.ShopOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos := make([]order.ReconstructionDTO, 0)
	for _, dto := range r.orders {
		if dto.ID > startID {
			dtos = append(dtos, dto)
		}
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].ID < dtos[j].ID })
	if limit > 0 && len(dtos) > limit {
		dtos = dtos[:limit]
	}
	return rebuildSorted(dtos)
}

func rebuildSorted(dtos []order.ReconstructionDTO) ([]*order.ShopOrder, error) {
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].ID < dtos[j].ID })
	orders := make([]*order.ShopOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := order.RebuildShopOrder(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

var _ order.ShopOrderRepository = (*ShopOrderRepository)(nil)
