package memory

import (
	"context"
	"sort"
	"sync"

	"mealshop/domain/cart"
	"mealshop/domain/shared"
)

// CartRepository stores carts keyed by cart id with a customer index.
type CartRepository struct {
	mu         sync.RWMutex
	ids        *IDGenerator
	carts      map[int64]cart.ReconstructionDTO
	byCustomer map[string]int64
}

func NewCartRepository(ids *IDGenerator) *CartRepository {
	return &CartRepository{
		ids:        ids,
		carts:      make(map[int64]cart.ReconstructionDTO),
		byCustomer: make(map[string]int64),
	}
}

func (r *CartRepository) NextIdentity(ctx context.Context) (shared.CartID, error) {
	raw, err := r.ids.NextID(ctx)
	if err != nil {
		return shared.CartID{}, err
	}
	return shared.NewCartID(raw)
}

func cartToDTO(c *cart.Cart) cart.ReconstructionDTO {
	items := make([]cart.ItemDTO, 0, len(c.Meals()))
	for mealID, count := range c.Meals() {
		items = append(items, cart.ItemDTO{MealID: mealID.Int64(), Count: count.Value()})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MealID < items[j].MealID })
	return cart.ReconstructionDTO{
		ID:         c.ID().Int64(),
		CustomerID: c.CustomerID().String(),
		Items:      items,
		CreatedAt:  c.CreatedAt(),
		Version:    c.Version().Int64(),
	}
}

func (r *CartRepository) Save(_ context.Context, c *cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.carts[c.ID().Int64()]
	if c.IsNew() {
		if exists {
			return shared.NewConflictError("cart", "cart id already taken")
		}
		if _, taken := r.byCustomer[c.CustomerID().String()]; taken {
			return shared.NewConflictError("cart", "customer already has a cart")
		}
		r.carts[c.ID().Int64()] = cartToDTO(c)
		r.byCustomer[c.CustomerID().String()] = c.ID().Int64()
		c.ClearNew()
		return nil
	}

	if !exists {
		return cart.NewCartNotFoundError(c.CustomerID())
	}
	if stored.Version != expectedVersion(c.Version(), c.HasPendingEvents()) {
		return shared.ErrConcurrentModification
	}
	r.carts[c.ID().Int64()] = cartToDTO(c)
	return nil
}

func (r *CartRepository) FindByCustomerID(_ context.Context, customerID shared.CustomerID) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCustomer[customerID.String()]
	if !ok {
		return nil, cart.NewCartNotFoundError(customerID)
	}
	return cart.RebuildCart(r.carts[id])
}

func (r *CartRepository) Delete(_ context.Context, id shared.CartID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto, ok := r.carts[id.Int64()]
	if !ok {
		return nil
	}
	delete(r.carts, id.Int64())
	delete(r.byCustomer, dto.CustomerID)
	return nil
}

var _ cart.CartRepository = (*CartRepository)(nil)
