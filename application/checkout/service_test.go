package checkout

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	appodr "mealshop/application/order"
	"mealshop/application/rules"
	"mealshop/domain/cart"
	"mealshop/domain/meal"
	"mealshop/domain/order"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence/memory"
)

type fixture struct {
	meals    *memory.MealRepository
	carts    *memory.CartRepository
	orders   *memory.ShopOrderRepository
	bus      *shared.EventBus
	uow      *memory.UnitOfWork
	service  *Service
	customer shared.CustomerID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	ids := memory.NewIDGenerator()
	meals := memory.NewMealRepository(ids)
	carts := memory.NewCartRepository(ids)
	orders := memory.NewShopOrderRepository(ids)
	bus := shared.NewEventBus()
	uow := memory.NewUnitOfWork(bus, logger)

	if err := bus.Subscribe(order.ShopOrderCreatedEvent, rules.NewRemoveCartAfterCheckout(carts, logger)); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	service := NewService(
		NewCartExtractor(carts),
		NewMealPriceProvider(meals),
		NewActiveOrderChecker(orders),
		orders,
		uow,
		logger,
	)

	return &fixture{
		meals:    meals,
		carts:    carts,
		orders:   orders,
		bus:      bus,
		uow:      uow,
		service:  service,
		customer: shared.NewCustomerID(),
	}
}

func (f *fixture) addMeal(t *testing.T, name string, amount int64) shared.MealID {
	t.Helper()
	ctx := context.Background()
	id, err := f.meals.NextIdentity(ctx)
	if err != nil {
		t.Fatalf("NextIdentity: %v", err)
	}
	mealName, _ := meal.NewMealName(name)
	description, _ := meal.NewMealDescription(name + " description")
	price, err := shared.NewPrice(amount)
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	m := meal.NewMeal(id, mealName, description, price)
	m.PopEvents()
	if err := f.meals.Save(ctx, m); err != nil {
		t.Fatalf("save meal: %v", err)
	}
	return id
}

func (f *fixture) fillCart(t *testing.T, lines map[shared.MealID]int) {
	t.Helper()
	ctx := context.Background()
	id, err := f.carts.NextIdentity(ctx)
	if err != nil {
		t.Fatalf("NextIdentity: %v", err)
	}
	c := cart.NewCart(id, f.customer)
	for mealID, count := range lines {
		for i := 0; i < count; i++ {
			if err := c.AddMeal(mealID); err != nil {
				t.Fatalf("AddMeal: %v", err)
			}
		}
	}
	c.PopEvents()
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatalf("save cart: %v", err)
	}
}

func (f *fixture) checkout(t *testing.T) (appodr.OrderDTO, error) {
	t.Helper()
	return f.service.Checkout(context.Background(), CheckoutCommand{
		CustomerID: f.customer.String(),
		Street:     "Baker Street",
		Building:   221,
	})
}

func TestCheckoutPlacesOrderAndRemovesCart(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	pasta := f.addMeal(t, "Carbonara", 500)
	f.fillCart(t, map[shared.MealID]int{pizza: 2, pasta: 1})

	dto, err := f.checkout(t)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if dto.Status != string(order.StatusNew) {
		t.Errorf("status = %s, want NEW", dto.Status)
	}
	if dto.TotalAmount != 2500 {
		t.Errorf("total = %d, want 2500", dto.TotalAmount)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(dto.Items))
	}

	// The consumed cart is gone: the cleanup rule reacted to the event.
	if _, err := f.carts.FindByCustomerID(context.Background(), f.customer); !errors.Is(err, cart.ErrCartNotFound) {
		t.Errorf("cart lookup after checkout = %v, want ErrCartNotFound", err)
	}

	// The order is persisted and active.
	placed, err := f.orders.FindActiveByCustomerID(context.Background(), f.customer)
	if err != nil {
		t.Fatalf("FindActiveByCustomerID: %v", err)
	}
	if placed.ID().Int64() != dto.ID {
		t.Errorf("active order id = %d, want %d", placed.ID().Int64(), dto.ID)
	}
}

func TestCheckoutFailsWithoutCart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.checkout(t); !errors.Is(err, cart.ErrCartNotFound) {
		t.Errorf("error = %v, want ErrCartNotFound", err)
	}
}

func TestCheckoutFailsOnEmptyCart(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	f.fillCart(t, map[shared.MealID]int{pizza: 1})

	// Empty the cart again: the aggregate stays but holds no lines.
	ctx := context.Background()
	c, err := f.carts.FindByCustomerID(ctx, f.customer)
	if err != nil {
		t.Fatalf("find cart: %v", err)
	}
	if err := c.RemoveMeal(pizza); err != nil {
		t.Fatalf("RemoveMeal: %v", err)
	}
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	if _, err := f.checkout(t); !errors.Is(err, cart.ErrEmptyCart) {
		t.Errorf("error = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutFailsWithActiveOrder(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	f.fillCart(t, map[shared.MealID]int{pizza: 1})

	if _, err := f.checkout(t); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	f.fillCart(t, map[shared.MealID]int{pizza: 1})
	if _, err := f.checkout(t); !errors.Is(err, order.ErrAlreadyHasActive) {
		t.Errorf("second checkout error = %v, want ErrAlreadyHasActive", err)
	}
}

func TestCheckoutAllowedAfterOrderCompletes(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	f.fillCart(t, map[shared.MealID]int{pizza: 1})

	first, err := f.checkout(t)
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	ctx := context.Background()
	id, _ := shared.NewShopOrderID(first.ID)
	o, err := f.orders.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if err := o.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := f.orders.Save(ctx, o); err != nil {
		t.Fatalf("save order: %v", err)
	}

	f.fillCart(t, map[shared.MealID]int{pizza: 1})
	if _, err := f.checkout(t); err != nil {
		t.Errorf("checkout after cancellation: %v", err)
	}
}

func TestCheckoutFailsOnRemovedMeal(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	f.fillCart(t, map[shared.MealID]int{pizza: 1})

	ctx := context.Background()
	m, err := f.meals.FindByID(ctx, pizza)
	if err != nil {
		t.Fatalf("find meal: %v", err)
	}
	m.Remove()
	if err := f.meals.Save(ctx, m); err != nil {
		t.Fatalf("save meal: %v", err)
	}
	m.PopEvents()

	if _, err := f.checkout(t); !errors.Is(err, meal.ErrMealNotFound) {
		t.Errorf("error = %v, want ErrMealNotFound", err)
	}
}

func TestCheckoutFailsOnInvalidAddress(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	f.fillCart(t, map[shared.MealID]int{pizza: 1})

	_, err := f.service.Checkout(context.Background(), CheckoutCommand{
		CustomerID: f.customer.String(),
		Street:     "",
		Building:   221,
	})
	if !errors.Is(err, order.ErrInvalidAddress) {
		t.Errorf("error = %v, want ErrInvalidAddress", err)
	}

	// Failed checkout must leave the cart untouched.
	if _, err := f.carts.FindByCustomerID(context.Background(), f.customer); err != nil {
		t.Errorf("cart should survive a failed checkout: %v", err)
	}
}

func TestCheckoutEmitsSingleCreatedEvent(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)
	f.fillCart(t, map[shared.MealID]int{pizza: 1})

	var seen []shared.DomainEvent
	recorder := shared.NewFuncHandler("recorder", func(_ context.Context, event shared.DomainEvent) error {
		seen = append(seen, event)
		return nil
	})
	if err := f.bus.Subscribe(order.ShopOrderCreatedEvent, recorder); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := f.checkout(t); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("observed %d ShopOrderCreated events, want 1", len(seen))
	}
}
