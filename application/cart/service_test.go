package cart

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"mealshop/domain/meal"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence/memory"
)

type fixture struct {
	service  *Service
	meals    *memory.MealRepository
	customer string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	meals := memory.NewMealRepository(memory.NewIDGenerator())
	carts := memory.NewCartRepository(memory.NewIDGenerator())
	uow := memory.NewUnitOfWork(shared.NewEventBus(), logger)

	return &fixture{
		service:  NewService(carts, meals, uow, logger),
		meals:    meals,
		customer: shared.NewCustomerID().String(),
	}
}

func (f *fixture) addMeal(t *testing.T, name string, amount int64) string {
	t.Helper()
	ctx := context.Background()
	id, err := f.meals.NextIdentity(ctx)
	if err != nil {
		t.Fatalf("NextIdentity: %v", err)
	}
	mealName, _ := meal.NewMealName(name)
	description, _ := meal.NewMealDescription(name + " description")
	price, _ := shared.NewPrice(amount)
	m := meal.NewMeal(id, mealName, description, price)
	m.PopEvents()
	if err := f.meals.Save(ctx, m); err != nil {
		t.Fatalf("save meal: %v", err)
	}
	return strconv.FormatInt(id.Int64(), 10)
}

func TestAddMealCreatesCartOnFirstUse(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)

	ctx := context.Background()
	if err := f.service.AddMealToCart(ctx, f.customer, pizza); err != nil {
		t.Fatalf("AddMealToCart: %v", err)
	}
	if err := f.service.AddMealToCart(ctx, f.customer, pizza); err != nil {
		t.Fatalf("second AddMealToCart: %v", err)
	}

	cart, err := f.service.GetCart(ctx, f.customer)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.CartID == 0 {
		t.Error("expected a cart id after first add")
	}
	if len(cart.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(cart.Items))
	}
	if cart.Items[0].Count != 2 {
		t.Errorf("count = %d, want 2", cart.Items[0].Count)
	}
	if cart.Items[0].Name != "Margherita" {
		t.Errorf("name = %s, want Margherita", cart.Items[0].Name)
	}
}

func TestAddUnknownMealFails(t *testing.T) {
	f := newFixture(t)

	err := f.service.AddMealToCart(context.Background(), f.customer, "12345")
	if !errors.Is(err, meal.ErrMealNotFound) {
		t.Errorf("error = %v, want ErrMealNotFound", err)
	}
}

func TestAddRemovedMealFails(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)

	ctx := context.Background()
	id, _ := shared.ParseMealID(pizza)
	m, err := f.meals.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find meal: %v", err)
	}
	m.Remove()
	if err := f.meals.Save(ctx, m); err != nil {
		t.Fatalf("save meal: %v", err)
	}
	m.PopEvents()

	if err := f.service.AddMealToCart(ctx, f.customer, pizza); !errors.Is(err, meal.ErrMealNotFound) {
		t.Errorf("error = %v, want ErrMealNotFound", err)
	}
}

func TestRemoveMealDecrementsAndDropsLine(t *testing.T) {
	f := newFixture(t)
	pizza := f.addMeal(t, "Margherita", 1000)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := f.service.AddMealToCart(ctx, f.customer, pizza); err != nil {
			t.Fatalf("AddMealToCart: %v", err)
		}
	}

	if err := f.service.RemoveMealFromCart(ctx, f.customer, pizza); err != nil {
		t.Fatalf("RemoveMealFromCart: %v", err)
	}
	cart, _ := f.service.GetCart(ctx, f.customer)
	if len(cart.Items) != 1 || cart.Items[0].Count != 1 {
		t.Fatalf("cart after one removal = %+v, want single line with count 1", cart.Items)
	}

	if err := f.service.RemoveMealFromCart(ctx, f.customer, pizza); err != nil {
		t.Fatalf("RemoveMealFromCart: %v", err)
	}
	cart, _ = f.service.GetCart(ctx, f.customer)
	if len(cart.Items) != 0 {
		t.Errorf("cart after second removal = %+v, want no lines", cart.Items)
	}
}

func TestRemoveWithoutCartIsNoOp(t *testing.T) {
	f := newFixture(t)
	if err := f.service.RemoveMealFromCart(context.Background(), f.customer, "1"); err != nil {
		t.Errorf("removal without cart should succeed, got %v", err)
	}
}

func TestGetCartWithoutCartReturnsEmptyOne(t *testing.T) {
	f := newFixture(t)

	cart, err := f.service.GetCart(context.Background(), f.customer)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.CartID != 0 {
		t.Errorf("cart id = %d, want 0", cart.CartID)
	}
	if cart.CustomerID != f.customer {
		t.Errorf("customer id = %s, want %s", cart.CustomerID, f.customer)
	}
	if len(cart.Items) != 0 {
		t.Errorf("items = %+v, want none", cart.Items)
	}
}
