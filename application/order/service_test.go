package order

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"mealshop/domain/order"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence/memory"
)

type fixture struct {
	service *Service
	orders  *memory.ShopOrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orders := memory.NewShopOrderRepository(memory.NewIDGenerator())
	uow := memory.NewUnitOfWork(shared.NewEventBus(), zap.NewNop())
	return &fixture{
		service: NewService(orders, uow, zap.NewNop()),
		orders:  orders,
	}
}

func (f *fixture) placeOrder(t *testing.T) string {
	t.Helper()
	return f.placeOrderFor(t, shared.NewCustomerID())
}

func (f *fixture) placeOrderFor(t *testing.T, customer shared.CustomerID) string {
	t.Helper()
	ctx := context.Background()
	id, err := f.orders.NextIdentity(ctx)
	if err != nil {
		t.Fatalf("NextIdentity: %v", err)
	}

	mealID, _ := shared.NewMealID(1)
	count, _ := shared.NewCount(2)
	price, _ := shared.NewPrice(1000)
	item, err := order.NewOrderItem(mealID, count, price)
	if err != nil {
		t.Fatalf("NewOrderItem: %v", err)
	}
	address, _ := order.NewAddress("Baker Street", 221)

	o, err := order.NewShopOrder(id, customer, address, []order.OrderItem{item})
	if err != nil {
		t.Fatalf("NewShopOrder: %v", err)
	}
	o.PopEvents()
	if err := f.orders.Save(ctx, o); err != nil {
		t.Fatalf("save order: %v", err)
	}
	return strconv.FormatInt(id.Int64(), 10)
}

func (f *fixture) status(t *testing.T, id string) string {
	t.Helper()
	dto, err := f.service.GetOrder(context.Background(), id)
	if err != nil {
		t.Fatalf("GetOrder(%s): %v", id, err)
	}
	return dto.Status
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)
	ctx := context.Background()

	if got := f.status(t, id); got != string(order.StatusNew) {
		t.Fatalf("initial status = %s, want NEW", got)
	}

	if err := f.service.ConfirmOrder(ctx, id); err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	if got := f.status(t, id); got != string(order.StatusConfirmed) {
		t.Errorf("status after confirm = %s, want CONFIRMED", got)
	}

	if err := f.service.PayOrder(ctx, id); err != nil {
		t.Fatalf("PayOrder: %v", err)
	}
	if err := f.service.CompleteOrder(ctx, id); err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}
	if got := f.status(t, id); got != string(order.StatusCompleted) {
		t.Errorf("final status = %s, want COMPLETED", got)
	}
}

func TestCancelAfterPaymentFails(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)
	ctx := context.Background()

	if err := f.service.ConfirmOrder(ctx, id); err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	if err := f.service.PayOrder(ctx, id); err != nil {
		t.Fatalf("PayOrder: %v", err)
	}

	if err := f.service.CancelOrder(ctx, id); !errors.Is(err, order.ErrIllegalTransition) {
		t.Errorf("error = %v, want ErrIllegalTransition", err)
	}
}

func TestSkippingStatusFails(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)

	if err := f.service.PayOrder(context.Background(), id); !errors.Is(err, order.ErrIllegalTransition) {
		t.Errorf("paying a NEW order: error = %v, want ErrIllegalTransition", err)
	}
}

func TestGetUnknownOrderFails(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.GetOrder(context.Background(), "777"); !errors.Is(err, order.ErrShopOrderNotFound) {
		t.Errorf("error = %v, want ErrShopOrderNotFound", err)
	}
}

func TestGetLastOrderReturnsNewestOne(t *testing.T) {
	f := newFixture(t)
	customer := shared.NewCustomerID()
	ctx := context.Background()

	first := f.placeOrderFor(t, customer)
	if err := f.service.ConfirmOrder(ctx, first); err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	if err := f.service.CancelOrder(ctx, first); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	second := f.placeOrderFor(t, customer)

	last, err := f.service.GetLastOrder(ctx, customer.String())
	if err != nil {
		t.Fatalf("GetLastOrder: %v", err)
	}
	if strconv.FormatInt(last.ID, 10) != second {
		t.Errorf("last order id = %d, want %s", last.ID, second)
	}
}

func TestGetLastOrderWithoutOrdersFails(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.GetLastOrder(context.Background(), shared.NewCustomerID().String()); !errors.Is(err, order.ErrShopOrderNotFound) {
		t.Errorf("error = %v, want ErrShopOrderNotFound", err)
	}
}

func TestListOrdersPagesByID(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.placeOrder(t)
	}
	ctx := context.Background()

	page, err := f.service.ListOrders(ctx, 0, 3)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("first page = %d orders, want 3", len(page))
	}

	next, err := f.service.ListOrders(ctx, page[len(page)-1].ID, 3)
	if err != nil {
		t.Fatalf("ListOrders second page: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("second page = %d orders, want 2", len(next))
	}
	if next[0].ID <= page[len(page)-1].ID {
		t.Errorf("pages overlap: %d after %d", next[0].ID, page[len(page)-1].ID)
	}
}
