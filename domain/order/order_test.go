package order

import (
	"context"
	"errors"
	"testing"

	"mealshop/domain/shared"
)

func item(t *testing.T, mealID, count, amount int64) OrderItem {
	t.Helper()
	id, err := shared.NewMealID(mealID)
	if err != nil {
		t.Fatalf("NewMealID: %v", err)
	}
	c, err := shared.NewCount(count)
	if err != nil {
		t.Fatalf("NewCount: %v", err)
	}
	p, err := shared.NewPrice(amount)
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	i, err := NewOrderItem(id, c, p)
	if err != nil {
		t.Fatalf("NewOrderItem: %v", err)
	}
	return i
}

func mustOrder(t *testing.T, items ...OrderItem) *ShopOrder {
	t.Helper()
	id, err := shared.NewShopOrderID(1)
	if err != nil {
		t.Fatalf("NewShopOrderID: %v", err)
	}
	address, err := NewAddress("Baker Street", 221)
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	o, err := NewShopOrder(id, shared.NewCustomerID(), address, items)
	if err != nil {
		t.Fatalf("NewShopOrder: %v", err)
	}
	return o
}

func TestAddressValidation(t *testing.T) {
	if _, err := NewAddress("  ", 1); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("blank street error = %v, want ErrInvalidAddress", err)
	}
	if _, err := NewAddress("Baker Street", 0); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("zero building error = %v, want ErrInvalidAddress", err)
	}
	if _, err := NewAddress("Baker Street", -3); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("negative building error = %v, want ErrInvalidAddress", err)
	}
}

// Two portions at 10.00 plus one at 5.00 must total 25.00.
func TestTotalPrice(t *testing.T) {
	o := mustOrder(t,
		item(t, 10, 2, 1000),
		item(t, 11, 1, 500),
	)
	if o.TotalPrice().Amount() != 2500 {
		t.Errorf("total = %d, want 2500", o.TotalPrice().Amount())
	}
	if o.TotalPrice().String() != "25.00" {
		t.Errorf("total string = %q, want \"25.00\"", o.TotalPrice().String())
	}
}

func TestNewShopOrderRaisesSingleCreatedEvent(t *testing.T) {
	o := mustOrder(t, item(t, 10, 1, 1000))

	if o.Status() != StatusNew {
		t.Errorf("status = %s, want NEW", o.Status())
	}
	events := o.PopEvents()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	created, ok := events[0].(ShopOrderCreated)
	if !ok {
		t.Fatalf("event type = %T, want ShopOrderCreated", events[0])
	}
	if created.TotalAmount != 1000 || len(created.Items) != 1 {
		t.Errorf("created payload = %+v", created)
	}
}

func TestNewShopOrderRejectsEmptyItems(t *testing.T) {
	id, _ := shared.NewShopOrderID(1)
	address, _ := NewAddress("Baker Street", 221)
	if _, err := NewShopOrder(id, shared.NewCustomerID(), address, nil); !errors.Is(err, ErrNoOrderItems) {
		t.Errorf("error = %v, want ErrNoOrderItems", err)
	}
}

func TestHappyPathLifecycle(t *testing.T) {
	o := mustOrder(t, item(t, 10, 1, 1000))
	o.PopEvents()

	steps := []struct {
		name string
		fn   func() error
		want Status
	}{
		{"confirm", o.Confirm, StatusConfirmed},
		{"pay", o.Pay, StatusPaid},
		{"complete", o.Complete, StatusCompleted},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if o.Status() != step.want {
			t.Fatalf("after %s status = %s, want %s", step.name, o.Status(), step.want)
		}
	}

	if o.IsActive() {
		t.Error("completed order should not be active")
	}
	if got := len(o.PopEvents()); got != 3 {
		t.Errorf("lifecycle queued %d events, want 3", got)
	}
}

func TestIllegalTransitions(t *testing.T) {
	// Pay before confirm.
	o := mustOrder(t, item(t, 10, 1, 1000))
	if err := o.Pay(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("pay from NEW error = %v, want ErrIllegalTransition", err)
	}

	// Complete before pay.
	if err := o.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := o.Complete(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("complete from CONFIRMED error = %v, want ErrIllegalTransition", err)
	}

	// Cancel after payment.
	if err := o.Pay(); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if err := o.Cancel(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("cancel from PAID error = %v, want ErrIllegalTransition", err)
	}
}

func TestCancelBeforePayment(t *testing.T) {
	fromNew := mustOrder(t, item(t, 10, 1, 1000))
	if err := fromNew.Cancel(); err != nil {
		t.Fatalf("cancel from NEW: %v", err)
	}
	if fromNew.IsActive() {
		t.Error("cancelled order should not be active")
	}

	fromConfirmed := mustOrder(t, item(t, 10, 1, 1000))
	_ = fromConfirmed.Confirm()
	if err := fromConfirmed.Cancel(); err != nil {
		t.Fatalf("cancel from CONFIRMED: %v", err)
	}
	if err := fromConfirmed.Confirm(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("confirm after cancel error = %v, want ErrIllegalTransition", err)
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"NEW", "CONFIRMED", "PAID", "COMPLETED", "CANCELLED"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Errorf("ParseStatus(%q): %v", raw, err)
		}
	}
	if _, err := ParseStatus("SHIPPED"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("unknown status error = %v, want ErrUnknownStatus", err)
	}
}

func TestRebuildShopOrder(t *testing.T) {
	customerID := shared.NewCustomerID()
	o, err := RebuildShopOrder(ReconstructionDTO{
		ID:         3,
		CustomerID: customerID.String(),
		Street:     "Baker Street",
		Building:   221,
		Items: []ItemDTO{
			{MealID: 10, Count: 2, PriceAmount: 1000},
		},
		Status:  "CONFIRMED",
		Version: 4,
	})
	if err != nil {
		t.Fatalf("RebuildShopOrder: %v", err)
	}
	if o.Status() != StatusConfirmed || o.Version() != 4 {
		t.Errorf("rebuilt order status=%s version=%d", o.Status(), o.Version())
	}
	if o.TotalPrice().Amount() != 2000 {
		t.Errorf("rebuilt total = %d, want 2000", o.TotalPrice().Amount())
	}
	if o.IsNew() {
		t.Error("rebuilt order should not be new")
	}

	if _, err := RebuildShopOrder(ReconstructionDTO{ID: 3, CustomerID: customerID.String(), Street: "s", Building: 1, Status: "NEW"}); !errors.Is(err, ErrNoOrderItems) {
		t.Errorf("rebuild without items error = %v, want ErrNoOrderItems", err)
	}
}

func TestActiveOrderSpecification(t *testing.T) {
	ctx := context.Background()
	o := mustOrder(t, item(t, 10, 1, 1000))
	spec := ActiveOrderOfCustomer(o.CustomerID())

	if !spec.IsSatisfiedBy(ctx, o) {
		t.Error("NEW order of the customer should satisfy the spec")
	}

	other := ActiveOrderOfCustomer(shared.NewCustomerID())
	if other.IsSatisfiedBy(ctx, o) {
		t.Error("another customer's spec should not match")
	}

	_ = o.Cancel()
	if spec.IsSatisfiedBy(ctx, o) {
		t.Error("cancelled order should not satisfy the spec")
	}
}
