package shared

import (
	"errors"
	"testing"
)

func TestPriceMustBePositive(t *testing.T) {
	for _, amount := range []int64{0, -1, -1000} {
		if _, err := NewPrice(amount); !errors.Is(err, ErrNonPositivePrice) {
			t.Errorf("NewPrice(%d) error = %v, want ErrNonPositivePrice", amount, err)
		}
	}

	p, err := NewPrice(1000)
	if err != nil {
		t.Fatalf("NewPrice(1000): %v", err)
	}
	if p.Amount() != 1000 {
		t.Errorf("Amount() = %d, want 1000", p.Amount())
	}
	if p.String() != "10.00" {
		t.Errorf("String() = %q, want \"10.00\"", p.String())
	}
}

func TestPriceArithmetic(t *testing.T) {
	a, _ := NewPrice(1000)
	b, _ := NewPrice(500)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Amount() != 1500 {
		t.Errorf("sum = %d, want 1500", sum.Amount())
	}

	two, _ := NewCount(2)
	doubled, err := a.Multiply(two)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if doubled.Amount() != 2000 {
		t.Errorf("doubled = %d, want 2000", doubled.Amount())
	}

	zero, _ := NewCount(0)
	if _, err := a.Multiply(zero); !errors.Is(err, ErrNonPositivePrice) {
		t.Errorf("multiply by zero error = %v, want ErrNonPositivePrice", err)
	}
}

func TestCountBounds(t *testing.T) {
	if _, err := NewCount(-1); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("NewCount(-1) error = %v, want ErrNegativeCount", err)
	}
	if _, err := NewCount(MaxCount + 1); !errors.Is(err, ErrCountLimitExceeded) {
		t.Errorf("NewCount(max+1) error = %v, want ErrCountLimitExceeded", err)
	}

	c, err := NewCount(0)
	if err != nil {
		t.Fatalf("NewCount(0): %v", err)
	}
	if _, err := c.Decrement(); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("decrement at zero error = %v, want ErrNegativeCount", err)
	}

	c, err = c.Increment()
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if c.Value() != 1 {
		t.Errorf("incremented value = %d, want 1", c.Value())
	}

	atMax, _ := NewCount(MaxCount)
	if _, err := atMax.Increment(); !errors.Is(err, ErrCountLimitExceeded) {
		t.Errorf("increment at max error = %v, want ErrCountLimitExceeded", err)
	}
}
