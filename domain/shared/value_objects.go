package shared

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonPositivePrice is returned when a price is zero or negative.
	ErrNonPositivePrice = errors.New("price must be positive")

	// ErrPriceOverflow is returned when a price computation exceeds int64.
	ErrPriceOverflow = errors.New("price arithmetic overflow")

	// ErrCountLimitExceeded is returned when a count would exceed MaxCount.
	ErrCountLimitExceeded = fmt.Errorf("count limit of %d exceeded", MaxCount)

	// ErrNegativeCount is returned when a count would drop below zero.
	ErrNegativeCount = errors.New("count cannot be negative")
)

// Price is a monetary amount in minor units (cents). Valid prices are
// strictly positive; construction is the only validation point, so no
// aggregate method ever re-checks it.
type Price struct {
	amount int64
}

func NewPrice(amount int64) (Price, error) {
	if amount <= 0 {
		return Price{}, ErrNonPositivePrice
	}
	return Price{amount: amount}, nil
}

// Amount returns the price in minor units.
func (p Price) Amount() int64 { return p.amount }

// Add returns the sum of two prices.
func (p Price) Add(other Price) (Price, error) {
	if p.amount > math.MaxInt64-other.amount {
		return Price{}, ErrPriceOverflow
	}
	return Price{amount: p.amount + other.amount}, nil
}

// Multiply returns the price scaled by a count. The count must be positive.
func (p Price) Multiply(count Count) (Price, error) {
	n := count.Value()
	if n <= 0 {
		return Price{}, ErrNonPositivePrice
	}
	if p.amount > math.MaxInt64/n {
		return Price{}, ErrPriceOverflow
	}
	return Price{amount: p.amount * n}, nil
}

func (p Price) Equals(other Price) bool { return p.amount == other.amount }

// String renders the amount as a decimal with two fraction digits.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", p.amount/100, p.amount%100)
}

// MaxCount bounds any quantity in the shop.
const MaxCount = int64(math.MaxInt32)

// Count is a non-negative bounded quantity.
type Count struct {
	value int64
}

func NewCount(value int64) (Count, error) {
	switch {
	case value < 0:
		return Count{}, ErrNegativeCount
	case value > MaxCount:
		return Count{}, ErrCountLimitExceeded
	}
	return Count{value: value}, nil
}

// OneCount is the quantity a cart line starts with.
func OneCount() Count { return Count{value: 1} }

func (c Count) Value() int64 { return c.value }
func (c Count) IsZero() bool { return c.value == 0 }

// Increment returns the count raised by one.
func (c Count) Increment() (Count, error) {
	if c.value >= MaxCount {
		return Count{}, ErrCountLimitExceeded
	}
	return Count{value: c.value + 1}, nil
}

// Decrement returns the count lowered by one.
func (c Count) Decrement() (Count, error) {
	if c.value == 0 {
		return Count{}, ErrNegativeCount
	}
	return Count{value: c.value - 1}, nil
}

func (c Count) Equals(other Count) bool { return c.value == other.value }
