package shared

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// ErrIDGeneration is returned when a raw value cannot become an identifier.
// Sequence-backed identifiers accept only 0 < value < MaxInt64.
var ErrIDGeneration = errors.New("id must be positive and below max int64")

// IDGenerator allocates raw values for sequence-backed identifiers.
// Implementations must never repeat a value; sequence-backed ones must be
// strictly increasing. UUID-backed identifiers do not use this port.
type IDGenerator interface {
	NextID(ctx context.Context) (int64, error)
}

func validateID(value int64) error {
	if value <= 0 || value == math.MaxInt64 {
		return ErrIDGeneration
	}
	return nil
}

// MealID identifies a meal on the menu. A distinct type per aggregate keeps
// identifiers from being mixed up across aggregates.
type MealID struct {
	value int64
}

func NewMealID(value int64) (MealID, error) {
	if err := validateID(value); err != nil {
		return MealID{}, err
	}
	return MealID{value: value}, nil
}

// ParseMealID parses the decimal string form, as received on the wire.
func ParseMealID(s string) (MealID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return MealID{}, ErrIDGeneration
	}
	return NewMealID(value)
}

func (id MealID) Int64() int64   { return id.value }
func (id MealID) String() string { return strconv.FormatInt(id.value, 10) }
func (id MealID) IsZero() bool   { return id.value == 0 }

// CartID identifies a customer's cart.
type CartID struct {
	value int64
}

func NewCartID(value int64) (CartID, error) {
	if err := validateID(value); err != nil {
		return CartID{}, err
	}
	return CartID{value: value}, nil
}

func ParseCartID(s string) (CartID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return CartID{}, ErrIDGeneration
	}
	return NewCartID(value)
}

func (id CartID) Int64() int64   { return id.value }
func (id CartID) String() string { return strconv.FormatInt(id.value, 10) }
func (id CartID) IsZero() bool   { return id.value == 0 }

// ShopOrderID identifies a shop order.
type ShopOrderID struct {
	value int64
}

func NewShopOrderID(value int64) (ShopOrderID, error) {
	if err := validateID(value); err != nil {
		return ShopOrderID{}, err
	}
	return ShopOrderID{value: value}, nil
}

func ParseShopOrderID(s string) (ShopOrderID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ShopOrderID{}, ErrIDGeneration
	}
	return NewShopOrderID(value)
}

func (id ShopOrderID) Int64() int64   { return id.value }
func (id ShopOrderID) String() string { return strconv.FormatInt(id.value, 10) }
func (id ShopOrderID) IsZero() bool   { return id.value == 0 }

// CustomerID identifies a customer. Customers come from outside the shop,
// so the identifier is a UUID with no ordering guarantee.
type CustomerID struct {
	value string
}

func NewCustomerID() CustomerID {
	return CustomerID{value: uuid.New().String()}
}

func ParseCustomerID(s string) (CustomerID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CustomerID{}, ErrIDGeneration
	}
	return CustomerID{value: s}, nil
}

func (id CustomerID) String() string { return id.value }
func (id CustomerID) IsZero() bool   { return id.value == "" }

// EventID identifies a domain event instance.
type EventID struct {
	value string
}

func NewEventID() EventID {
	return EventID{value: uuid.New().String()}
}

func ParseEventID(s string) (EventID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return EventID{}, ErrIDGeneration
	}
	return EventID{value: s}, nil
}

func (id EventID) String() string { return id.value }
func (id EventID) IsZero() bool   { return id.value == "" }
