package po

import (
	"time"

	"mealshop/domain/cart"
)

// CartPO Cart persistence object
type CartPO struct {
	ID         int64     `gorm:"primaryKey"`
	CustomerID string    `gorm:"size:64;uniqueIndex;not null"`
	Version    int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO Cart line persistence object
type CartItemPO struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	CartID int64 `gorm:"index;not null"`
	MealID int64 `gorm:"not null"`
	Count  int64 `gorm:"not null"`
}

func (CartItemPO) TableName() string {
	return "cart_items"
}

// FromCartDomain Convert aggregate to persistence objects
func FromCartDomain(c *cart.Cart) (*CartPO, []CartItemPO) {
	cartPO := &CartPO{
		ID:         c.ID().Int64(),
		CustomerID: c.CustomerID().String(),
		Version:    c.Version().Int64(),
		CreatedAt:  c.CreatedAt(),
	}

	meals := c.Meals()
	items := make([]CartItemPO, 0, len(meals))
	for mealID, count := range meals {
		items = append(items, CartItemPO{
			CartID: c.ID().Int64(),
			MealID: mealID.Int64(),
			Count:  count.Value(),
		})
	}
	return cartPO, items
}

// ToDomain Rebuild the aggregate from its rows
func (p *CartPO) ToDomain(items []CartItemPO) (*cart.Cart, error) {
	itemDTOs := make([]cart.ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, cart.ItemDTO{MealID: item.MealID, Count: item.Count})
	}
	return cart.RebuildCart(cart.ReconstructionDTO{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Items:      itemDTOs,
		CreatedAt:  p.CreatedAt,
		Version:    p.Version,
	})
}
