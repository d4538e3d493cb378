package po

import (
	"time"

	"mealshop/domain/order"
)

// ShopOrderPO Shop order persistence object
type ShopOrderPO struct {
	ID          int64     `gorm:"primaryKey"`
	CustomerID  string    `gorm:"size:64;index;not null"`
	Street      string    `gorm:"size:500;not null"`
	Building    int       `gorm:"not null"`
	Status      string    `gorm:"size:20;index;not null"`
	TotalAmount int64     `gorm:"not null"`
	Version     int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ShopOrderPO) TableName() string {
	return "shop_orders"
}

// ShopOrderItemPO Order line persistence object. PriceAmount is the
// checkout snapshot, not the current menu price.
type ShopOrderItemPO struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	OrderID     int64 `gorm:"index;not null"`
	MealID      int64 `gorm:"not null"`
	Count       int64 `gorm:"not null"`
	PriceAmount int64 `gorm:"not null"`
}

func (ShopOrderItemPO) TableName() string {
	return "shop_order_items"
}

// FromShopOrderDomain Convert aggregate to persistence objects
func FromShopOrderDomain(o *order.ShopOrder) (*ShopOrderPO, []ShopOrderItemPO) {
	orderPO := &ShopOrderPO{
		ID:          o.ID().Int64(),
		CustomerID:  o.CustomerID().String(),
		Street:      o.Address().Street(),
		Building:    o.Address().Building(),
		Status:      string(o.Status()),
		TotalAmount: o.TotalPrice().Amount(),
		Version:     o.Version().Int64(),
		CreatedAt:   o.CreatedAt(),
	}

	items := make([]ShopOrderItemPO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ShopOrderItemPO{
			OrderID:     o.ID().Int64(),
			MealID:      item.MealID().Int64(),
			Count:       item.Count().Value(),
			PriceAmount: item.Price().Amount(),
		})
	}
	return orderPO, items
}

// ToDomain Rebuild the aggregate from its rows
func (p *ShopOrderPO) ToDomain(items []ShopOrderItemPO) (*order.ShopOrder, error) {
	itemDTOs := make([]order.ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, order.ItemDTO{
			MealID:      item.MealID,
			Count:       item.Count,
			PriceAmount: item.PriceAmount,
		})
	}
	return order.RebuildShopOrder(order.ReconstructionDTO{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Street:     p.Street,
		Building:   p.Building,
		Items:      itemDTOs,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		Version:    p.Version,
	})
}
