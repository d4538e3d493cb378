package mysql

import (
	"fmt"

	"mealshop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the mysql backend uses.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.MealPO{},
		&po.CartPO{},
		&po.CartItemPO{},
		&po.ShopOrderPO{},
		&po.ShopOrderItemPO{},
		&po.OutboxEventPO{},
		&po.SequencePO{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
