package mysql

import (
	"context"
	"errors"

	"mealshop/domain/cart"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence"
	"mealshop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CartRepository MySQL/GORM implementation of the cart repository.
// Cart lines are managed manually (delete then insert), no associations.
type CartRepository struct {
	db  *gorm.DB
	ids *IDGenerator
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db, ids: NewIDGenerator(db, "cart")}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CartRepository) NextIdentity(ctx context.Context) (shared.CartID, error) {
	raw, err := r.ids.NextID(ctx)
	if err != nil {
		return shared.CartID{}, err
	}
	return shared.NewCartID(raw)
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, c)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, c)
	})
}

func (r *CartRepository) saveWithTx(tx *gorm.DB, c *cart.Cart) error {
	cartPO, itemPOs := po.FromCartDomain(c)

	if c.IsNew() {
		if err := tx.Create(cartPO).Error; err != nil {
			return err
		}
		c.ClearNew()
	} else {
		expected := c.Version().Int64()
		if c.HasPendingEvents() {
			expected = c.Version().Previous().Int64()
		}

		result := tx.Model(&po.CartPO{}).
			Where("id = ? AND version = ?", cartPO.ID, expected).
			Updates(map[string]interface{}{
				"customer_id": cartPO.CustomerID,
				"version":     cartPO.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrentModification
		}
	}

	// Replace cart lines: delete then insert keeps the mapping simple.
	if err := tx.Where("cart_id = ?", cartPO.ID).Delete(&po.CartItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID shared.CustomerID) (*cart.Cart, error) {
	db := r.getDB(ctx)

	var cartPO po.CartPO
	result := db.First(&cartPO, "customer_id = ?", customerID.String())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cart.NewCartNotFoundError(customerID)
		}
		return nil, result.Error
	}

	var itemPOs []po.CartItemPO
	if err := db.Where("cart_id = ?", cartPO.ID).Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return cartPO.ToDomain(itemPOs)
}

// Delete removes the cart and its lines. Deleting a missing cart is a
// no-op so the after-checkout cleanup can run more than once.
func (r *CartRepository) Delete(ctx context.Context, id shared.CartID) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.deleteWithTx(tx, id)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.deleteWithTx(tx, id)
	})
}

func (r *CartRepository) deleteWithTx(tx *gorm.DB, id shared.CartID) error {
	if err := tx.Where("cart_id = ?", id.Int64()).Delete(&po.CartItemPO{}).Error; err != nil {
		return err
	}
	return tx.Delete(&po.CartPO{}, "id = ?", id.Int64()).Error
}

// Compile-time interface implementation check
var _ cart.CartRepository = (*CartRepository)(nil)
