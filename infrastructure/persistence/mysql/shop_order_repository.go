package mysql

import (
	"context"
	"errors"

	"mealshop/domain/order"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence"
	"mealshop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// activeStatuses are the statuses that occupy the customer's single
// active-order slot, mirrored from the domain status machine.
var activeStatuses = []string{
	string(order.StatusNew),
	string(order.StatusConfirmed),
	string(order.StatusPaid),
}

// ShopOrderRepository MySQL/GORM implementation of the order repository.
// Order lines are managed manually, no associations.
type ShopOrderRepository struct {
	db  *gorm.DB
	ids *IDGenerator
}

func NewShopOrderRepository(db *gorm.DB) *ShopOrderRepository {
	return &ShopOrderRepository{db: db, ids: NewIDGenerator(db, "shop_order")}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ShopOrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ShopOrderRepository) NextIdentity(ctx context.Context) (shared.ShopOrderID, error) {
	raw, err := r.ids.NextID(ctx)
	if err != nil {
		return shared.ShopOrderID{}, err
	}
	return shared.NewShopOrderID(raw)
}

func (r *ShopOrderRepository) Save(ctx context.Context, o *order.ShopOrder) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *ShopOrderRepository) saveWithTx(tx *gorm.DB, o *order.ShopOrder) error {
	orderPO, itemPOs := po.FromShopOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		o.ClearNew()
		return nil
	}

	expected := o.Version().Int64()
	if o.HasPendingEvents() {
		expected = o.Version().Previous().Int64()
	}

	result := tx.Model(&po.ShopOrderPO{}).
		Where("id = ? AND version = ?", orderPO.ID, expected).
		Updates(map[string]interface{}{
			"status":  orderPO.Status,
			"version": orderPO.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}
	// Items are immutable after checkout, no need to rewrite them.
	return nil
}

func (r *ShopOrderRepository) FindByID(ctx context.Context, id shared.ShopOrderID) (*order.ShopOrder, error) {
	db := r.getDB(ctx)

	var orderPO po.ShopOrderPO
	result := db.First(&orderPO, "id = ?", id.Int64())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewShopOrderNotFoundError(id)
		}
		return nil, result.Error
	}
	return r.withItems(db, orderPO)
}

func (r *ShopOrderRepository) FindActiveByCustomerID(ctx context.Context, customerID shared.CustomerID) (*order.ShopOrder, error) {
	db := r.getDB(ctx)

	var orderPO po.ShopOrderPO
	result := db.First(&orderPO, "customer_id = ? AND status IN ?", customerID.String(), activeStatuses)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(order.ErrShopOrderNotFound, "shop_order", "",
				"no active order for customer "+customerID.String())
		}
		return nil, result.Error
	}
	return r.withItems(db, orderPO)
}

// FindLastByCustomerID returns the customer's most recently placed order,
// the one with the highest id.
func (r *ShopOrderRepository) FindLastByCustomerID(ctx context.Context, customerID shared.CustomerID) (*order.ShopOrder, error) {
	db := r.getDB(ctx)

	var orderPO po.ShopOrderPO
	result := db.Where("customer_id = ?", customerID.String()).
		Order("id DESC").
		First(&orderPO)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(order.ErrShopOrderNotFound, "shop_order", "",
				"no orders for customer "+customerID.String())
		}
		return nil, result.Error
	}
	return r.withItems(db, orderPO)
}

func (r *ShopOrderRepository) FindByCustomerID(ctx context.Context, customerID shared.CustomerID) ([]*order.ShopOrder, error) {
	db := r.getDB(ctx)

	var orderPOs []po.ShopOrderPO
	if err := db.Where("customer_id = ?", customerID.String()).
		Order("id ASC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.allWithItems(db, orderPOs)
}

func (r *ShopOrderRepository) FindAll(ctx context.Context, startID int64, limit int) ([]*order.ShopOrder, error) {
	db := r.getDB(ctx)

	var orderPOs []po.ShopOrderPO
	if err := db.Where("id > ?", startID).
		Order("id ASC").
		Limit(limit).
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.allWithItems(db, orderPOs)
}

func (r *ShopOrderRepository) withItems(db *gorm.DB, orderPO po.ShopOrderPO) (*order.ShopOrder, error) {
	var itemPOs []po.ShopOrderItemPO
	if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs)
}

func (r *ShopOrderRepository) allWithItems(db *gorm.DB, orderPOs []po.ShopOrderPO) ([]*order.ShopOrder, error) {
	orders := make([]*order.ShopOrder, 0, len(orderPOs))
	for _, orderPO := range orderPOs {
		o, err := r.withItems(db, orderPO)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Compile-time interface implementation check
var _ order.ShopOrderRepository = (*ShopOrderRepository)(nil)
