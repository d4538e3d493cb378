package mysql

import (
	"context"
	"errors"

	"mealshop/domain/meal"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence"
	"mealshop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// MealRepository MySQL/GORM implementation of the meal repository.
// GORM associations are not used; the aggregate maps to a single row.
type MealRepository struct {
	db  *gorm.DB
	ids *IDGenerator
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db, ids: NewIDGenerator(db, "meal")}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *MealRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *MealRepository) NextIdentity(ctx context.Context) (shared.MealID, error) {
	raw, err := r.ids.NextID(ctx)
	if err != nil {
		return shared.MealID{}, err
	}
	return shared.NewMealID(raw)
}

// Save inserts a new meal or updates an existing one with an optimistic
// version check: the update only lands when the stored version is still
// the one the aggregate was loaded with.
func (r *MealRepository) Save(ctx context.Context, m *meal.Meal) error {
	db := r.getDB(ctx)
	mealPO := po.FromMealDomain(m)

	if m.IsNew() {
		if err := db.Create(mealPO).Error; err != nil {
			return err
		}
		m.ClearNew()
		return nil
	}

	expected := m.Version().Int64()
	if m.HasPendingEvents() {
		expected = m.Version().Previous().Int64()
	}

	result := db.Model(&po.MealPO{}).
		Where("id = ? AND version = ?", mealPO.ID, expected).
		Updates(map[string]interface{}{
			"name":         mealPO.Name,
			"description":  mealPO.Description,
			"price_amount": mealPO.PriceAmount,
			"removed":      mealPO.Removed,
			"version":      mealPO.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}
	return nil
}

func (r *MealRepository) FindByID(ctx context.Context, id shared.MealID) (*meal.Meal, error) {
	var mealPO po.MealPO
	result := r.getDB(ctx).First(&mealPO, "id = ?", id.Int64())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, meal.NewMealNotFoundError(id)
		}
		return nil, result.Error
	}
	return mealPO.ToDomain()
}

// FindByName looks only among non-removed meals, so removal frees the name.
func (r *MealRepository) FindByName(ctx context.Context, name meal.MealName) (*meal.Meal, error) {
	var mealPO po.MealPO
	result := r.getDB(ctx).First(&mealPO, "name = ? AND removed = ?", name.Value(), false)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, meal.NewMealNotFoundByNameError(name)
		}
		return nil, result.Error
	}
	return mealPO.ToDomain()
}

func (r *MealRepository) FindAll(ctx context.Context) ([]*meal.Meal, error) {
	var mealPOs []po.MealPO
	if err := r.getDB(ctx).
		Where("removed = ?", false).
		Order("id ASC").
		Find(&mealPOs).Error; err != nil {
		return nil, err
	}

	meals := make([]*meal.Meal, 0, len(mealPOs))
	for _, mealPO := range mealPOs {
		m, err := mealPO.ToDomain()
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// Compile-time interface implementation check
var _ meal.MealRepository = (*MealRepository)(nil)
