// Package po holds the persistence objects of the mysql backend. POs are
// plain row mappings; GORM associations are not used so the aggregate
// boundaries stay in the domain layer.
package po

import (
	"time"

	"mealshop/domain/meal"
)

// MealPO Meal persistence object
type MealPO struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"size:200;index;not null"`
	Description string    `gorm:"size:2000;not null"`
	PriceAmount int64     `gorm:"not null"`
	Removed     bool      `gorm:"index;not null;default:false"`
	Version     int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (MealPO) TableName() string {
	return "meals"
}

// FromMealDomain Convert aggregate to persistence object
func FromMealDomain(m *meal.Meal) *MealPO {
	return &MealPO{
		ID:          m.ID().Int64(),
		Name:        m.Name().Value(),
		Description: m.Description().Value(),
		PriceAmount: m.Price().Amount(),
		Removed:     m.IsRemoved(),
		Version:     m.Version().Int64(),
	}
}

// ToDomain Rebuild the aggregate from the row
func (p *MealPO) ToDomain() (*meal.Meal, error) {
	return meal.RebuildMeal(meal.ReconstructionDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceAmount: p.PriceAmount,
		Removed:     p.Removed,
		Version:     p.Version,
	})
}
