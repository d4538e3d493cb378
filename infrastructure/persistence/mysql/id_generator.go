package mysql

import (
	"context"
	"fmt"

	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence"
	"mealshop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// IDGenerator allocates identifiers from an auto-increment sequence table.
// Values are strictly increasing and survive restarts.
type IDGenerator struct {
	db    *gorm.DB
	scope string
}

func NewIDGenerator(db *gorm.DB, scope string) *IDGenerator {
	return &IDGenerator{db: db, scope: scope}
}

func (g *IDGenerator) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return g.db.WithContext(ctx)
}

func (g *IDGenerator) NextID(ctx context.Context) (int64, error) {
	row := po.SequencePO{Scope: g.scope}
	if err := g.getDB(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", g.scope, err)
	}
	return row.ID, nil
}

var _ shared.IDGenerator = (*IDGenerator)(nil)
