package mysql

import (
	"context"
	"fmt"

	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence"
	"mealshop/infrastructure/persistence/retry"
	"mealshop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork implements the unit of work pattern with GORM.
// Execute wraps the use case in a transaction, drains the events of every
// registered aggregate into the outbox table within that transaction, and
// after commit hands the same events to the in-process bus so local
// reactions (like cart cleanup) run promptly. The outbox relay remains
// the reliable path when an in-process handler fails.
type UnitOfWork struct {
	db          *gorm.DB
	outbox      *OutboxRepository
	bus         shared.DomainEventPublisher
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB, bus shared.DomainEventPublisher) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		outbox:      NewOutboxRepository(db),
		bus:         bus,
		retryConfig: retry.DefaultConfig,
	}
}

// SetRetryConfig updates the retry configuration for this UnitOfWork
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		registry := shared.NewRegistry()

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := shared.ContextWithRegistry(persistence.ContextWithTx(ctx, tx), registry)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		events := registry.PopAllEvents()
		for _, event := range events {
			if err := u.outbox.SaveEvent(txCtx, event); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to save event to outbox: %w", err)
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		// Best effort: the commit already happened, a failed handler is
		// only logged. The outbox relay delivers the event regardless.
		if len(events) > 0 && u.bus != nil {
			if err := u.bus.Publish(ctx, events...); err != nil {
				logger.Warn("event handlers failed after commit", zap.Error(err))
			}
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

func (u *UnitOfWork) RegisterNew(ctx context.Context, aggregate shared.AggregateRoot) {
	if registry := shared.RegistryFromContext(ctx); registry != nil {
		registry.AddNew(aggregate)
	}
}

func (u *UnitOfWork) RegisterDirty(ctx context.Context, aggregate shared.AggregateRoot) {
	if registry := shared.RegistryFromContext(ctx); registry != nil {
		registry.AddDirty(aggregate)
	}
}

func (u *UnitOfWork) RegisterRemoved(ctx context.Context, aggregate shared.AggregateRoot) {
	if registry := shared.RegistryFromContext(ctx); registry != nil {
		registry.AddRemoved(aggregate)
	}
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
