package memory

import (
	"context"

	"go.uber.org/zap"

	"mealshop/domain/shared"
)

// UnitOfWork runs the use case, then publishes the popped events straight
// to the in-process bus. There is no real transaction to roll back, so a
// failed fn simply discards the registry.
type UnitOfWork struct {
	bus    shared.DomainEventPublisher
	logger *zap.Logger
}

func NewUnitOfWork(bus shared.DomainEventPublisher, logger *zap.Logger) *UnitOfWork {
	return &UnitOfWork{bus: bus, logger: logger}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	registry := shared.NewRegistry()
	ctx = shared.ContextWithRegistry(ctx, registry)

	if err := fn(ctx); err != nil {
		return err
	}

	events := registry.PopAllEvents()
	if len(events) == 0 {
		return nil
	}

	// Publishing is best effort: the state change already happened.
	if err := u.bus.Publish(ctx, events...); err != nil {
		u.logger.Warn("event handlers failed after commit", zap.Error(err))
	}
	return nil
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

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
