package shared

import (
	"context"
	"sync"
)

// UnitOfWork manages the transaction boundary of a use-case call and the
// collection of events from the aggregates touched inside it. The unit of
// work is the only place pending events are popped: it stores them
// atomically with the aggregate state and hands them to the publisher.
//
// Registration goes through the context so one UnitOfWork value serves
// concurrent requests: Execute seeds a per-call registry, Register* append
// to it.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(ctx context.Context, aggregate AggregateRoot)
	RegisterDirty(ctx context.Context, aggregate AggregateRoot)
	RegisterRemoved(ctx context.Context, aggregate AggregateRoot)
}

// OutboxRepository stores popped events durably inside the business
// transaction so a relay can publish them after commit.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}

// Registry is the per-Execute collection of touched aggregates. Unit of
// work implementations seed it into the context and drain it at commit.
type Registry struct {
	mu      sync.Mutex
	new     []AggregateRoot
	dirty   []AggregateRoot
	removed []AggregateRoot
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) AddNew(aggregate AggregateRoot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.new = append(r.new, aggregate)
}

func (r *Registry) AddDirty(aggregate AggregateRoot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirty = append(r.dirty, aggregate)
}

func (r *Registry) AddRemoved(aggregate AggregateRoot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, aggregate)
}

// All returns every registered aggregate, new first, in registration order.
func (r *Registry) All() []AggregateRoot {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]AggregateRoot, 0, len(r.new)+len(r.dirty)+len(r.removed))
	all = append(all, r.new...)
	all = append(all, r.dirty...)
	all = append(all, r.removed...)
	return all
}

// PopAllEvents drains the pending events of every registered aggregate.
func (r *Registry) PopAllEvents() []DomainEvent {
	var events []DomainEvent
	for _, aggregate := range r.All() {
		events = append(events, aggregate.PopEvents()...)
	}
	return events
}

type registryKey struct{}

// ContextWithRegistry attaches a per-call registry to the context.
func ContextWithRegistry(ctx context.Context, registry *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, registry)
}

// RegistryFromContext returns the registry seeded by Execute, or nil when
// called outside a unit of work.
func RegistryFromContext(ctx context.Context) *Registry {
	registry, _ := ctx.Value(registryKey{}).(*Registry)
	return registry
}
