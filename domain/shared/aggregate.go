package shared

// AggregateRoot is the entry point of a consistency boundary. All mutations
// of the boundary go through the root, which records domain events and
// carries the optimistic-concurrency version the storage layer checks.
type AggregateRoot interface {
	// Version returns the current optimistic-lock version.
	Version() Version

	// PopEvents returns and clears the uncommitted domain events. The unit
	// of work calls it exactly once per persistence cycle.
	PopEvents() []DomainEvent
}
