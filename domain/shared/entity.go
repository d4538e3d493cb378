package shared

// Version is the optimistic-concurrency counter of an aggregate instance.
// It starts at 0 for a fresh aggregate. The storage layer compares it with
// the stored value to detect conflicting writes; the domain core only
// produces and accepts it.
type Version int64

// Next returns the version after one more committed unit of work.
func (v Version) Next() Version { return v + 1 }

// Previous returns the version before the current unit of work.
func (v Version) Previous() Version { return v - 1 }

func (v Version) Int64() int64 { return int64(v) }

// Entity is the aggregate-root primitive: identity, version and the queue
// of uncommitted domain events. Aggregate types embed it and record their
// events through AddEvent.
type Entity[ID comparable] struct {
	id      ID
	version Version
	events  []DomainEvent
	isNew   bool
}

// NewEntity creates the primitive for a newly constructed aggregate with
// version 0 and an empty event queue.
func NewEntity[ID comparable](id ID) Entity[ID] {
	return Entity[ID]{id: id, isNew: true}
}

// RebuildEntity reconstructs the primitive for an aggregate loaded from
// storage. Repository use only.
func RebuildEntity[ID comparable](id ID, version Version) Entity[ID] {
	return Entity[ID]{id: id, version: version}
}

func (e *Entity[ID]) ID() ID           { return e.id }
func (e *Entity[ID]) Version() Version { return e.version }

// AddEvent appends a domain event to the uncommitted queue. The version
// advances only when the queue was empty before the append: one bump per
// unit of work, not one per event.
func (e *Entity[ID]) AddEvent(event DomainEvent) {
	if len(e.events) == 0 {
		e.version = e.version.Next()
	}
	e.events = append(e.events, event)
}

// PopEvents returns and clears the uncommitted event queue.
func (e *Entity[ID]) PopEvents() []DomainEvent {
	events := make([]DomainEvent, len(e.events))
	copy(events, e.events)
	e.events = nil
	return events
}

// HasPendingEvents reports whether any events are queued but not yet popped.
func (e *Entity[ID]) HasPendingEvents() bool { return len(e.events) > 0 }

// IsNew reports whether the aggregate was created in the current unit of
// work rather than loaded from storage. Repositories use it to choose
// between insert and version-checked update.
func (e *Entity[ID]) IsNew() bool { return e.isNew }

// ClearNew marks the aggregate as persisted. Repositories call it after a
// successful save.
func (e *Entity[ID]) ClearNew() { e.isNew = false }
