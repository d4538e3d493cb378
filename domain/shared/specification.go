package shared

import "context"

// Specification encapsulates a business rule for selecting aggregates.
// In-memory repositories evaluate specifications directly; SQL repositories
// translate the common ones to WHERE clauses.
type Specification[T any] interface {
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

type andSpecification[T any] struct {
	left, right Specification[T]
}

func (s andSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return s.left.IsSatisfiedBy(ctx, entity) && s.right.IsSatisfiedBy(ctx, entity)
}

// And combines two specifications with logical AND.
func And[T any](left, right Specification[T]) Specification[T] {
	return andSpecification[T]{left: left, right: right}
}

type orSpecification[T any] struct {
	left, right Specification[T]
}

func (s orSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return s.left.IsSatisfiedBy(ctx, entity) || s.right.IsSatisfiedBy(ctx, entity)
}

// Or combines two specifications with logical OR.
func Or[T any](left, right Specification[T]) Specification[T] {
	return orSpecification[T]{left: left, right: right}
}

type notSpecification[T any] struct {
	inner Specification[T]
}

func (s notSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return !s.inner.IsSatisfiedBy(ctx, entity)
}

// Not negates a specification.
func Not[T any](inner Specification[T]) Specification[T] {
	return notSpecification[T]{inner: inner}
}
