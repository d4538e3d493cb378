/*
Package shared holds the building blocks every subdomain uses: the entity
primitive with its version and event queue, identifier and money value
objects, the domain-event contracts and the shared error machinery.

Error design:
 1. Sentinel errors support errors.Is() checks without carrying context.
 2. DomainError captures the stack at creation and formats it lazily.
 3. Domain errors never carry transport concepts such as HTTP status codes.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks concurrent modification or uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput marks failed construction-time validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConcurrentModification marks an optimistic-concurrency version
	// mismatch on save.
	ErrConcurrentModification = errors.New("aggregate was modified concurrently")
)

// DomainError is a structured error carrying business context and the stack
// of its creation point. It supports errors.Is/errors.As through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel for errors.Is().
	Err error

	// Entity names the aggregate the error belongs to ("meal", "cart", ...).
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured stack on demand.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// CaptureStack records the current call stack. skip is usually 3: Callers,
// CaptureStack and the NewXxxError constructor itself.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewDomainError wraps a sentinel in a DomainError with a captured stack.
// Subdomains use it to build their specific error constructors.
func NewDomainError(sentinel error, entity, field, message string) error {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewNotFoundError creates a "not found" domain error with a stack.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error with a stack.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error with a stack.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can report their creation stack.
// The API layer uses it to log the point of failure.
type Stacker interface {
	Stack() []string
}
