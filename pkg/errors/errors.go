// Package errors defines the application error envelope the API layer
// speaks: a stable error code plus message, mapped from domain errors by
// sentinel, never by message text.
package errors

import (
	"errors"
	"net/http"

	"mealshop/domain/cart"
	"mealshop/domain/meal"
	"mealshop/domain/order"
	"mealshop/domain/shared"
)

// ErrorCode is the machine-readable error identifier returned to clients.
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes
	CodeMealNotFound      ErrorCode = "MEAL_NOT_FOUND"
	CodeMealExists        ErrorCode = "MEAL_ALREADY_EXISTS"
	CodeCartNotFound      ErrorCode = "CART_NOT_FOUND"
	CodeEmptyCart         ErrorCode = "EMPTY_CART"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeActiveOrderExists ErrorCode = "ACTIVE_ORDER_EXISTS"
	CodeInvalidOrderState ErrorCode = "INVALID_ORDER_STATE"
	CodeConcurrentUpdate  ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError is the application-level error envelope.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the error code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeMealNotFound, CodeCartNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeMealExists, CodeActiveOrderExists, CodeConcurrentUpdate:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeEmptyCart, CodeInvalidOrderState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }

// Is reports whether err carries the given error code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// domainCodes pairs each domain sentinel with its application code.
var domainCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{meal.ErrMealNotFound, CodeMealNotFound},
	{meal.ErrMealAlreadyExist, CodeMealExists},
	{meal.ErrEmptyName, CodeValidation},
	{meal.ErrEmptyDescription, CodeValidation},
	{cart.ErrCartNotFound, CodeCartNotFound},
	{cart.ErrEmptyCart, CodeEmptyCart},
	{order.ErrShopOrderNotFound, CodeOrderNotFound},
	{order.ErrAlreadyHasActive, CodeActiveOrderExists},
	{order.ErrIllegalTransition, CodeInvalidOrderState},
	{order.ErrInvalidAddress, CodeValidation},
	{order.ErrNoOrderItems, CodeValidation},
	{order.ErrUnknownStatus, CodeValidation},
	{order.ErrZeroCountItem, CodeValidation},
	{shared.ErrIDGeneration, CodeValidation},
	{shared.ErrNonPositivePrice, CodeValidation},
	{shared.ErrPriceOverflow, CodeValidation},
	{shared.ErrNegativeCount, CodeValidation},
	{shared.ErrCountLimitExceeded, CodeValidation},
	{shared.ErrConcurrentModification, CodeConcurrentUpdate},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrInvalidInput, CodeValidation},
}

// FromDomainError maps a domain error to its application error. Unknown
// errors become internal errors with a generic message so domain internals
// never leak to clients by accident.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, mapping := range domainCodes {
		if errors.Is(err, mapping.sentinel) {
			return Wrap(err, mapping.code, err.Error())
		}
	}
	return Wrap(err, CodeInternal, "internal server error")
}
