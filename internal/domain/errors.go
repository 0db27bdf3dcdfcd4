package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found or is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (e.g. duplicate email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned by checkout when the cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition indicates an order status change that the
	// lifecycle graph does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflictRetryable indicates a transaction aborted by a concurrent
	// stock conflict. Unlike insufficient stock, the caller may retry.
	ErrConflictRetryable = errors.New("conflicting concurrent update, retry")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError reports a requested quantity exceeding the stock
// available at the time of the check. Available carries the observed stock so
// callers can react.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}
