// Package apperr defines the request-level error taxonomy. Every error here is
// recoverable: a handler maps it to a status code and the request is done.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmptySale    = errors.New("sale must contain at least one item")
	ErrNoValidItems = errors.New("no valid items in the sale")
	ErrSKUExists    = errors.New("SKU already exists")
	ErrNameExists   = errors.New("name already exists")
)

// InsufficientStockError is returned when an "out" movement or a sale line
// requests more units than the product currently holds.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

// ValidationError wraps a failed input validation with the offending field.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
