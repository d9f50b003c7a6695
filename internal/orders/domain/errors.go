package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by order lookups when no order matches the id.
var ErrNotFound = errors.New("order not found")

// ErrorKind distinguishes the validation failures the order workflow can
// produce. All of them mean the request as given can never succeed; none
// is retryable.
type ErrorKind string

const (
	KindInvalidCustomer   ErrorKind = "INVALID_CUSTOMER"
	KindProductsNotFound  ErrorKind = "PRODUCTS_NOT_FOUND"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
)

// ValidationError is a domain validation failure. ProductIDs carries the
// full list of offending products for the two product-related kinds, so the
// caller can surface every problem at once instead of the first one.
type ValidationError struct {
	Kind       ErrorKind
	ProductIDs []string
	message    string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewInvalidCustomer reports that the customer id did not resolve.
func NewInvalidCustomer(customerID string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidCustomer,
		message: fmt.Sprintf("customer id %q is not valid", customerID),
	}
}

// NewProductsNotFound reports products that could not be resolved from the
// catalog. The message enumerates every missing id.
func NewProductsNotFound(productIDs []string) *ValidationError {
	return &ValidationError{
		Kind:       KindProductsNotFound,
		ProductIDs: productIDs,
		message:    fmt.Sprintf("could not find products with ids: %s", strings.Join(productIDs, ", ")),
	}
}

// NewInsufficientStock reports every product whose requested quantity
// exceeds the available stock.
func NewInsufficientStock(productIDs []string) *ValidationError {
	return &ValidationError{
		Kind:       KindInsufficientStock,
		ProductIDs: productIDs,
		message:    fmt.Sprintf("stock quantity below requested amount for products: %s", strings.Join(productIDs, ", ")),
	}
}
