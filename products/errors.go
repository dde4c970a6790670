package products

import "errors"

// Rejection categories for write paths. Anything else coming out of the
// service is a remote fault wrapped with context.
var (
	ErrUnauthenticated = errors.New("not signed in")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("product not found")
	ErrInvalid         = errors.New("invalid product data")
)
