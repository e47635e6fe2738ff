package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCart indicates the checkout cart failed validation.
	ErrInvalidCart = errors.New("invalid cart")
	// ErrOrderExists indicates an order with this order number is already persisted.
	ErrOrderExists = errors.New("order already exists")
)
