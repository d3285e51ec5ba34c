package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrOutOfStock indicates an order asked for more units than are available.
	ErrOutOfStock = errors.New("out of stock")
)
