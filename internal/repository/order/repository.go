package order

import (
	"context"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

// Repository persists checkout submissions.
type Repository interface {
	// Create stores the order and decrements stock for every line in a
	// single transaction. It returns the stored order with its assigned ID,
	// or domain.ErrOutOfStock when any line asks for more units than remain.
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
}
