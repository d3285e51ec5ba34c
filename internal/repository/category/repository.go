package category

import (
	"context"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
}
