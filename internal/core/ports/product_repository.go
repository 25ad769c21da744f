package ports

import (
	"context"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// ProductPatch carries the mutable fields of a product. Image is applied only
// when non-empty (omission leaves the stored image unchanged).
type ProductPatch struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

// ProductRepository defines persistence for the catalog store.
type ProductRepository interface {
	// List returns all products, newest first. The caller bounds the query
	// with a context deadline; the repository must honour it.
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
