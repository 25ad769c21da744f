package ports

import (
	"context"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// ProductInput carries all data needed to create a product. For updates, an
// empty Image means "keep the existing image".
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

// CatalogService defines use-case operations for the product catalog.
// Reads are served through a short-lived cache; writes invalidate it.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
