package ports

import (
	"context"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence for the order store.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// FindByUser returns the user's orders, newest first.
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// Delete removes the order only when it is owned by userID. A non-existent
	// or foreign order yields domain.ErrOrderNotFound either way.
	Delete(ctx context.Context, id, userID string) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
