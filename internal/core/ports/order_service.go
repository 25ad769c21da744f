package ports

import (
	"context"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// OrderItemInput is a single cart line submitted at checkout.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order. Total is the
// client's own figure; the service recomputes the authoritative total from
// catalog prices and only sanity-checks this one. IdempotencyKey is optional
// and guards against double-submitted checkouts.
type CreateOrderInput struct {
	UserID         string
	Items          []OrderItemInput
	Total          float64
	Payment        domain.PaymentDetails
	IdempotencyKey string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, id, userID string) error
	// UpdateStatus advances the order state machine. Admin-only at the transport layer.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
