package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenheaven/storefront-api/internal/core/domain"
	"github.com/greenheaven/storefront-api/internal/core/ports"
	"github.com/greenheaven/storefront-api/internal/metrics"
)

// CheckoutGuard abstracts the idempotency store (Redis). A nil guard disables
// duplicate-checkout protection.
type CheckoutGuard interface {
	IsDuplicate(ctx context.Context, userID, key string) (bool, error)
	Mark(ctx context.Context, userID, key string) error
}

// OrderService validates and persists orders against a caller's identity.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	guard    CheckoutGuard
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, guard CheckoutGuard, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, guard: guard, logger: logger}
}

// CreateOrder resolves every line item against the catalog, recomputes the
// total from current product prices, and persists a pending order owned by the
// caller. The client-supplied total is sanity-checked but never trusted.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: items must be a non-empty list", domain.ErrInvalidOrder)
	}
	if input.Total <= 0 {
		return nil, fmt.Errorf("%w: total must be a positive number", domain.ErrInvalidOrder)
	}
	if input.Payment.Method == "" || input.Payment.Status == "" {
		return nil, fmt.Errorf("%w: payment details are required", domain.ErrInvalidOrder)
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, fmt.Errorf("%w: each item needs a product id and quantity >= 1", domain.ErrInvalidOrder)
		}
	}

	if s.guard != nil && input.IdempotencyKey != "" {
		dup, err := s.guard.IsDuplicate(ctx, input.UserID, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("checkout guard unavailable, proceeding")
		} else if dup {
			return nil, domain.ErrDuplicateCheckout
		}
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	var total float64
	for _, item := range input.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}
	total = math.Round(total*100) / 100

	order := &domain.Order{
		UserID:    input.UserID,
		Items:     items,
		Total:     total,
		Payment:   input.Payment,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.guard != nil && input.IdempotencyKey != "" {
		if err := s.guard.Mark(ctx, input.UserID, input.IdempotencyKey); err != nil {
			s.logger.Warn().Err(err).Str("order_id", created.ID).Msg("failed to mark checkout key")
		}
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().
		Str("order_id", created.ID).
		Str("user_id", input.UserID).
		Float64("total", created.Total).
		Msg("order created")

	return created, nil
}

// ListOrders returns only the caller's orders, most recent first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// DeleteOrder removes an order owned by the caller. A missing order and a
// foreign order are indistinguishable to avoid leaking existence.
func (s *OrderService) DeleteOrder(ctx context.Context, id, userID string) error {
	if err := s.orders.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Str("user_id", userID).Msg("order deleted")
	return nil
}

// UpdateStatus advances the order state machine after validating the transition.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, status)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	s.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}
