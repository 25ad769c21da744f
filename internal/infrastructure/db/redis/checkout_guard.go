package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkoutTTL matches the session token lifetime: a retried checkout after the
// session has expired is a new purchase, not a duplicate.
const checkoutTTL = 24 * time.Hour

// CheckoutGuard provides duplicate-submit protection for order placement,
// backed by Redis. Key format: checkout:<user_id>:<idempotency_key>
type CheckoutGuard struct {
	client *redis.Client
}

// NewCheckoutGuard creates a CheckoutGuard wrapping the given Redis client.
func NewCheckoutGuard(client *redis.Client) *CheckoutGuard {
	return &CheckoutGuard{client: client}
}

// IsDuplicate reports whether this user has already submitted a checkout with
// this idempotency key.
func (g *CheckoutGuard) IsDuplicate(ctx context.Context, userID, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(userID, key)).Result()
	if err != nil {
		return false, fmt.Errorf("checkout guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this checkout has been accepted (expires after checkoutTTL).
func (g *CheckoutGuard) Mark(ctx context.Context, userID, key string) error {
	return g.client.Set(ctx, g.key(userID, key), "1", checkoutTTL).Err()
}

func (g *CheckoutGuard) key(userID, key string) string {
	return fmt.Sprintf("checkout:%s:%s", userID, key)
}
