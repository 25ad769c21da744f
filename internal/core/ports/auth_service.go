package ports

import (
	"context"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// UpdateProfileInput carries a self-service profile edit. Password is optional;
// when blank the stored hash is left untouched.
type UpdateProfileInput struct {
	UserID   string
	Username string
	Email    string
	Password string
}

// AuthService implements signup, login and profile management.
type AuthService interface {
	Signup(ctx context.Context, username, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}
