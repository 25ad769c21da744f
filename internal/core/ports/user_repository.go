package ports

import (
	"context"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// ProfileUpdate carries the mutable fields of a user profile.
// PasswordHash is applied only when non-empty.
type ProfileUpdate struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository defines persistence for the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
}
