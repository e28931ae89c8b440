package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/entity"
)

var (
	ErrAuthNotFound      = errors.New("authentication method not found")
	ErrAuthAlreadyExists = errors.New("authentication method already exists")
)

// AuthRepository stores the credentials a user can sign in with: one row
// per (provider, provider user ID). Email/password rows keep the email as the
// provider user ID and carry the password hash.
type AuthRepository interface {
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)
}
