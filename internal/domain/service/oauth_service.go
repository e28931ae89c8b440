package service

import (
	"context"

	"foodie/internal/domain/entity"
)

// OAuthUser is the verified identity behind a provider ID token. Sign-in
// links it to an account by (Provider, ID) first and by Email second.
type OAuthUser struct {
	ID            string
	Email         string
	Name          string
	Provider      entity.ProviderType
	AvatarURL     string
	EmailVerified bool
}

// OAuthAuthService verifies ID tokens of one identity provider.
type OAuthAuthService interface {
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
	GetProvider() entity.ProviderType
}
