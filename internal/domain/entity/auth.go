package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType names the credential source of an Authentication.
type ProviderType string

const (
	ProviderTypeEmail  ProviderType = "email"
	ProviderTypeGoogle ProviderType = "google"
)

// Authentication is one way of signing in to a User account.
// An email/password pair is one record, a linked Google account another.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       ProviderType
	ProviderUserID string // Email for the email provider, the 'sub' claim for Google.
	PasswordHash   string // bcrypt hash, only set for the email provider.
	CreatedAt      time.Time
}

// RefreshToken is a stored session. Only the SHA-256 hash of the raw token is kept.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is past its expiry at the given instant.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
