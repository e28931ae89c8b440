package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores sessions. Only hashes of refresh tokens are
// persisted, and expired rows behave as if they were absent.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
	// DeleteRefreshTokensByUserID ends every session of the user.
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error
	CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}
