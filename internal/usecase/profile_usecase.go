package usecase

import (
	"context"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase reads and edits the signed-in user's own profile. Both
// operations return ErrUnauthenticated for a nil user ID.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}

// UpdateProfileInput is a partial update: nil fields are left unchanged.
type UpdateProfileInput struct {
	Name   *string
	Avatar *string
}
