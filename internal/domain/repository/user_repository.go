package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserEmailTaken = errors.New("user email already taken")
)

// UserRepository stores accounts. Lookups return ErrUserNotFound when no
// row matches; Create returns ErrUserEmailTaken for a duplicate email.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// Update writes name and avatar only.
	Update(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error
	// List is ordered newest first.
	List(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	// AcquireSessionMutex row-locks the user until the transaction ends, so
	// concurrent logins of one user see each other's session count.
	AcquireSessionMutex(ctx context.Context, id uuid.UUID) error
}
