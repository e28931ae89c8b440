package usecase

import (
	"context"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase mutates and reads the signed-in user's cart. Every mutator
// invalidates the cached cart; callers read it back with GetCart.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	// AddToCart adds quantity units of a menu item, incrementing an existing line.
	AddToCart(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error
	// UpdateQuantity overwrites a line's quantity. Zero or less removes the line.
	UpdateQuantity(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error
	RemoveFromCart(ctx context.Context, userID, menuItemID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
