package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is returned when the user has no cart row for a menu item.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository persists cart rows, one per (user, menu item).
type CartRepository interface {
	// FindCartByUser returns the user's cart with each line's menu item loaded, in insertion order.
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// LockCartByUser is FindCartByUser with the rows locked for the rest of the transaction.
	LockCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// AddItem inserts a row or, when one already exists for the same menu item,
	// increments its quantity by item.Quantity in a single statement.
	AddItem(ctx context.Context, item *entity.CartItem) error

	// UpdateQuantity overwrites the quantity of an existing row.
	UpdateQuantity(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error

	// RemoveItem deletes the row for a menu item. Missing rows are not an error.
	RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) error

	// ClearByUser deletes every row of the user's cart.
	ClearByUser(ctx context.Context, userID uuid.UUID) error
}
