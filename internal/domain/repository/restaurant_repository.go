package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrRestaurantNotFound is returned when a restaurant does not exist.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrMenuItemNotFound is returned when a menu item does not exist.
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// RestaurantRepository covers restaurants, their menus, and browsing categories.
type RestaurantRepository interface {
	// ListRestaurants returns every restaurant with its menu, newest first.
	ListRestaurants(ctx context.Context) ([]*entity.Restaurant, error)

	// FindRestaurantByID returns one restaurant with its menu.
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)

	// CreateRestaurant persists a restaurant and fills in its ID.
	CreateRestaurant(ctx context.Context, restaurant *entity.Restaurant) error

	// DeleteRestaurant removes a restaurant together with its menu items and
	// the cart lines that reference them. It returns the users whose carts
	// lost lines.
	DeleteRestaurant(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	// CountRestaurants returns the number of restaurants.
	CountRestaurants(ctx context.Context) (int64, error)

	// FindMenuItemByID returns a single menu item.
	FindMenuItemByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// CreateMenuItem adds a dish to a restaurant's menu.
	CreateMenuItem(ctx context.Context, item *entity.MenuItem) error

	// ListCategories returns the browsing categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)
}
