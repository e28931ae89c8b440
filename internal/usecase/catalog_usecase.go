package usecase

import (
	"context"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogUsecase serves the public restaurant browsing reads.
type CatalogUsecase interface {
	// ListRestaurants returns the restaurants that match filter, all of them for a zero filter.
	ListRestaurants(ctx context.Context, filter entity.RestaurantFilter) ([]*entity.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
}
