package impl

import (
	"context"
	"log/slog"

	"foodie/config"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	restaurantRepo repository.RestaurantRepository
	cache          *queryCache
	logger         *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	RestaurantRepo repository.RestaurantRepository
	Cache          service.QueryCache
	Config         *config.Config
	Logger         *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		restaurantRepo: params.RestaurantRepo,
		cache:          newQueryCache(params.Cache, params.Config, params.Logger),
		logger:         params.Logger,
	}
}

// ListRestaurants filters the cached full listing, so searches share one
// cache entry with the home screen.
func (srv *catalogService) ListRestaurants(ctx context.Context, filter entity.RestaurantFilter) ([]*entity.Restaurant, error) {
	restaurants, err := fetch(ctx, srv.cache, globalKey(service.CacheEntityRestaurants), func(ctx context.Context) ([]*entity.Restaurant, error) {
		restaurants, err := srv.restaurantRepo.ListRestaurants(ctx)
		if err != nil {
			return nil, err
		}
		if restaurants == nil {
			restaurants = []*entity.Restaurant{}
		}

		return restaurants, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list restaurants")
	}
	if filter.IsZero() {
		return restaurants, nil
	}

	return entity.FilterRestaurants(restaurants, filter), nil
}

// GetRestaurant returns one restaurant with its menu.
func (srv *catalogService) GetRestaurant(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	restaurant, err := fetch(ctx, srv.cache, service.CacheKey{Entity: service.CacheEntityRestaurant, Scope: id.String()}, func(ctx context.Context) (*entity.Restaurant, error) {
		return srv.restaurantRepo.FindRestaurantByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRestaurantNotFound, id.String())
		}

		return nil, errors.Wrap(err, "failed to get restaurant")
	}

	return restaurant, nil
}

// ListCategories returns the browsing categories.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := fetch(ctx, srv.cache, globalKey(service.CacheEntityCategories), func(ctx context.Context) ([]*entity.Category, error) {
		categories, err := srv.restaurantRepo.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		if categories == nil {
			categories = []*entity.Category{}
		}

		return categories, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}
