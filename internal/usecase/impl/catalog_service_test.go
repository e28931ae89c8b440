package impl

import (
	"context"
	"testing"
	"time"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/infra/cache"
	mockRepo "foodie/internal/mocks/repository"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCatalogService(t *testing.T) (usecase.CatalogUsecase, *mockRepo.MockRestaurantRepository) {
	restaurantRepo := mockRepo.NewMockRestaurantRepository(t)

	svc := NewCatalogService(CatalogServiceParams{
		RestaurantRepo: restaurantRepo,
		Cache:          cache.NewMemoryCache(time.Minute),
		Config:         newTestConfig(0),
		Logger:         newDiscardLogger(),
	})

	return svc, restaurantRepo
}

func TestCatalogService_ListRestaurants_ServedFromCache(t *testing.T) {
	svc, restaurantRepo := createTestCatalogService(t)

	restaurants := []*entity.Restaurant{{
		ID:          uuid.New(),
		Name:        "Luigi's",
		DeliveryFee: decimal.RequireFromString("1.99"),
		Categories:  []string{"Pizza"},
		Menu:        []entity.MenuItem{{ID: uuid.New(), Name: "Margherita", Price: decimal.RequireFromString("12.50")}},
	}}
	restaurantRepo.EXPECT().ListRestaurants(mock.Anything).Return(restaurants, nil).Once()

	first, err := svc.ListRestaurants(context.Background(), entity.RestaurantFilter{})
	require.NoError(t, err)
	second, err := svc.ListRestaurants(context.Background(), entity.RestaurantFilter{})
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "Margherita", second[0].Menu[0].Name)
	assert.True(t, second[0].DeliveryFee.Equal(decimal.RequireFromString("1.99")))
}

func TestCatalogService_ListRestaurants_Filters(t *testing.T) {
	svc, restaurantRepo := createTestCatalogService(t)

	pizza := &entity.Restaurant{ID: uuid.New(), Name: "Luigi's", Categories: []string{"Pizza", "Italian"}}
	thai := &entity.Restaurant{
		ID:         uuid.New(),
		Name:       "Bangkok Street",
		Categories: []string{"Thai"},
		Menu:       []entity.MenuItem{{ID: uuid.New(), Name: "Green Curry", Category: "Curries"}},
	}
	restaurantRepo.EXPECT().ListRestaurants(mock.Anything).Return([]*entity.Restaurant{pizza, thai}, nil).Once()

	ctx := context.Background()
	byCategory, err := svc.ListRestaurants(ctx, entity.RestaurantFilter{Category: "italian"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, pizza.ID, byCategory[0].ID)

	byDish, err := svc.ListRestaurants(ctx, entity.RestaurantFilter{Query: "CURRY"})
	require.NoError(t, err)
	require.Len(t, byDish, 1)
	assert.Equal(t, thai.ID, byDish[0].ID)

	none, err := svc.ListRestaurants(ctx, entity.RestaurantFilter{Query: "sushi"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalogService_GetRestaurant_NotFound(t *testing.T) {
	svc, restaurantRepo := createTestCatalogService(t)

	id := uuid.New()
	restaurantRepo.EXPECT().FindRestaurantByID(mock.Anything, id).Return(nil, repository.ErrRestaurantNotFound)

	_, err := svc.GetRestaurant(context.Background(), id)

	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantNotFound))
}

func TestCatalogService_ListCategories_Empty(t *testing.T) {
	svc, restaurantRepo := createTestCatalogService(t)

	restaurantRepo.EXPECT().ListCategories(mock.Anything).Return(nil, nil)

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
