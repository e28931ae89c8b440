package impl

import (
	"context"
	"testing"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	mockRepo "foodie/internal/mocks/repository"
	mockSvc "foodie/internal/mocks/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminServiceFixtures struct {
	service        usecase.AdminUsecase
	userRepo       *mockRepo.MockUserRepository
	restaurantRepo *mockRepo.MockRestaurantRepository
	orderRepo      *mockRepo.MockOrderRepository
	publisher      *mockSvc.MockEventPublisher
}

// createTestAdminService wires the service to a nil cache so only repository calls are asserted.
func createTestAdminService(t *testing.T) adminServiceFixtures {
	fx := adminServiceFixtures{
		userRepo:       mockRepo.NewMockUserRepository(t),
		restaurantRepo: mockRepo.NewMockRestaurantRepository(t),
		orderRepo:      mockRepo.NewMockOrderRepository(t),
		publisher:      mockSvc.NewMockEventPublisher(t),
	}

	fx.service = NewAdminService(AdminServiceParams{
		UserRepo:       fx.userRepo,
		RestaurantRepo: fx.restaurantRepo,
		OrderRepo:      fx.orderRepo,
		Publisher:      fx.publisher,
		Config:         newTestConfig(0),
		Logger:         newDiscardLogger(),
	})

	return fx
}

func TestAdminService_UpdateOrderStatus_Advances(t *testing.T) {
	fx := createTestAdminService(t)

	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), RestaurantID: uuid.New(), Status: entity.OrderStatusConfirmed}

	fx.orderRepo.EXPECT().FindOrderByID(mock.Anything, order.ID).Return(order, nil)
	fx.orderRepo.EXPECT().UpdateStatus(mock.Anything, order.ID, entity.OrderStatusConfirmed, entity.OrderStatusPreparing).Return(nil)
	fx.publisher.EXPECT().
		PublishOrderStatusEvent(mock.Anything, mock.MatchedBy(func(event *service.OrderStatusEvent) bool {
			return event.OrderID == order.ID.String() && event.From == "confirmed" && event.To == "preparing"
		})).
		Return(nil)

	updated, err := fx.service.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusPreparing)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, updated.Status)
}

func TestAdminService_UpdateOrderStatus_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		current    entity.OrderStatus
		target     entity.OrderStatus
		wantTarget error
	}{
		{name: "skip a step", current: entity.OrderStatusConfirmed, target: entity.OrderStatusDelivered, wantTarget: domainerrors.ErrInvalidStatusTransition},
		{name: "move backwards", current: entity.OrderStatusOnTheWay, target: entity.OrderStatusPreparing, wantTarget: domainerrors.ErrInvalidStatusTransition},
		{name: "leave delivered", current: entity.OrderStatusDelivered, target: entity.OrderStatusConfirmed, wantTarget: domainerrors.ErrInvalidStatusTransition},
		{name: "leave pending", current: entity.OrderStatusPending, target: entity.OrderStatusConfirmed, wantTarget: domainerrors.ErrInvalidStatusTransition},
		{name: "enter pending", current: entity.OrderStatusConfirmed, target: entity.OrderStatusPending, wantTarget: domainerrors.ErrInvalidStatusTransition},
		{name: "same status", current: entity.OrderStatusPreparing, target: entity.OrderStatusPreparing, wantTarget: domainerrors.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAdminService(t)

			orderID := uuid.New()
			fx.orderRepo.EXPECT().FindOrderByID(mock.Anything, orderID).Return(&entity.Order{ID: orderID, Status: tt.current}, nil)

			_, err := fx.service.UpdateOrderStatus(context.Background(), orderID, tt.target)

			assert.True(t, errors.Is(err, tt.wantTarget), "got %v", err)
		})
	}
}

func TestAdminService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestAdminService(t)

	_, err := fx.service.UpdateOrderStatus(context.Background(), uuid.New(), entity.OrderStatus("cancelled"))

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAdminService_UpdateOrderStatus_LostRace(t *testing.T) {
	fx := createTestAdminService(t)

	orderID := uuid.New()
	fx.orderRepo.EXPECT().FindOrderByID(mock.Anything, orderID).Return(&entity.Order{ID: orderID, Status: entity.OrderStatusPreparing}, nil)
	fx.orderRepo.EXPECT().
		UpdateStatus(mock.Anything, orderID, entity.OrderStatusPreparing, entity.OrderStatusOnTheWay).
		Return(repository.ErrOrderStatusConflict)

	_, err := fx.service.UpdateOrderStatus(context.Background(), orderID, entity.OrderStatusOnTheWay)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
	fx.publisher.AssertNotCalled(t, "PublishOrderStatusEvent", mock.Anything, mock.Anything)
}

func TestAdminService_GetStats(t *testing.T) {
	fx := createTestAdminService(t)

	fx.orderRepo.EXPECT().Totals(mock.Anything).Return(&repository.OrderTotals{Count: 3, Revenue: decimal.RequireFromString("64.75")}, nil)
	fx.userRepo.EXPECT().Count(mock.Anything).Return(int64(5), nil)
	fx.restaurantRepo.EXPECT().CountRestaurants(mock.Anything).Return(int64(2), nil)

	stats, err := fx.service.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(5), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalRestaurants)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("64.75")))
}

func TestAdminService_CreateRestaurant(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		fx := createTestAdminService(t)

		fx.restaurantRepo.EXPECT().
			CreateRestaurant(mock.Anything, mock.MatchedBy(func(r *entity.Restaurant) bool {
				return r.Name == "Umi" && len(r.Categories) == 2
			})).
			Run(func(_ context.Context, r *entity.Restaurant) {
				r.ID = uuid.New()
			}).
			Return(nil)

		restaurant, err := fx.service.CreateRestaurant(context.Background(), &usecase.CreateRestaurantInput{
			Name:        " Umi ",
			Rating:      4.5,
			DeliveryFee: decimal.RequireFromString("3.50"),
			Categories:  []string{"Sushi", " ", "Japanese"},
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, restaurant.ID)
	})

	invalid := []*usecase.CreateRestaurantInput{
		{Name: ""},
		{Name: "Umi", Rating: 5.5},
		{Name: "Umi", DeliveryFee: decimal.RequireFromString("-1")},
	}
	for _, input := range invalid {
		fx := createTestAdminService(t)

		_, err := fx.service.CreateRestaurant(context.Background(), input)

		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestAdminService_AddMenuItem(t *testing.T) {
	restaurantID := uuid.New()

	t.Run("unknown restaurant", func(t *testing.T) {
		fx := createTestAdminService(t)

		fx.restaurantRepo.EXPECT().CreateMenuItem(mock.Anything, mock.Anything).Return(repository.ErrRestaurantNotFound)

		_, err := fx.service.AddMenuItem(context.Background(), restaurantID, &usecase.CreateMenuItemInput{
			Name:  "Ramen",
			Price: decimal.RequireFromString("11.00"),
		})

		assert.True(t, errors.Is(err, domainerrors.ErrRestaurantNotFound))
	})

	t.Run("negative price", func(t *testing.T) {
		fx := createTestAdminService(t)

		_, err := fx.service.AddMenuItem(context.Background(), restaurantID, &usecase.CreateMenuItemInput{
			Name:  "Ramen",
			Price: decimal.RequireFromString("-0.01"),
		})

		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("zero price", func(t *testing.T) {
		fx := createTestAdminService(t)

		fx.restaurantRepo.EXPECT().
			CreateMenuItem(mock.Anything, mock.MatchedBy(func(item *entity.MenuItem) bool {
				return item.RestaurantID == restaurantID && item.Price.IsZero()
			})).
			Return(nil)

		item, err := fx.service.AddMenuItem(context.Background(), restaurantID, &usecase.CreateMenuItemInput{Name: "Tap water"})

		require.NoError(t, err)
		assert.Equal(t, "Tap water", item.Name)
		assert.True(t, item.Price.IsZero())
	})
}

func TestAdminService_DeleteRestaurant_NotFound(t *testing.T) {
	fx := createTestAdminService(t)

	id := uuid.New()
	fx.restaurantRepo.EXPECT().DeleteRestaurant(mock.Anything, id).Return(nil, repository.ErrRestaurantNotFound)

	err := fx.service.DeleteRestaurant(context.Background(), id)

	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantNotFound))
}

func TestAdminService_DeleteRestaurant_InvalidatesAffectedCarts(t *testing.T) {
	restaurantRepo := mockRepo.NewMockRestaurantRepository(t)
	cache := mockSvc.NewMockQueryCache(t)
	svc := NewAdminService(AdminServiceParams{
		RestaurantRepo: restaurantRepo,
		Cache:          cache,
		Config:         newTestConfig(0),
		Logger:         newDiscardLogger(),
	})

	id := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	restaurantRepo.EXPECT().DeleteRestaurant(mock.Anything, id).Return([]uuid.UUID{alice, bob}, nil)
	cache.EXPECT().
		Invalidate(mock.Anything, []service.CacheKey{
			{Entity: service.CacheEntityRestaurants, Scope: service.CacheScopeAll},
			{Entity: service.CacheEntityRestaurant, Scope: id.String()},
			{Entity: service.CacheEntityAdminRestaurants, Scope: service.CacheScopeAll},
			{Entity: service.CacheEntityAdminStats, Scope: service.CacheScopeAll},
			{Entity: service.CacheEntityCart, Scope: alice.String()},
			{Entity: service.CacheEntityCart, Scope: bob.String()},
		}).
		Return(nil).
		Once()

	require.NoError(t, svc.DeleteRestaurant(context.Background(), id))
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	fx := createTestAdminService(t)

	userID := uuid.New()
	fx.userRepo.EXPECT().UpdateRole(mock.Anything, userID, entity.RoleAdmin).Return(nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{ID: userID, Role: entity.RoleAdmin}, nil)

	user, err := fx.service.UpdateUserRole(context.Background(), userID, entity.RoleAdmin)

	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	_, err = fx.service.UpdateUserRole(context.Background(), userID, entity.Role("owner"))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidRole))
}
