package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	orderRepo      repository.OrderRepository
	publisher      service.EventPublisher
	cache          *queryCache
	logger         *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	RestaurantRepo repository.RestaurantRepository
	OrderRepo      repository.OrderRepository
	Publisher      service.EventPublisher
	Cache          service.QueryCache
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:       params.UserRepo,
		restaurantRepo: params.RestaurantRepo,
		orderRepo:      params.OrderRepo,
		publisher:      params.Publisher,
		cache:          newQueryCache(params.Cache, params.Config, params.Logger),
		logger:         params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetStats returns revenue and row counts across the whole store.
func (srv *adminService) GetStats(ctx context.Context) (*usecase.DashboardStats, error) {
	stats, err := fetch(ctx, srv.cache, globalKey(service.CacheEntityAdminStats), func(ctx context.Context) (*usecase.DashboardStats, error) {
		totals, err := srv.orderRepo.Totals(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sum orders")
		}

		users, err := srv.userRepo.Count(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count users")
		}

		restaurants, err := srv.restaurantRepo.CountRestaurants(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count restaurants")
		}

		return &usecase.DashboardStats{
			TotalRevenue:     totals.Revenue,
			TotalOrders:      totals.Count,
			TotalUsers:       users,
			TotalRestaurants: restaurants,
		}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dashboard stats")
	}

	return stats, nil
}

// ListRestaurants returns every restaurant for the back office.
func (srv *adminService) ListRestaurants(ctx context.Context) ([]*entity.Restaurant, error) {
	restaurants, err := fetch(ctx, srv.cache, globalKey(service.CacheEntityAdminRestaurants), func(ctx context.Context) ([]*entity.Restaurant, error) {
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

	return restaurants, nil
}

// CreateRestaurant adds a restaurant with an empty menu.
func (srv *adminService) CreateRestaurant(ctx context.Context, input *usecase.CreateRestaurantInput) (*entity.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	case input.Rating < 0 || input.Rating > 5:
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 0 and 5")
	case input.DeliveryFee.IsNegative():
		return nil, domainerrors.ErrValidationFailed.WithDetails("delivery fee must not be negative")
	}

	categories := make([]string, 0, len(input.Categories))
	for _, category := range input.Categories {
		if category = strings.TrimSpace(category); category != "" {
			categories = append(categories, category)
		}
	}

	restaurant := &entity.Restaurant{
		Name:         name,
		Image:        strings.TrimSpace(input.Image),
		Rating:       input.Rating,
		DeliveryTime: strings.TrimSpace(input.DeliveryTime),
		DeliveryFee:  input.DeliveryFee,
		Categories:   categories,
		Menu:         []entity.MenuItem{},
	}

	if err := srv.restaurantRepo.CreateRestaurant(ctx, restaurant); err != nil {
		srv.log(ctx).Error("Failed to create restaurant", slog.String("name", name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create restaurant")
	}
	srv.log(ctx).Info("Restaurant created", slog.Any("restaurantID", restaurant.ID))

	srv.cache.invalidate(ctx,
		globalKey(service.CacheEntityRestaurants),
		globalKey(service.CacheEntityAdminRestaurants),
		globalKey(service.CacheEntityAdminStats),
	)

	return restaurant, nil
}

// DeleteRestaurant removes a restaurant and its menu. Past orders keep their
// snapshots. Cart lines for its dishes go with it, so those carts are
// invalidated too.
func (srv *adminService) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	cartOwners, err := srv.restaurantRepo.DeleteRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return errors.Wrap(domainerrors.ErrRestaurantNotFound, id.String())
		}

		return errors.Wrap(err, "failed to delete restaurant")
	}
	srv.log(ctx).Info("Restaurant deleted", slog.Any("restaurantID", id), slog.Int("carts_affected", len(cartOwners)))

	keys := []service.CacheKey{
		globalKey(service.CacheEntityRestaurants),
		{Entity: service.CacheEntityRestaurant, Scope: id.String()},
		globalKey(service.CacheEntityAdminRestaurants),
		globalKey(service.CacheEntityAdminStats),
	}
	for _, userID := range cartOwners {
		keys = append(keys, userKey(service.CacheEntityCart, userID))
	}
	srv.cache.invalidate(ctx, keys...)

	return nil
}

// AddMenuItem appends a dish to a restaurant's menu.
func (srv *adminService) AddMenuItem(ctx context.Context, restaurantID uuid.UUID, input *usecase.CreateMenuItemInput) (*entity.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	item := &entity.MenuItem{
		RestaurantID: restaurantID,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Price:        input.Price,
		Image:        strings.TrimSpace(input.Image),
		Category:     strings.TrimSpace(input.Category),
	}

	if err := srv.restaurantRepo.CreateMenuItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRestaurantNotFound, restaurantID.String())
		}

		return nil, errors.Wrap(err, "failed to create menu item")
	}

	srv.cache.invalidate(ctx,
		globalKey(service.CacheEntityRestaurants),
		service.CacheKey{Entity: service.CacheEntityRestaurant, Scope: restaurantID.String()},
		globalKey(service.CacheEntityAdminRestaurants),
	)

	return item, nil
}

// ListOrders returns every order, newest first.
func (srv *adminService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := fetch(ctx, srv.cache, globalKey(service.CacheEntityAdminOrders), func(ctx context.Context) ([]*entity.Order, error) {
		orders, err := srv.orderRepo.ListOrders(ctx)
		if err != nil {
			return nil, err
		}
		if orders == nil {
			orders = []*entity.Order{}
		}

		return orders, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateOrderStatus moves an order one step along
// confirmed, preparing, on-the-way, delivered. Anything else is rejected.
func (srv *adminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status " + status.String())
	}

	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, orderID.String())
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	from := order.Status
	if !from.CanTransitionTo(status) {
		srv.log(ctx).Warn("Rejected order status transition",
			slog.Any("orderID", orderID), slog.String("from", from.String()), slog.String("to", status.String()))

		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(from.String() + " -> " + status.String())
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, from, status); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderStatusConflict):
			return nil, domainerrors.ErrInvalidStatusTransition.WithDetails("order status changed concurrently")
		case errors.Is(err, repository.ErrOrderNotFound):
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, orderID.String())
		default:
			return nil, errors.Wrap(err, "failed to update order status")
		}
	}

	changedAt := time.Now()
	order.Status = status
	order.UpdatedAt = changedAt
	srv.log(ctx).Info("Order status updated",
		slog.Any("orderID", orderID), slog.String("from", from.String()), slog.String("to", status.String()))

	srv.cache.invalidate(ctx,
		userKey(service.CacheEntityOrders, order.UserID),
		globalKey(service.CacheEntityAdminOrders),
	)

	srv.publishStatusChange(ctx, entity.OrderStatusChange{
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		From:         from,
		To:           status,
		ChangedAt:    changedAt,
	})

	return order, nil
}

func (srv *adminService) publishStatusChange(ctx context.Context, change entity.OrderStatusChange) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderStatusEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:      change.OrderID.String(),
		UserID:       change.UserID.String(),
		RestaurantID: change.RestaurantID.String(),
		From:         change.From.String(),
		To:           change.To.String(),
		ChangedAt:    change.ChangedAt.UTC().Format(time.RFC3339),
	}

	if err := srv.publisher.PublishOrderStatusEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order status event", slog.Any("orderID", change.OrderID), slog.Any("error", err))
	}
}

// ListUsers returns every user, newest first.
func (srv *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := fetch(ctx, srv.cache, globalKey(service.CacheEntityAdminUsers), func(ctx context.Context) ([]*entity.User, error) {
		users, err := srv.userRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		if users == nil {
			users = []*entity.User{}
		}

		return users, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// UpdateUserRole grants or revokes the admin role. It takes effect on the user's next token.
func (srv *adminService) UpdateUserRole(ctx context.Context, userID uuid.UUID, requested entity.Role) (*entity.User, error) {
	role, ok := entity.ParseRole(requested.String())
	if !ok {
		return nil, domainerrors.ErrInvalidRole
	}

	if err := srv.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, userID.String())
		}

		return nil, errors.Wrap(err, "failed to update user role")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, userID.String())
		}

		return nil, errors.Wrap(err, "failed to reload user")
	}
	srv.log(ctx).Info("User role updated", slog.Any("userID", userID), slog.String("role", role.String()))

	srv.cache.invalidate(ctx, globalKey(service.CacheEntityAdminUsers))

	return user, nil
}
