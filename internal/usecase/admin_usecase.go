package usecase

import (
	"context"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats are the headline figures of the admin dashboard.
type DashboardStats struct {
	TotalRevenue     decimal.Decimal
	TotalOrders      int64
	TotalUsers       int64
	TotalRestaurants int64
}

// CreateRestaurantInput defines a new restaurant.
type CreateRestaurantInput struct {
	Name         string
	Image        string
	Rating       float64
	DeliveryTime string
	DeliveryFee  decimal.Decimal
	Categories   []string
}

// CreateMenuItemInput defines a new dish on a restaurant's menu.
type CreateMenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
}

// AdminUsecase defines the back-office operations. Callers must hold the admin role.
type AdminUsecase interface {
	GetStats(ctx context.Context) (*DashboardStats, error)

	ListRestaurants(ctx context.Context) ([]*entity.Restaurant, error)
	CreateRestaurant(ctx context.Context, input *CreateRestaurantInput) (*entity.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
	AddMenuItem(ctx context.Context, restaurantID uuid.UUID, input *CreateMenuItemInput) (*entity.MenuItem, error)

	ListOrders(ctx context.Context) ([]*entity.Order, error)
	// UpdateOrderStatus advances an order by exactly one lifecycle step.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	ListUsers(ctx context.Context) ([]*entity.User, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error)
}
