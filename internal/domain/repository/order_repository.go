package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusConflict is returned when the stored status no longer matches the expected one.
	ErrOrderStatusConflict = errors.New("order status changed concurrently")
)

// OrderTotals aggregates order figures for the dashboard.
type OrderTotals struct {
	Count   int64
	Revenue decimal.Decimal
}

// OrderRepository persists orders and their item snapshots.
type OrderRepository interface {
	// CreateOrder persists the order and all of its items, filling in generated IDs.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID returns an order with its items.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrdersByUser returns the user's orders with items, newest first.
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListOrders returns every order with items, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus moves an order from one status to another only if it is still in from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error

	// Totals returns the order count and the revenue over all orders.
	Totals(ctx context.Context) (*OrderTotals, error)

	// RecordStatusChange appends a step to the order's timeline. A step that
	// is already recorded is ignored, so redelivered events are harmless.
	RecordStatusChange(ctx context.Context, change *entity.OrderStatusChange) error

	// FindStatusChanges returns the order's timeline, oldest first.
	FindStatusChanges(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderStatusChange, error)
}
