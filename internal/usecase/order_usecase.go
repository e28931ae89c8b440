package usecase

import (
	"context"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase covers checkout and the user's view of their orders.
type OrderUsecase interface {
	// PlaceOrder splits the cart into one confirmed order per restaurant and
	// clears the cart. An empty cart yields no orders and no writes.
	PlaceOrder(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	// GetOrder returns ORDER_NOT_FOUND for orders owned by someone else.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)
	GetTrackingQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
	// GetOrderTimeline returns the recorded status steps of one of the user's orders, oldest first.
	GetOrderTimeline(ctx context.Context, userID, orderID uuid.UUID) ([]*entity.OrderStatusChange, error)
}
