package usecase

import (
	"context"

	"foodie/internal/domain/service"
)

// OrderEventUsecase consumes published order events.
// Handlers must tolerate redelivery of the same event.
type OrderEventUsecase interface {
	// HandleOrderPlaced records the initial confirmed step of a new order.
	HandleOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error
	// HandleOrderStatusChanged records one admin-driven transition.
	HandleOrderStatusChanged(ctx context.Context, event *service.OrderStatusEvent) error
}
