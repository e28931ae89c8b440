package service

import (
	"context"
)

// OrderStatusEvent is emitted after an order status change commits.
type OrderStatusEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	OrderID      string `json:"order_id"`
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	ChangedAt    string `json:"changed_at"` // RFC 3339
}

// OrderPlacedEvent is emitted once per order created at checkout.
type OrderPlacedEvent struct {
	RequestID    string `json:"request_id,omitempty"`
	OrderID      string `json:"order_id"`
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Total        string `json:"total"`
	PlacedAt     string `json:"placed_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderStatusEvent publishes an order status change.
	PublishOrderStatusEvent(ctx context.Context, event *OrderStatusEvent) error

	// PublishOrderPlacedEvent publishes a newly placed order.
	PublishOrderPlacedEvent(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
