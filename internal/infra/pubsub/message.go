package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"foodie/internal/domain/constants"
	"foodie/internal/domain/service"

	"github.com/pkg/errors"
)

// message is the transport-neutral form of an event. Key orders messages
// per order on partitioned transports.
type message struct {
	Type       string
	Key        string
	Data       []byte
	Attributes map[string]string
}

func newOrderStatusMessage(event *service.OrderStatusEvent) (*message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &message{
		Type:       constants.EventTypeOrderStatusChanged,
		Key:        event.OrderID,
		Data:       data,
		Attributes: attributes(constants.EventTypeOrderStatusChanged, event.OrderID, event.RequestID),
	}, nil
}

func newOrderPlacedMessage(event *service.OrderPlacedEvent) (*message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &message{
		Type:       constants.EventTypeOrderPlaced,
		Key:        event.OrderID,
		Data:       data,
		Attributes: attributes(constants.EventTypeOrderPlaced, event.OrderID, event.RequestID),
	}, nil
}

func attributes(eventType, orderID, requestID string) map[string]string {
	attrs := map[string]string{
		"event_type": eventType,
		"order_id":   orderID,
	}
	if requestID != "" {
		attrs["request_id"] = requestID
	}

	return attrs
}

// sender delivers one encoded message over a concrete transport.
type sender interface {
	send(ctx context.Context, msg *message) error
	Close() error
}

// eventPublisher adapts a sender to service.EventPublisher.
type eventPublisher struct {
	name   string
	sender sender
	logger *slog.Logger
}

func newEventPublisher(name string, s sender, logger *slog.Logger) *eventPublisher {
	return &eventPublisher{name: name, sender: s, logger: logger}
}

// PublishOrderStatusEvent publishes an order status change.
func (p *eventPublisher) PublishOrderStatusEvent(ctx context.Context, event *service.OrderStatusEvent) error {
	msg, err := newOrderStatusMessage(event)
	if err != nil {
		return err
	}

	return p.publish(ctx, msg)
}

// PublishOrderPlacedEvent publishes a newly placed order.
func (p *eventPublisher) PublishOrderPlacedEvent(ctx context.Context, event *service.OrderPlacedEvent) error {
	msg, err := newOrderPlacedMessage(event)
	if err != nil {
		return err
	}

	return p.publish(ctx, msg)
}

func (p *eventPublisher) publish(ctx context.Context, msg *message) error {
	p.logger.Info("["+p.name+"] Publishing event",
		slog.String("event_type", msg.Type),
		slog.String("order_id", msg.Key),
	)

	if err := p.sender.send(ctx, msg); err != nil {
		return err
	}

	p.logger.Info("["+p.name+"] Event published successfully",
		slog.String("event_type", msg.Type),
		slog.String("order_id", msg.Key),
	)

	return nil
}

// Close releases the transport.
func (p *eventPublisher) Close() error {
	return p.sender.Close()
}
