package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"foodie/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const amqpContentTypeJSON = "application/json"

// amqpChannel is the subset of *amqp.Channel the sender needs.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// rabbitMQSender publishes to a durable topic exchange. The routing key is
// the event type, so consumers can bind to order.placed or order.* as needed.
type rabbitMQSender struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
}

// NewRabbitMQPublisher dials the broker and declares the exchange.
func NewRabbitMQPublisher(url, exchange string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open channel")
	}

	sender, err := newRabbitMQSender(ch, exchange)
	if err != nil {
		conn.Close()

		return nil, err
	}
	sender.conn = conn

	logger.Info("RabbitMQ publisher initialized", slog.String("exchange", exchange))

	return newEventPublisher("RabbitMQ", sender, logger), nil
}

func newRabbitMQSender(ch amqpChannel, exchange string) (*rabbitMQSender, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()

		return nil, errors.Wrap(err, "failed to declare exchange")
	}

	return &rabbitMQSender{channel: ch, exchange: exchange}, nil
}

func (s *rabbitMQSender) send(ctx context.Context, msg *message) error {
	headers := make(amqp.Table, len(msg.Attributes))
	for key, value := range msg.Attributes {
		headers[key] = value
	}

	// amqp channels are not safe for concurrent publishing.
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.channel.PublishWithContext(ctx, s.exchange, msg.Type, false, false, amqp.Publishing{
		ContentType:  amqpContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.Key,
		Headers:      headers,
		Body:         msg.Data,
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish message")
	}

	return nil
}

// Close closes the channel and then the connection.
func (s *rabbitMQSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.conn != nil && !s.conn.IsClosed() {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Wrapf(errs[0], "failed to close RabbitMQ publisher (%d errors)", len(errs))
	}

	return nil
}
