package pubsub

import (
	"context"
	"log/slog"

	"foodie/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// kafkaWriter is the subset of *kafka.Writer the sender needs.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaSender writes messages to a Kafka topic keyed by order ID, so every
// event of an order lands on the same partition.
type kafkaSender struct {
	writer kafkaWriter
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka publisher initialized",
		slog.Any("brokers", brokers),
		slog.String("topic", topic),
	)

	return newEventPublisher("Kafka", &kafkaSender{writer: writer}, logger)
}

func (s *kafkaSender) send(ctx context.Context, msg *message) error {
	headers := make([]kafka.Header, 0, len(msg.Attributes))
	for key, value := range msg.Attributes {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	if err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.Key),
		Value:   msg.Data,
		Headers: headers,
	}); err != nil {
		return errors.Wrap(err, "failed to write kafka message")
	}

	return nil
}

// Close flushes pending writes and closes the writer.
func (s *kafkaSender) Close() error {
	return errors.WithStack(s.writer.Close())
}
