// Package pubsub publishes order events to the configured message transport.
// Every transport carries the same message: a JSON body with event_type,
// order_id and request_id attributes, keyed by order ID.
package pubsub

import (
	"context"
	"log/slog"

	"foodie/config"
	"foodie/internal/domain/constants"
	"foodie/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops events when no transport is configured. Checkout and
// status updates still succeed; only the worker's timeline goes unrecorded.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishOrderStatusEvent(ctx context.Context, event *service.OrderStatusEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping status change",
		slog.String("order_id", event.OrderID),
		slog.String("to", event.To),
	)

	return nil
}

func (p *noopPublisher) PublishOrderPlacedEvent(ctx context.Context, event *service.OrderPlacedEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping placed order",
		slog.String("order_id", event.OrderID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// transport builds the publisher of one provider after checking its settings.
type transport struct {
	validate func(cfg *config.PubSubConfig) error
	build    func(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error)
}

func requireTopic(provider string) func(cfg *config.PubSubConfig) error {
	return func(cfg *config.PubSubConfig) error {
		if cfg.TopicID == "" {
			return errors.Errorf("topic ID is required for %s provider", provider)
		}

		return nil
	}
}

var transports = map[string]transport{
	constants.PubSubProviderLocal: {
		validate: func(cfg *config.PubSubConfig) error {
			if cfg.LocalEndpoint == "" {
				return errors.New("local endpoint is required for local provider")
			}

			return nil
		},
		build: func(_ context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
			return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil
		},
	},
	constants.PubSubProviderGoogle: {
		validate: func(cfg *config.PubSubConfig) error {
			if cfg.ProjectID == "" {
				return errors.New("project ID is required for google provider")
			}

			return requireTopic(constants.PubSubProviderGoogle)(cfg)
		},
		build: func(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
			return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)
		},
	},
	constants.PubSubProviderKafka: {
		validate: func(cfg *config.PubSubConfig) error {
			if len(cfg.Brokers) == 0 {
				return errors.New("brokers are required for kafka provider")
			}

			return requireTopic(constants.PubSubProviderKafka)(cfg)
		},
		build: func(_ context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
			return NewKafkaPublisher(cfg.Brokers, cfg.TopicID, logger), nil
		},
	},
	constants.PubSubProviderRabbitMQ: {
		validate: func(cfg *config.PubSubConfig) error {
			if cfg.AMQPURL == "" {
				return errors.New("AMQP URL is required for rabbitmq provider")
			}

			return requireTopic(constants.PubSubProviderRabbitMQ)(cfg)
		},
		build: func(_ context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
			return NewRabbitMQPublisher(cfg.AMQPURL, cfg.TopicID, logger)
		},
	},
}

// NewEventPublisher selects the transport named by pubsub.provider. An empty
// provider disables publishing.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, order events will not be published")

		return &noopPublisher{logger: logger}, nil
	}

	t, ok := transports[cfg.Provider]
	if !ok {
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
	if err := t.validate(cfg); err != nil {
		return nil, err
	}

	publisher, err := t.build(params.Ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Order event publisher ready",
		slog.String("provider", cfg.Provider),
		slog.String("topic_id", cfg.TopicID),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing order event publisher", slog.String("provider", cfg.Provider))

			return publisher.Close()
		},
	})

	return publisher, nil
}
