package pubsub

import (
	"context"
	"log/slog"

	"foodie/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googleSender publishes to a Cloud Pub/Sub topic with ordering keys enabled,
// so every event of one order reaches the worker in publish order.
type googleSender struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher fails fast when the topic does not exist instead
// of losing events at the first checkout.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	topic := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "order event topic %s unavailable", topic)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	return newEventPublisher("GooglePubSub", &googleSender{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, logger), nil
}

// send waits for the server ack. A failed publish pauses its ordering key,
// so the key is resumed for the next event of that order.
func (s *googleSender) send(ctx context.Context, msg *message) error {
	serverID, err := s.publisher.Publish(ctx, &pubsub.Message{
		Data:        msg.Data,
		Attributes:  msg.Attributes,
		OrderingKey: msg.Key,
	}).Get(ctx)
	if err != nil {
		s.publisher.ResumePublish(msg.Key)

		return errors.Wrapf(err, "publish %s for order %s", msg.Type, msg.Key)
	}
	s.logger.DebugContext(ctx, "Pub/Sub acknowledged order event", slog.String("server_id", serverID))

	return nil
}

func (s *googleSender) Close() error {
	s.publisher.Stop()

	return errors.WithStack(s.client.Close())
}
