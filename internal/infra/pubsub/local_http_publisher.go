package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"foodie/internal/domain/service"

	"github.com/pkg/errors"
)

const localPushTimeout = 30 * time.Second

// localHTTPSender posts each event straight to the worker's push endpoint in
// the Pub/Sub push format, standing in for a broker during development.
type localHTTPSender struct {
	endpoint   string
	httpClient *http.Client
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return newEventPublisher("LocalPubSub", &localHTTPSender{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localPushTimeout},
	}, logger)
}

// send fails on any non-2xx answer, matching how a broker treats a push as unacked.
func (s *localHTTPSender) send(ctx context.Context, msg *message) error {
	body, err := json.Marshal(newPushEnvelope(msg, LocalSubscription, time.Now()))
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID := msg.Attributes["request_id"]; requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push to %s", s.endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push endpoint returned non-success status: %d", resp.StatusCode)
	}

	return nil
}

func (s *localHTTPSender) Close() error {
	s.httpClient.CloseIdleConnections()

	return nil
}
