// Package handler holds the order event worker's push endpoint.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/constants"
	"foodie/internal/domain/service"
	"foodie/internal/infra/pubsub"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PushHandler records pushed order events on the order timeline.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	orderEventUC   usecase.OrderEventUsecase
	handlers       map[string]func(ctx context.Context, data []byte) error
}

type PushHandlerParams struct {
	fx.In

	Config       *config.Config
	Logger       *slog.Logger
	OrderEventUC usecase.OrderEventUsecase
}

func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google pushes carry an OIDC token.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvLocal

	h := &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		orderEventUC:   params.OrderEventUC,
	}
	h.handlers = map[string]func(ctx context.Context, data []byte) error{
		constants.EventTypeOrderPlaced:        h.orderPlaced,
		constants.EventTypeOrderStatusChanged: h.orderStatusChanged,
	}

	return h
}

// HandlePush answers 400 for an undecodable envelope, 503 for a failure worth
// redelivering and 200 otherwise, including events it cannot use.
func (h *PushHandler) HandlePush(c echo.Context) error {
	if h.verifyPushAuth {
		if err := verifyGooglePush(c.Request()); err != nil {
			h.logger.Warn("[Worker] Rejected push", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var envelope pubsub.PushEnvelope
	if err := c.Bind(&envelope); err != nil {
		h.logger.Warn("[Worker] Malformed push envelope", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}
	data, err := envelope.Payload()
	if err != nil {
		h.logger.Warn("[Worker] Undecodable push payload", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	ctx := deliverycontext.WithRequestScope(c.Request().Context(), h.logger, requestIDOf(c.Request().Context(), &envelope))
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger).With(
		slog.String("message_id", envelope.Message.MessageID),
		slog.String("event_type", envelope.Attribute("event_type")),
	)

	err = h.dispatch(ctx, envelope.Attribute("event_type"), data)
	switch {
	case err == nil:
		logger.Info("[Worker] Order event recorded")
	case shouldRedeliver(err):
		logger.Error("[Worker] Order event failed, requesting redelivery", slog.Any("error", err))
	default:
		logger.Warn("[Worker] Order event dropped", slog.Any("error", err))
	}

	return c.NoContent(ackStatus(err))
}

func (h *PushHandler) dispatch(ctx context.Context, eventType string, data []byte) error {
	handle, ok := h.handlers[eventType]
	if !ok {
		h.logger.Warn("[Worker] Ignoring unknown event type", slog.String("event_type", eventType))

		return nil
	}

	return handle(ctx, data)
}

func (h *PushHandler) orderPlaced(ctx context.Context, data []byte) error {
	var event service.OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return errors.Wrap(err, "failed to parse order placed event")
	}
	if err := h.orderEventUC.HandleOrderPlaced(ctx, &event); err != nil {
		return classify(err)
	}

	return nil
}

func (h *PushHandler) orderStatusChanged(ctx context.Context, data []byte) error {
	var event service.OrderStatusEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return errors.Wrap(err, "failed to parse order status event")
	}
	if err := h.orderEventUC.HandleOrderStatusChanged(ctx, &event); err != nil {
		return classify(err)
	}

	return nil
}

// requestIDOf prefers the id the publisher stamped on the message, then the
// push request's own X-Request-Id.
func requestIDOf(ctx context.Context, envelope *pubsub.PushEnvelope) string {
	if requestID := envelope.Attribute("request_id"); requestID != "" {
		return requestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}
