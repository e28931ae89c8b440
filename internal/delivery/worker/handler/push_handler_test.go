package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/constants"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/service"
	"foodie/internal/infra/pubsub"
	mockUC "foodie/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler(t *testing.T) (*PushHandler, *mockUC.MockOrderEventUsecase) {
	orderEventUC := mockUC.NewMockOrderEventUsecase(t)
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}}

	return NewPushHandler(PushHandlerParams{
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		OrderEventUC: orderEventUC,
	}), orderEventUC
}

func pushBody(t *testing.T, eventType string, payload any) string {
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var msg pubsub.PushEnvelope
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = map[string]string{"event_type": eventType, "request_id": "req-7"}
	msg.Message.MessageID = "m-1"
	msg.Subscription = pubsub.LocalSubscription

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_OrderPlaced(t *testing.T) {
	h, orderEventUC := newTestPushHandler(t)

	event := &service.OrderPlacedEvent{OrderID: "o-1", PlacedAt: "2026-03-14T12:00:00Z"}
	orderEventUC.EXPECT().
		HandleOrderPlaced(mock.Anything, event).
		Run(func(ctx context.Context, _ *service.OrderPlacedEvent) {
			assert.Equal(t, "req-7", deliverycontext.GetRequestIDFromContext(ctx))
		}).
		Return(nil)

	rec := servePush(h, pushBody(t, constants.EventTypeOrderPlaced, event))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_StatusChangedOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "recorded", err: nil, wantCode: http.StatusOK},
		{name: "storage down is retried", err: domainerrors.NewDatabaseExecuteError(errors.New("conn reset"), "insert"), wantCode: http.StatusServiceUnavailable},
		{name: "unexpected error is retried", err: errors.New("boom"), wantCode: http.StatusServiceUnavailable},
		{name: "unknown order is acked", err: errors.Wrap(domainerrors.ErrOrderNotFound, "o-1"), wantCode: http.StatusOK},
		{name: "malformed event is acked", err: domainerrors.ErrValidationFailed.WithDetails("invalid order_id"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orderEventUC := newTestPushHandler(t)

			orderEventUC.EXPECT().HandleOrderStatusChanged(mock.Anything, mock.Anything).Return(tt.err)

			rec := servePush(h, pushBody(t, constants.EventTypeOrderStatusChanged, &service.OrderStatusEvent{
				OrderID: "o-1",
				From:    "confirmed",
				To:      "preparing",
			}))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestPushHandler_RejectsUndecodableMessages(t *testing.T) {
	h, _ := newTestPushHandler(t)

	rec := servePush(h, `{"message":{"data":"%%%not-base64"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = servePush(h, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_AcksUnknownAndMalformedEvents(t *testing.T) {
	h, _ := newTestPushHandler(t)

	rec := servePush(h, pushBody(t, "order.refunded", map[string]string{"order_id": "o-1"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var msg pubsub.PushEnvelope
	msg.Message.Data = base64.StdEncoding.EncodeToString([]byte("{broken"))
	msg.Message.Attributes = map[string]string{"event_type": constants.EventTypeOrderPlaced}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	rec = servePush(h, string(body))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewPushHandler_VerifiesGooglePushOutsideLocal(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = constants.EnvProduction

	h := NewPushHandler(PushHandlerParams{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	assert.True(t, h.verifyPushAuth)

	rec := servePush(h, pushBody(t, constants.EventTypeOrderPlaced, &service.OrderPlacedEvent{}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cfg.Env.Env = constants.EnvLocal
	assert.False(t, NewPushHandler(PushHandlerParams{Config: cfg}).verifyPushAuth)
}
