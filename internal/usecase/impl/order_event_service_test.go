package impl

import (
	"context"
	"testing"
	"time"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	mockRepo "foodie/internal/mocks/repository"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestOrderEventService(t *testing.T) (usecase.OrderEventUsecase, *mockRepo.MockOrderRepository) {
	orderRepo := mockRepo.NewMockOrderRepository(t)

	return NewOrderEventService(OrderEventServiceParams{OrderRepo: orderRepo, Logger: newDiscardLogger()}), orderRepo
}

func TestOrderEventService_HandleOrderPlaced(t *testing.T) {
	svc, orderRepo := createTestOrderEventService(t)

	orderID := uuid.New()
	placedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	orderRepo.EXPECT().RecordStatusChange(mock.Anything, &entity.OrderStatusChange{
		OrderID:   orderID,
		To:        entity.OrderStatusConfirmed,
		ChangedAt: placedAt,
	}).Return(nil)

	err := svc.HandleOrderPlaced(context.Background(), &service.OrderPlacedEvent{
		OrderID:  orderID.String(),
		UserID:   uuid.NewString(),
		PlacedAt: placedAt.Format(time.RFC3339),
	})

	require.NoError(t, err)
}

func TestOrderEventService_HandleOrderStatusChanged(t *testing.T) {
	orderID := uuid.New()
	changedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC).Format(time.RFC3339)

	t.Run("records a forward step", func(t *testing.T) {
		svc, orderRepo := createTestOrderEventService(t)

		orderRepo.EXPECT().
			RecordStatusChange(mock.Anything, mock.MatchedBy(func(change *entity.OrderStatusChange) bool {
				return change.OrderID == orderID &&
					change.From == entity.OrderStatusPreparing &&
					change.To == entity.OrderStatusOnTheWay
			})).
			Return(nil)

		err := svc.HandleOrderStatusChanged(context.Background(), &service.OrderStatusEvent{
			OrderID:   orderID.String(),
			From:      "preparing",
			To:        "on-the-way",
			ChangedAt: changedAt,
		})

		require.NoError(t, err)
	})

	rejected := []struct {
		name  string
		event *service.OrderStatusEvent
	}{
		{name: "bad order id", event: &service.OrderStatusEvent{OrderID: "42", From: "confirmed", To: "preparing", ChangedAt: changedAt}},
		{name: "skipped step", event: &service.OrderStatusEvent{OrderID: orderID.String(), From: "confirmed", To: "delivered", ChangedAt: changedAt}},
		{name: "bad timestamp", event: &service.OrderStatusEvent{OrderID: orderID.String(), From: "confirmed", To: "preparing", ChangedAt: "yesterday"}},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createTestOrderEventService(t)

			err := svc.HandleOrderStatusChanged(context.Background(), tt.event)

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "got %v", err)
		})
	}

	t.Run("unknown order", func(t *testing.T) {
		svc, orderRepo := createTestOrderEventService(t)

		orderRepo.EXPECT().RecordStatusChange(mock.Anything, mock.Anything).Return(repository.ErrOrderNotFound)

		err := svc.HandleOrderStatusChanged(context.Background(), &service.OrderStatusEvent{
			OrderID:   orderID.String(),
			From:      "confirmed",
			To:        "preparing",
			ChangedAt: changedAt,
		})

		assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
	})
}
