package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderEventService implements the OrderEventUsecase interface by keeping
// each order's status timeline.
type orderEventService struct {
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderEventServiceParams holds dependencies for OrderEventService, injected by Fx.
type OrderEventServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderEventService is the constructor for orderEventService.
func NewOrderEventService(params OrderEventServiceParams) usecase.OrderEventUsecase {
	return &orderEventService{
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderEventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HandleOrderPlaced records the confirmed step every order starts with.
func (srv *orderEventService) HandleOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error {
	orderID, err := parseEventID("order_id", event.OrderID)
	if err != nil {
		return err
	}

	placedAt, err := parseEventTime("placed_at", event.PlacedAt)
	if err != nil {
		return err
	}

	return srv.record(ctx, &entity.OrderStatusChange{
		OrderID:   orderID,
		To:        entity.OrderStatusConfirmed,
		ChangedAt: placedAt,
	})
}

// HandleOrderStatusChanged records one forward step. Events describing an
// illegal step are rejected without touching storage.
func (srv *orderEventService) HandleOrderStatusChanged(ctx context.Context, event *service.OrderStatusEvent) error {
	orderID, err := parseEventID("order_id", event.OrderID)
	if err != nil {
		return err
	}

	from := entity.OrderStatus(event.From)
	to := entity.OrderStatus(event.To)
	if !from.CanTransitionTo(to) {
		return domainerrors.ErrValidationFailed.WithDetails("illegal status step " + event.From + " -> " + event.To)
	}

	changedAt, err := parseEventTime("changed_at", event.ChangedAt)
	if err != nil {
		return err
	}

	return srv.record(ctx, &entity.OrderStatusChange{
		OrderID:   orderID,
		From:      from,
		To:        to,
		ChangedAt: changedAt,
	})
}

func (srv *orderEventService) record(ctx context.Context, change *entity.OrderStatusChange) error {
	if err := srv.orderRepo.RecordStatusChange(ctx, change); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(domainerrors.ErrOrderNotFound, change.OrderID.String())
		}

		return errors.Wrap(err, "failed to record order status change")
	}

	srv.log(ctx).Info("Recorded order status step",
		slog.Any("orderID", change.OrderID),
		slog.String("from", string(change.From)),
		slog.String("to", string(change.To)),
	)

	return nil
}

func parseEventID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + field + ": " + value)
	}

	return id, nil
}

func parseEventTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrValidationFailed.WithDetails("invalid " + field + ": " + value)
	}

	return t, nil
}
