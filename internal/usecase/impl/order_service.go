package impl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	qrCodeService service.QRCodeService
	publisher     service.EventPublisher
	cache         *queryCache
	defaultFee    decimal.Decimal
	defaultETA    string
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Cache         service.QueryCache
	Config        *config.Config
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService. It fails when the configured
// checkout delivery fee is not a decimal.
func NewOrderService(params OrderServiceParams) (usecase.OrderUsecase, error) {
	fee := decimal.Zero
	eta := ""
	if params.Config != nil && params.Config.Checkout != nil {
		parsed, err := decimal.NewFromString(params.Config.Checkout.DeliveryFee)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid checkout delivery fee %q", params.Config.Checkout.DeliveryFee)
		}
		fee = parsed
		eta = params.Config.Checkout.EstimatedDeliveryTime
	}

	return &orderService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		qrCodeService: params.QRCodeService,
		publisher:     params.Publisher,
		cache:         newQueryCache(params.Cache, params.Config, params.Logger),
		defaultFee:    fee,
		defaultETA:    eta,
		logger:        params.Logger,
	}, nil
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder checks out the user's cart. Orders, items and the cart clear commit
// together; on any failure nothing is written and the cart is kept.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	srv.log(ctx).Info("Starting checkout", slog.Any("userID", userID))

	var placed []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		restaurantRepo := repoFactory.RestaurantRepo()
		orderRepo := repoFactory.OrderRepo()

		cart, err := cartRepo.LockCartByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart")
		}
		if cart.IsEmpty() {
			return nil
		}

		groups := cart.SplitByRestaurant()
		orders := make([]*entity.Order, 0, len(groups))
		for _, group := range groups {
			fee, eta, err := srv.deliveryTerms(ctx, restaurantRepo, group.RestaurantID)
			if err != nil {
				return err
			}

			order := entity.NewOrderFromGroup(userID, group, fee, eta)
			if err := orderRepo.CreateOrder(ctx, order); err != nil {
				return errors.Wrapf(err, "failed to create order for restaurant %s", group.RestaurantID)
			}
			orders = append(orders, order)
		}

		if err := cartRepo.ClearByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}
		placed = orders

		return nil
	})
	if err != nil {
		return nil, srv.checkoutError(ctx, userID, err)
	}

	if len(placed) == 0 {
		srv.log(ctx).Info("Checkout of empty cart", slog.Any("userID", userID))

		return []*entity.Order{}, nil
	}

	srv.cache.invalidate(ctx,
		userKey(service.CacheEntityCart, userID),
		userKey(service.CacheEntityOrders, userID),
		globalKey(service.CacheEntityAdminOrders),
		globalKey(service.CacheEntityAdminStats),
	)

	for _, order := range placed {
		srv.publishPlaced(ctx, order)
	}
	srv.log(ctx).Info("Checkout completed", slog.Any("userID", userID), slog.Int("orders", len(placed)))

	return placed, nil
}

// checkoutError keeps a client error raised inside the transaction as is and
// reports anything else as ErrCheckoutFailed with the cause attached.
func (srv *orderService) checkoutError(ctx context.Context, userID uuid.UUID, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		srv.log(ctx).Info("Checkout rejected", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "checkout rejected")
	}
	srv.log(ctx).Error("Checkout failed", slog.Any("userID", userID), slog.Any("error", err))

	return domainerrors.ErrCheckoutFailed.WithCause(err)
}

// deliveryTerms returns the restaurant's fee and delivery time, falling back to
// the configured defaults when the restaurant row is gone.
func (srv *orderService) deliveryTerms(ctx context.Context, restaurantRepo repository.RestaurantRepository, restaurantID uuid.UUID) (decimal.Decimal, string, error) {
	restaurant, err := restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			srv.log(ctx).Warn("Restaurant missing at checkout, using defaults", slog.Any("restaurantID", restaurantID))

			return srv.defaultFee, srv.defaultETA, nil
		}

		return decimal.Zero, "", errors.Wrap(err, "failed to load restaurant")
	}

	eta := restaurant.DeliveryTime
	if eta == "" {
		eta = srv.defaultETA
	}

	return restaurant.DeliveryFee, eta, nil
}

func (srv *orderService) publishPlaced(ctx context.Context, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	placedAt := order.CreatedAt
	if placedAt.IsZero() {
		placedAt = time.Now()
	}

	event := &service.OrderPlacedEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:      order.ID.String(),
		UserID:       order.UserID.String(),
		RestaurantID: order.RestaurantID.String(),
		Total:        order.Total.StringFixed(2),
		PlacedAt:     placedAt.UTC().Format(time.RFC3339),
	}

	if err := srv.publisher.PublishOrderPlacedEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order placed event", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

// ListOrders returns the user's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	orders, err := fetch(ctx, srv.cache, userKey(service.CacheEntityOrders, userID), func(ctx context.Context) ([]*entity.Order, error) {
		orders, err := srv.orderRepo.FindOrdersByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if orders == nil {
			orders = []*entity.Order{}
		}

		return orders, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one of the user's orders. Other users' orders look missing.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, orderID.String())
		}

		return nil, errors.Wrap(err, "failed to get order")
	}

	if order.UserID != userID {
		srv.log(ctx).Warn("Order requested by non-owner", slog.Any("orderID", orderID), slog.Any("userID", userID))

		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, orderID.String())
	}

	return order, nil
}

// GetTrackingQR renders the tracking QR code of one of the user's orders.
func (srv *orderService) GetTrackingQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCodeService.GenerateOrderTrackingQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	return png, nil
}

// GetOrderTimeline returns the recorded status steps of one of the user's orders.
// Steps are written asynchronously by the order event worker, so a fresh order
// may briefly show an empty timeline.
func (srv *orderService) GetOrderTimeline(ctx context.Context, userID, orderID uuid.UUID) ([]*entity.OrderStatusChange, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	changes, err := srv.orderRepo.FindStatusChanges(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order timeline")
	}
	if changes == nil {
		changes = []*entity.OrderStatusChange{}
	}

	return changes, nil
}
