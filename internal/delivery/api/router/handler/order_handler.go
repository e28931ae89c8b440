package handler

import (
	"log/slog"
	"net/http"

	"foodie/internal/delivery/api/middleware"
	"foodie/internal/delivery/api/response"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const mimeImagePNG = "image/png"

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout and the caller's order history.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// Checkout turns the cart into one order per restaurant.
// An empty cart yields 200 with an empty list.
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	orders, err := h.orderUC.PlaceOrder(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusCreated
	if len(orders) == 0 {
		status = http.StatusOK
	}

	return response.Success(c, status, toOrders(orders))
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrders(orders))
}

// GetOrder returns one of the caller's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	orderID, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrder(order))
}

// GetTrackingQR returns a PNG QR code pointing at the order's tracking page.
func (h *OrderHandler) GetTrackingQR(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	orderID, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	png, err := h.orderUC.GetTrackingQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, mimeImagePNG, png)
}

// GetOrderTimeline lists the status steps recorded for one of the user's orders.
func (h *OrderHandler) GetOrderTimeline(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	orderID, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	timeline, err := h.orderUC.GetOrderTimeline(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toTimeline(timeline))
}
