package handler

import (
	"log/slog"
	"net/http"

	"foodie/internal/delivery/api/middleware"
	"foodie/internal/delivery/api/response"
	"foodie/internal/usecase"
	"foodie/pkg/apimodel"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the caller's cart. Mutations answer 204 and the
// client refetches the cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// GetCart returns the cart with its total.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCart(cart))
}

// AddItem adds a quantity of a menu item, merging with an existing line.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	var req apimodel.AddCartItemRequest
	if ok, err := bindAndValidate(c, &req, "Invalid cart item input"); !ok {
		return err
	}

	if err := h.cartUC.AddToCart(c.Request().Context(), userID, req.MenuItemID, req.Quantity); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// UpdateItem overwrites a line's quantity. Zero or less removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	menuItemID, ok, err := pathUUID(c, "menuItemId")
	if !ok {
		return err
	}

	var req apimodel.UpdateCartItemRequest
	if ok, err := bindAndValidate(c, &req, "Invalid quantity input"); !ok {
		return err
	}

	if err := h.cartUC.UpdateQuantity(c.Request().Context(), userID, menuItemID, req.Quantity); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// RemoveItem deletes a line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	menuItemID, ok, err := pathUUID(c, "menuItemId")
	if !ok {
		return err
	}

	if err := h.cartUC.RemoveFromCart(c.Request().Context(), userID, menuItemID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
