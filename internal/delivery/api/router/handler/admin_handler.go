package handler

import (
	"log/slog"
	"net/http"

	"foodie/internal/delivery/api/response"
	"foodie/internal/domain/entity"
	"foodie/internal/usecase"
	"foodie/pkg/apimodel"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves the back-office. Routes are guarded by the admin requirement.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// GetStats returns the dashboard counters.
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminUC.GetStats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &apimodel.DashboardStats{
		TotalRevenue:     stats.TotalRevenue,
		TotalOrders:      stats.TotalOrders,
		TotalUsers:       stats.TotalUsers,
		TotalRestaurants: stats.TotalRestaurants,
	})
}

func (h *AdminHandler) ListRestaurants(c echo.Context) error {
	restaurants, err := h.adminUC.ListRestaurants(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRestaurants(restaurants))
}

func (h *AdminHandler) CreateRestaurant(c echo.Context) error {
	var req apimodel.CreateRestaurantRequest
	if ok, err := bindAndValidate(c, &req, "Invalid restaurant input"); !ok {
		return err
	}

	restaurant, err := h.adminUC.CreateRestaurant(c.Request().Context(), &usecase.CreateRestaurantInput{
		Name:         req.Name,
		Image:        req.Image,
		Rating:       req.Rating,
		DeliveryTime: req.DeliveryTime,
		DeliveryFee:  req.DeliveryFee,
		Categories:   req.Categories,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toRestaurant(restaurant))
}

func (h *AdminHandler) DeleteRestaurant(c echo.Context) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	if err := h.adminUC.DeleteRestaurant(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

func (h *AdminHandler) AddMenuItem(c echo.Context) error {
	restaurantID, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	var req apimodel.CreateMenuItemRequest
	if ok, err := bindAndValidate(c, &req, "Invalid menu item input"); !ok {
		return err
	}

	item, err := h.adminUC.AddMenuItem(c.Request().Context(), restaurantID, &usecase.CreateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toMenuItem(*item))
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.adminUC.ListOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrders(orders))
}

// UpdateOrderStatus advances an order one step along its lifecycle.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	var req apimodel.UpdateOrderStatusRequest
	if ok, err := bindAndValidate(c, &req, "Invalid status input"); !ok {
		return err
	}

	order, err := h.adminUC.UpdateOrderStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrder(order))
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUsers(users))
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	userID, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	var req apimodel.UpdateUserRoleRequest
	if ok, err := bindAndValidate(c, &req, "Invalid role input"); !ok {
		return err
	}

	user, err := h.adminUC.UpdateUserRole(c.Request().Context(), userID, entity.Role(req.Role))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUser(user))
}
