package handler

import (
	"log/slog"
	"net/http"

	"foodie/internal/delivery/api/response"
	"foodie/internal/domain/entity"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the public restaurant catalog.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListRestaurants returns restaurants with their menus. The optional q and
// category query parameters narrow the list for search and the home screen.
func (h *CatalogHandler) ListRestaurants(c echo.Context) error {
	filter := entity.RestaurantFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}

	restaurants, err := h.catalogUC.ListRestaurants(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRestaurants(restaurants))
}

// GetRestaurant returns one restaurant with its menu.
func (h *CatalogHandler) GetRestaurant(c echo.Context) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}

	restaurant, err := h.catalogUC.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRestaurant(restaurant))
}

// ListCategories returns the browsing categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCategories(categories))
}
