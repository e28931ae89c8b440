// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"foodie/config"
	"foodie/internal/delivery/api/middleware"
	"foodie/internal/delivery/api/router/handler"
	"foodie/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		catalogHandler: params.CatalogHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authLimiter := middleware.NewAuthRateLimiter(r.config.RateLimit)

	// Auth routes
	authGroup := e.Group("/auth", authLimiter)
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/login", r.authHandler.SignIn)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.SignOut)
	}

	oauthGroup := e.Group("/oauth", authLimiter)
	{
		oauthGroup.POST("/google/callback", r.authHandler.GoogleCallback)
	}

	apiV1 := e.Group("/api/v1")

	// Public catalog
	apiV1.GET("/restaurants", r.catalogHandler.ListRestaurants)
	apiV1.GET("/restaurants/:id", r.catalogHandler.GetRestaurant)
	apiV1.GET("/categories", r.catalogHandler.ListCategories)

	// Signed-in user routes
	userGroup := apiV1.Group("")
	userGroup.Use(r.authMiddleware.Authenticate)
	userGroup.Use(r.authMiddleware.Require(entity.RequireAuthenticated))
	{
		userGroup.GET("/me", r.profileHandler.GetProfile)
		userGroup.PUT("/me", r.profileHandler.UpdateProfile)
		userGroup.DELETE("/me/sessions", r.authHandler.SignOutEverywhere)

		userGroup.GET("/cart", r.cartHandler.GetCart)
		userGroup.DELETE("/cart", r.cartHandler.Clear)
		userGroup.POST("/cart/items", r.cartHandler.AddItem)
		userGroup.PUT("/cart/items/:menuItemId", r.cartHandler.UpdateItem)
		userGroup.DELETE("/cart/items/:menuItemId", r.cartHandler.RemoveItem)

		userGroup.POST("/orders", r.orderHandler.Checkout)
		userGroup.GET("/orders", r.orderHandler.ListOrders)
		userGroup.GET("/orders/:id", r.orderHandler.GetOrder)
		userGroup.GET("/orders/:id/qr", r.orderHandler.GetTrackingQR)
		userGroup.GET("/orders/:id/timeline", r.orderHandler.GetOrderTimeline)
	}

	// Back-office routes
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.Require(entity.RequireAdmin))
	{
		adminGroup.GET("/stats", r.adminHandler.GetStats)
		adminGroup.GET("/restaurants", r.adminHandler.ListRestaurants)
		adminGroup.POST("/restaurants", r.adminHandler.CreateRestaurant)
		adminGroup.DELETE("/restaurants/:id", r.adminHandler.DeleteRestaurant)
		adminGroup.POST("/restaurants/:id/menu-items", r.adminHandler.AddMenuItem)
		adminGroup.GET("/orders", r.adminHandler.ListOrders)
		adminGroup.PUT("/orders/:id/status", r.adminHandler.UpdateOrderStatus)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id/role", r.adminHandler.UpdateUserRole)
	}
}
