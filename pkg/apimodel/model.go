// Package apimodel holds the JSON wire types shared by the HTTP API and its Go client.
package apimodel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the public view of an account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Role names as they appear on the wire.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is returned by every sign-in flavour.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// AccessToken is returned by the refresh endpoint.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=100"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateProfileRequest leaves absent fields untouched. An empty avatar clears it.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

type MenuItem struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
}

type Restaurant struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Rating       float64         `json:"rating"`
	DeliveryTime string          `json:"delivery_time"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Categories   []string        `json:"categories"`
	Menu         []MenuItem      `json:"menu"`
}

type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

type CartItem struct {
	MenuItem       MenuItem  `json:"menu_item"`
	Quantity       int       `json:"quantity"`
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
}

// Cart is the user's cart with its flat subtotal across restaurants.
type Cart struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type AddCartItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"gte=1"`
}

// UpdateCartItemRequest overwrites the quantity. Zero or less removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type OrderItem struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

type Order struct {
	ID                    uuid.UUID       `json:"id"`
	UserID                uuid.UUID       `json:"user_id"`
	RestaurantID          uuid.UUID       `json:"restaurant_id"`
	RestaurantName        string          `json:"restaurant_name"`
	Status                string          `json:"status"`
	Items                 []OrderItem     `json:"items"`
	Total                 decimal.Decimal `json:"total"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	EstimatedDeliveryTime string          `json:"estimated_delivery_time"`
	CreatedAt             time.Time       `json:"created_at"`
}

// OrderStatusChange is one step on an order's timeline. From is empty for
// the step recorded at checkout.
type OrderStatusChange struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type DashboardStats struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalOrders      int64           `json:"total_orders"`
	TotalUsers       int64           `json:"total_users"`
	TotalRestaurants int64           `json:"total_restaurants"`
}

type CreateRestaurantRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Image        string          `json:"image" validate:"omitempty,url"`
	Rating       float64         `json:"rating" validate:"gte=0,lte=5"`
	DeliveryTime string          `json:"delivery_time"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Categories   []string        `json:"categories"`
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image" validate:"omitempty,url"`
	Category    string          `json:"category"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// Meta carries per-response metadata.
type Meta struct {
	RequestID string `json:"request_id"`
}

// Envelope is the success body of every JSON endpoint.
type Envelope[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta"`
}

// ErrorBody is the error payload inside ErrorEnvelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error *ErrorBody `json:"error"`
	Meta  *Meta      `json:"meta"`
}
