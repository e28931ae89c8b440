package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Restaurant is the aggregate root of a menu.
type Restaurant struct {
	ID           uuid.UUID
	Name         string
	Image        string          // Opaque image URL.
	Rating       float64         // 0 to 5.
	DeliveryTime string          // Free text, e.g. "20-30 min".
	DeliveryFee  decimal.Decimal // Charged per order, never folded into Order.Total.
	Categories   []string
	Menu         []MenuItem // Ordered as stored.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MenuItem is a purchasable dish owned by exactly one Restaurant.
type MenuItem struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Description  string
	Price        decimal.Decimal
	Image        string
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category is a browsing facet shown on the home screen.
type Category struct {
	ID        uuid.UUID
	Name      string
	Image     string
	CreatedAt time.Time
}
