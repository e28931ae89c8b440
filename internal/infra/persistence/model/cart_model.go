package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItemModel mirrors the 'cart_items' table. One row per (user, menu item).
type CartItemModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_menu_item"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_menu_item"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;not null"`
	RestaurantName string    `gorm:"type:varchar(255);not null"`
	Quantity       int       `gorm:"not null;check:chk_cart_items_quantity,quantity > 0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User     *UserModel     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MenuItem *MenuItemModel `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
