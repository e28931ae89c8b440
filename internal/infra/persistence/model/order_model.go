package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. restaurant_id carries no foreign key
// so past orders survive restaurant deletion.
type OrderModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantName        string          `gorm:"type:varchar(255);not null"`
	Status                string          `gorm:"type:varchar(20);not null;default:'pending';check:chk_orders_status,status IN ('pending','confirmed','preparing','on-the-way','delivered')"`
	Total                 decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeliveryFee           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	EstimatedDeliveryTime string          `gorm:"type:varchar(50);not null;default:''"`
	CreatedAt             time.Time       `gorm:"index"`
	UpdatedAt             time.Time

	User  *UserModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Name and price are copies
// taken at checkout, menu_item_id is kept for reference only.
type OrderItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	MenuItemName  string          `gorm:"type:varchar(255);not null"`
	MenuItemPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity      int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderStatusHistoryModel mirrors the 'order_status_history' table. Each
// status appears at most once per order because transitions only move forward.
type OrderStatusHistoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_order_status_history_step,priority:1"`
	FromStatus string    `gorm:"type:varchar(20);not null;default:''"`
	ToStatus   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_order_status_history_step,priority:2"`
	ChangedAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time

	Order *OrderModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderStatusHistoryModel) TableName() string {
	return "order_status_history"
}

// All lists every model in dependency order for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&AuthenticationModel{},
		&RefreshTokenModel{},
		&RestaurantModel{},
		&MenuItemModel{},
		&CategoryModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&OrderStatusHistoryModel{},
	}
}
