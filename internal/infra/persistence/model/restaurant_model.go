package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// RestaurantModel mirrors the 'restaurants' table.
type RestaurantModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Image        string          `gorm:"type:text;not null;default:''"`
	Rating       float64         `gorm:"type:numeric(2,1);not null;default:0;check:chk_restaurants_rating,rating >= 0 AND rating <= 5"`
	DeliveryTime string          `gorm:"type:varchar(50);not null;default:''"`
	DeliveryFee  decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:chk_restaurants_delivery_fee,delivery_fee >= 0"`
	Categories   pq.StringArray  `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt    time.Time       `gorm:"index"`
	UpdatedAt    time.Time

	MenuItems []MenuItemModel `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RestaurantModel) TableName() string {
	return "restaurants"
}

// MenuItemModel mirrors the 'menu_items' table.
type MenuItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text;not null;default:''"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_menu_items_price,price >= 0"`
	Image        string          `gorm:"type:text;not null;default:''"`
	Category     string          `gorm:"type:varchar(100);not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Image     string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
