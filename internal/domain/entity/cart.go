package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one pending selection. The menu item is an embedded copy taken
// when the cart is read; RestaurantID always matches MenuItem.RestaurantID.
type CartItem struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	MenuItem       MenuItem
	Quantity       int
	RestaurantID   uuid.UUID
	RestaurantName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subtotal is price times quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.MenuItem.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ordered set of a user's pending selections, possibly spanning restaurants.
type Cart struct {
	UserID uuid.UUID
	Items  []CartItem
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total is the sum of price times quantity over every line. It does not depend on line order.
func (c Cart) Total() decimal.Decimal {
	return SumItems(c.Items)
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// SumItems adds up the line subtotals.
func SumItems(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// RestaurantGroup is the slice of a cart that belongs to one restaurant.
type RestaurantGroup struct {
	RestaurantID   uuid.UUID
	RestaurantName string
	Items          []CartItem
}

// Total is the sum of the group's line subtotals.
func (g RestaurantGroup) Total() decimal.Decimal {
	return SumItems(g.Items)
}

// SplitByRestaurant partitions the cart by restaurant. Groups appear in the
// order their restaurant first appears in the cart, and items keep their
// relative order inside a group.
func (c Cart) SplitByRestaurant() []RestaurantGroup {
	groups := make([]RestaurantGroup, 0)
	index := make(map[uuid.UUID]int)

	for _, item := range c.Items {
		pos, ok := index[item.RestaurantID]
		if !ok {
			pos = len(groups)
			index[item.RestaurantID] = pos
			groups = append(groups, RestaurantGroup{
				RestaurantID:   item.RestaurantID,
				RestaurantName: item.RestaurantName,
			})
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}

	return groups
}
