package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartLine(restaurantID uuid.UUID, restaurantName, name, price string, qty int) CartItem {
	return CartItem{
		ID: uuid.New(),
		MenuItem: MenuItem{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Name:         name,
			Price:        decimal.RequireFromString(price),
		},
		Quantity:       qty,
		RestaurantID:   restaurantID,
		RestaurantName: restaurantName,
	}
}

func TestCart_Total(t *testing.T) {
	r1, r2 := uuid.New(), uuid.New()

	tests := []struct {
		name  string
		items []CartItem
		want  string
	}{
		{name: "empty cart", items: nil, want: "0"},
		{
			name:  "single line",
			items: []CartItem{newCartLine(r1, "Pasta Place", "Carbonara", "12.50", 2)},
			want:  "25",
		},
		{
			name: "multiple restaurants",
			items: []CartItem{
				newCartLine(r1, "Pasta Place", "A", "10", 2),
				newCartLine(r2, "Sushi Bar", "B", "5", 1),
				newCartLine(r1, "Pasta Place", "C", "3", 3),
			},
			want: "34",
		},
		{
			name: "decimal prices do not drift",
			items: []CartItem{
				newCartLine(r1, "Cafe", "Tea", "0.10", 3),
				newCartLine(r1, "Cafe", "Cookie", "0.20", 1),
			},
			want: "0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := Cart{Items: tt.items}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(cart.Total()), "got %s", cart.Total())
		})
	}
}

func TestCart_Total_OrderIndependent(t *testing.T) {
	r1, r2 := uuid.New(), uuid.New()
	a := newCartLine(r1, "R1", "A", "4.25", 2)
	b := newCartLine(r2, "R2", "B", "7.10", 1)
	c := newCartLine(r1, "R1", "C", "1.99", 5)

	forward := Cart{Items: []CartItem{a, b, c}}
	reversed := Cart{Items: []CartItem{c, b, a}}

	assert.True(t, forward.Total().Equal(reversed.Total()))
}

func TestCart_SplitByRestaurant(t *testing.T) {
	r1, r2 := uuid.New(), uuid.New()
	a := newCartLine(r1, "Pasta Place", "A", "10", 2)
	b := newCartLine(r2, "Sushi Bar", "B", "5", 1)
	c := newCartLine(r1, "Pasta Place", "C", "3", 3)

	groups := Cart{Items: []CartItem{a, b, c}}.SplitByRestaurant()

	require.Len(t, groups, 2)
	assert.Equal(t, r1, groups[0].RestaurantID)
	assert.Equal(t, "Pasta Place", groups[0].RestaurantName)
	assert.Equal(t, []CartItem{a, c}, groups[0].Items)
	assert.True(t, decimal.NewFromInt(29).Equal(groups[0].Total()))

	assert.Equal(t, r2, groups[1].RestaurantID)
	assert.Equal(t, []CartItem{b}, groups[1].Items)
	assert.True(t, decimal.NewFromInt(5).Equal(groups[1].Total()))
}

func TestCart_SplitByRestaurant_Empty(t *testing.T) {
	groups := Cart{}.SplitByRestaurant()

	assert.Empty(t, groups)
}

func TestCart_ItemCount(t *testing.T) {
	r1 := uuid.New()
	cart := Cart{Items: []CartItem{
		newCartLine(r1, "R", "A", "1", 2),
		newCartLine(r1, "R", "B", "1", 3),
	}}

	assert.Equal(t, 5, cart.ItemCount())
	assert.False(t, cart.IsEmpty())
	assert.True(t, Cart{}.IsEmpty())
}

func TestNewOrderFromGroup(t *testing.T) {
	userID := uuid.New()
	r1 := uuid.New()
	line := newCartLine(r1, "Pasta Place", "Carbonara", "12.50", 2)
	group := RestaurantGroup{RestaurantID: r1, RestaurantName: "Pasta Place", Items: []CartItem{line}}

	order := NewOrderFromGroup(userID, group, decimal.RequireFromString("2.99"), "30-45 min")

	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, r1, order.RestaurantID)
	assert.True(t, decimal.NewFromInt(25).Equal(order.Total))
	assert.True(t, decimal.RequireFromString("2.99").Equal(order.DeliveryFee))
	require.Len(t, order.Items, 1)
	assert.Equal(t, line.MenuItem.ID, order.Items[0].MenuItemID)
	assert.Equal(t, "Carbonara", order.Items[0].MenuItemName)
	assert.True(t, line.MenuItem.Price.Equal(order.Items[0].MenuItemPrice))
	assert.Equal(t, 2, order.Items[0].Quantity)
}
