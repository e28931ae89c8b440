package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a step in the delivery lifecycle.
type OrderStatus string

const (
	// OrderStatusPending is kept for stored data compatibility. Checkout never
	// produces it and it has no legal transition in either direction.
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on-the-way"
	OrderStatusDelivered OrderStatus = "delivered"
)

var orderStatusNext = map[OrderStatus]OrderStatus{
	OrderStatusConfirmed: OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusOnTheWay,
	OrderStatusOnTheWay:  OrderStatusDelivered,
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusOnTheWay, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// NextStatus returns the single legal successor of s, if any.
func (s OrderStatus) NextStatus() (OrderStatus, bool) {
	next, ok := orderStatusNext[s]

	return next, ok
}

// CanTransitionTo reports whether moving from s to target is one forward step.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := s.NextStatus()

	return ok && next == target
}

// IsTerminal reports whether s accepts no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// Order is the per-restaurant result of a checkout. Only Status changes after creation.
type Order struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	RestaurantID          uuid.UUID
	RestaurantName        string
	Status                OrderStatus
	Items                 []OrderItem
	Total                 decimal.Decimal // Sum of item price times quantity, without the delivery fee.
	DeliveryFee           decimal.Decimal
	EstimatedDeliveryTime string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// OrderItem is a snapshot of a cart line taken at checkout. Name and price
// are copied so later menu edits do not change past orders.
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	MenuItemID    uuid.UUID
	MenuItemName  string
	MenuItemPrice decimal.Decimal
	Quantity      int
	CreatedAt     time.Time
}

// Subtotal is price times quantity for the line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.MenuItemPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderFromGroup builds a confirmed order from one restaurant's slice of a cart.
func NewOrderFromGroup(userID uuid.UUID, group RestaurantGroup, deliveryFee decimal.Decimal, eta string) *Order {
	items := make([]OrderItem, 0, len(group.Items))
	for _, line := range group.Items {
		items = append(items, OrderItem{
			MenuItemID:    line.MenuItem.ID,
			MenuItemName:  line.MenuItem.Name,
			MenuItemPrice: line.MenuItem.Price,
			Quantity:      line.Quantity,
		})
	}

	return &Order{
		UserID:                userID,
		RestaurantID:          group.RestaurantID,
		RestaurantName:        group.RestaurantName,
		Status:                OrderStatusConfirmed,
		Items:                 items,
		Total:                 group.Total(),
		DeliveryFee:           deliveryFee,
		EstimatedDeliveryTime: eta,
	}
}

// OrderStatusChange is a committed transition, published to interested consumers.
type OrderStatusChange struct {
	OrderID      uuid.UUID
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	From         OrderStatus
	To           OrderStatus
	ChangedAt    time.Time
}
